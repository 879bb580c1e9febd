package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UploadRunStatus string

const (
	UploadRunCompleted        UploadRunStatus = "COMPLETED"
	UploadRunCompletedPartial UploadRunStatus = "COMPLETED_WITH_FAILURES"
	UploadRunFailed           UploadRunStatus = "FAILED"
)

// BulkItemUploadResult mirrors one per-product outcome inside a run.
type BulkItemUploadResult struct {
	ProductName string `json:"product_name"`
	Success     bool   `json:"success"`
	RemoteID    string `json:"remote_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

// BulkItemUploadRun is the audit trail of one completed bulk upload.
type BulkItemUploadRun struct {
	ID          uuid.UUID                                 `gorm:"type:uuid;primary_key;" json:"id"`
	BatchID     uuid.UUID                                 `gorm:"type:uuid;index" json:"batch_id"`
	FileName    string                                    `json:"file_name"`
	TotalDrafts int                                       `json:"total_drafts"`
	Succeeded   int                                       `json:"succeeded"`
	Failed      int                                       `json:"failed"`
	Status      UploadRunStatus                           `json:"status"`
	Results     datatypes.JSONSlice[BulkItemUploadResult] `gorm:"type:jsonb" json:"results"`
	CreatedBy   string                                    `json:"created_by"`
	StartedAt   time.Time                                 `json:"started_at"`
	CompletedAt time.Time                                 `gorm:"index" json:"completed_at"`
	CreatedAt   time.Time                                 `gorm:"autoCreateTime" json:"created_at"`
}
