package repositories

import (
	"time"

	"items-admin-backend/db/models"
	"items-admin-backend/items/services"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UploadRunRepository interface {
	LogUploadRun(batch services.BatchState) (*models.BulkItemUploadRun, error)
	ListUploadRuns(limit, offset int) ([]models.BulkItemUploadRun, int64, error)
	PurgeUploadRunsBefore(cutoff time.Time) (int64, error)
}

type uploadRunRepository struct {
	db *gorm.DB
}

func NewUploadRunRepository(db *gorm.DB) UploadRunRepository {
	return &uploadRunRepository{
		db: db,
	}
}

// NewUploadRun summarises a completed batch as an audit row.
func NewUploadRun(batch services.BatchState) *models.BulkItemUploadRun {
	results := make([]models.BulkItemUploadResult, 0, len(batch.Results))
	for _, r := range batch.Results {
		results = append(results, models.BulkItemUploadResult{
			ProductName: r.ProductName,
			Success:     r.Success,
			RemoteID:    r.RemoteID,
			Error:       r.Error,
		})
	}

	run := &models.BulkItemUploadRun{
		ID:          uuid.New(),
		BatchID:     batch.ID,
		FileName:    batch.FileName,
		TotalDrafts: len(batch.Drafts),
		Succeeded:   batch.Succeeded(),
		Failed:      batch.Failed(),
		Results:     datatypes.NewJSONSlice(results),
		CreatedBy:   batch.CreatedBy,
	}

	switch {
	case run.Failed == 0:
		run.Status = models.UploadRunCompleted
	case run.Succeeded == 0:
		run.Status = models.UploadRunFailed
	default:
		run.Status = models.UploadRunCompletedPartial
	}

	if batch.UploadStartedAt != nil {
		run.StartedAt = *batch.UploadStartedAt
	}
	if batch.UploadCompletedAt != nil {
		run.CompletedAt = *batch.UploadCompletedAt
	} else {
		run.CompletedAt = time.Now()
	}
	return run
}

func (r *uploadRunRepository) LogUploadRun(batch services.BatchState) (*models.BulkItemUploadRun, error) {
	run := NewUploadRun(batch)
	if err := r.db.Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// ListUploadRuns returns the newest runs first.
func (r *uploadRunRepository) ListUploadRuns(limit, offset int) ([]models.BulkItemUploadRun, int64, error) {
	var runs []models.BulkItemUploadRun
	var total int64

	if err := r.db.Model(&models.BulkItemUploadRun{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Order("completed_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&runs).Error; err != nil {
		return nil, 0, err
	}
	return runs, total, nil
}

func (r *uploadRunRepository) PurgeUploadRunsBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("completed_at < ?", cutoff).Delete(&models.BulkItemUploadRun{})
	return result.RowsAffected, result.Error
}
