package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TypeBulkUpload runs the upload loop for one batch.
const TypeBulkUpload = "items:bulk_upload"

type BulkUploadPayload struct {
	BatchID uuid.UUID `json:"batch_id"`
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewBulkUploadTask builds a task that is never retried: catalog creation
// is not idempotent, so a second run could duplicate items.
func NewBulkUploadTask(batchID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(BulkUploadPayload{BatchID: batchID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode bulk upload payload: %w", err)
	}
	return asynq.NewTask(TypeBulkUpload, payload, asynq.MaxRetry(0), asynq.Queue("bulk_uploads")), nil
}

// EnqueueBulkUpload schedules the upload of batchID.
func EnqueueBulkUpload(enqueuer TaskEnqueuer, batchID uuid.UUID) (*asynq.TaskInfo, error) {
	task, err := NewBulkUploadTask(batchID)
	if err != nil {
		return nil, err
	}
	info, err := enqueuer.Enqueue(task)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue bulk upload for batch %s: %w", batchID, err)
	}
	return info, nil
}
