package repositories

import (
	"context"
	"errors"

	"items-admin-backend/items/services"

	"github.com/google/uuid"
)

// ErrBatchNotFound is returned for unknown or expired batches.
var ErrBatchNotFound = errors.New("batch not found")

// BatchRepository stores the working state of bulk upload batches.
type BatchRepository interface {
	SaveBatch(ctx context.Context, batch services.BatchState) error
	GetBatch(ctx context.Context, id uuid.UUID) (services.BatchState, error)
	// UpdateBatch applies fn to the stored batch and saves its result
	// atomically. An error from fn aborts the update and is returned as is.
	UpdateBatch(ctx context.Context, id uuid.UUID, fn func(services.BatchState) (services.BatchState, error)) (services.BatchState, error)
}
