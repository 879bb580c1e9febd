package repositories

import (
	"context"
	"sync"

	"items-admin-backend/items/services"

	"github.com/google/uuid"
)

type memoryBatchRepository struct {
	mu      sync.RWMutex
	batches map[uuid.UUID]services.BatchState
}

// NewMemoryBatchRepository is a process-local store used when Redis is
// not wanted, mainly in tests.
func NewMemoryBatchRepository() BatchRepository {
	return &memoryBatchRepository{batches: make(map[uuid.UUID]services.BatchState)}
}

func (r *memoryBatchRepository) SaveBatch(_ context.Context, batch services.BatchState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[batch.ID] = batch
	return nil
}

func (r *memoryBatchRepository) GetBatch(_ context.Context, id uuid.UUID) (services.BatchState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	batch, ok := r.batches[id]
	if !ok {
		return services.BatchState{}, ErrBatchNotFound
	}
	return batch, nil
}

func (r *memoryBatchRepository) UpdateBatch(_ context.Context, id uuid.UUID, fn func(services.BatchState) (services.BatchState, error)) (services.BatchState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.batches[id]
	if !ok {
		return services.BatchState{}, ErrBatchNotFound
	}
	next, err := fn(current)
	if err != nil {
		return services.BatchState{}, err
	}
	r.batches[id] = next
	return next, nil
}
