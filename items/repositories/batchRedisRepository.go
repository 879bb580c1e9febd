package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"items-admin-backend/items/services"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const batchKeyPrefix = "bulk_batch:"

type redisBatchRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisBatchRepository keeps batches as JSON values that expire ttl
// after their last save. A zero ttl keeps them until deleted.
func NewRedisBatchRepository(rdb *redis.Client, ttl time.Duration) BatchRepository {
	return &redisBatchRepository{rdb: rdb, ttl: ttl}
}

func batchKey(id uuid.UUID) string {
	return batchKeyPrefix + id.String()
}

func (r *redisBatchRepository) SaveBatch(ctx context.Context, batch services.BatchState) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to encode batch %s: %w", batch.ID, err)
	}
	if err := r.rdb.Set(ctx, batchKey(batch.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save batch %s: %w", batch.ID, err)
	}
	return nil
}

func (r *redisBatchRepository) GetBatch(ctx context.Context, id uuid.UUID) (services.BatchState, error) {
	data, err := r.rdb.Get(ctx, batchKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return services.BatchState{}, ErrBatchNotFound
	}
	if err != nil {
		return services.BatchState{}, fmt.Errorf("failed to load batch %s: %w", id, err)
	}

	var batch services.BatchState
	if err := json.Unmarshal(data, &batch); err != nil {
		return services.BatchState{}, fmt.Errorf("failed to decode batch %s: %w", id, err)
	}
	return batch, nil
}

// maxUpdateAttempts bounds optimistic retries when another writer touches
// the batch key between WATCH and EXEC.
const maxUpdateAttempts = 5

func (r *redisBatchRepository) UpdateBatch(ctx context.Context, id uuid.UUID, fn func(services.BatchState) (services.BatchState, error)) (services.BatchState, error) {
	key := batchKey(id)

	var updated services.BatchState
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrBatchNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load batch %s: %w", id, err)
		}

		var current services.BatchState
		if err := json.Unmarshal(data, &current); err != nil {
			return fmt.Errorf("failed to decode batch %s: %w", id, err)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		encoded, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode batch %s: %w", id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, r.ttl)
			return nil
		})
		if err == nil {
			updated = next
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return services.BatchState{}, err
		}
		return updated, nil
	}
	return services.BatchState{}, fmt.Errorf("failed to update batch %s: too many concurrent writers", id)
}
