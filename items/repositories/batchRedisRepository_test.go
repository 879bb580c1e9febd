package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"items-admin-backend/items/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRepo(t *testing.T, ttl time.Duration) (BatchRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisBatchRepository(rdb, ttl), mr
}

func sampleBatch() services.BatchState {
	s := services.NewBatch(uuid.New(), "admin@example.com", time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	s.Stage = services.StageValidated
	s.FileName = "items.xlsx"
	s.Drafts = []services.ProductDraft{{ProductName: "Tee", Title: "Tee", Description: "Soft", Sizes: []services.SizeVariant{{Size: "S", Quantity: 3}}}}
	s.Report = services.ValidationReport{0: {"Title is required"}}
	return s
}

func TestRedisBatchRepository_SaveAndGet(t *testing.T) {
	repo, mr := newRedisRepo(t, time.Hour)
	ctx := context.Background()
	batch := sampleBatch()

	require.NoError(t, repo.SaveBatch(ctx, batch))
	assert.True(t, mr.Exists(batchKey(batch.ID)))
	assert.Equal(t, time.Hour, mr.TTL(batchKey(batch.ID)))

	got, err := repo.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, batch.ID, got.ID)
	assert.Equal(t, services.StageValidated, got.Stage)
	assert.Equal(t, "Tee", got.Drafts[0].ProductName)
	assert.Equal(t, []string{"Title is required"}, got.Report[0])
}

func TestRedisBatchRepository_ExpiredBatchIsNotFound(t *testing.T) {
	repo, mr := newRedisRepo(t, time.Minute)
	ctx := context.Background()
	batch := sampleBatch()
	require.NoError(t, repo.SaveBatch(ctx, batch))

	mr.FastForward(2 * time.Minute)

	_, err := repo.GetBatch(ctx, batch.ID)
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func uploadableBatch() services.BatchState {
	s := sampleBatch()
	s.Report = services.ValidationReport{}
	s.Valid = true
	return s
}

// startConcurrently runs Uploading on the stored batch from n goroutines at
// once and returns how many of them won.
func startConcurrently(t *testing.T, repo BatchRepository, id uuid.UUID, n int) int {
	t.Helper()
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		wins  int
		start = make(chan struct{})
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := repo.UpdateBatch(context.Background(), id, func(s services.BatchState) (services.BatchState, error) {
				return s.Uploading(time.Now())
			})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, services.ErrUploadInProgress)
		}()
	}
	close(start)
	wg.Wait()
	return wins
}

func TestRedisBatchRepository_UpdateBatch(t *testing.T) {
	repo, mr := newRedisRepo(t, time.Hour)
	ctx := context.Background()
	batch := uploadableBatch()
	require.NoError(t, repo.SaveBatch(ctx, batch))

	updated, err := repo.UpdateBatch(ctx, batch.ID, func(s services.BatchState) (services.BatchState, error) {
		return s.Uploading(time.Now())
	})
	require.NoError(t, err)
	assert.Equal(t, services.StageUploading, updated.Stage)
	assert.Equal(t, time.Hour, mr.TTL(batchKey(batch.ID)))

	stored, err := repo.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, services.StageUploading, stored.Stage)

	_, err = repo.UpdateBatch(ctx, batch.ID, func(s services.BatchState) (services.BatchState, error) {
		return s.Uploading(time.Now())
	})
	assert.ErrorIs(t, err, services.ErrUploadInProgress)

	_, err = repo.UpdateBatch(ctx, uuid.New(), func(s services.BatchState) (services.BatchState, error) {
		return s, nil
	})
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestRedisBatchRepository_UpdateBatchAllowsOneConcurrentStart(t *testing.T) {
	repo, _ := newRedisRepo(t, 0)
	batch := uploadableBatch()
	require.NoError(t, repo.SaveBatch(context.Background(), batch))

	assert.Equal(t, 1, startConcurrently(t, repo, batch.ID, 2))
}

func TestMemoryBatchRepository(t *testing.T) {
	repo := NewMemoryBatchRepository()
	ctx := context.Background()
	batch := uploadableBatch()

	_, err := repo.GetBatch(ctx, batch.ID)
	assert.ErrorIs(t, err, ErrBatchNotFound)

	require.NoError(t, repo.SaveBatch(ctx, batch))
	got, err := repo.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, batch.FileName, got.FileName)

	assert.Equal(t, 1, startConcurrently(t, repo, batch.ID, 8))
}

func TestNewUploadRun_SummarisesResults(t *testing.T) {
	started := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	completed := started.Add(time.Minute)
	batch := sampleBatch()
	batch.Drafts = append(batch.Drafts, services.ProductDraft{ProductName: "Cap"})
	batch.UploadStartedAt = &started
	batch.UploadCompletedAt = &completed

	batch.Results = []services.UploadResult{{ProductName: "Tee", Success: true, RemoteID: "r1"}, {ProductName: "Cap", Error: "boom"}}
	run := NewUploadRun(batch)
	assert.Equal(t, batch.ID, run.BatchID)
	assert.Equal(t, 2, run.TotalDrafts)
	assert.Equal(t, 1, run.Succeeded)
	assert.Equal(t, 1, run.Failed)
	assert.Equal(t, "COMPLETED_WITH_FAILURES", string(run.Status))
	assert.Equal(t, started, run.StartedAt)
	assert.Equal(t, completed, run.CompletedAt)
	require.Len(t, run.Results, 2)
	assert.Equal(t, "boom", run.Results[1].Error)

	batch.Results = []services.UploadResult{{ProductName: "Tee", Success: true}}
	assert.Equal(t, "COMPLETED", string(NewUploadRun(batch).Status))

	batch.Results = []services.UploadResult{{ProductName: "Tee", Error: "x"}}
	assert.Equal(t, "FAILED", string(NewUploadRun(batch).Status))
}
