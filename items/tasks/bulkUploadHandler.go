package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"items-admin-backend/config"
	"items-admin-backend/items/repositories"
	"items-admin-backend/items/services"
	"items-admin-backend/websocket"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ProgressPublisher pushes batch events to connected clients.
type ProgressPublisher interface {
	PublishToBatch(batchID string, msgType websocket.MessageType, payload interface{})
}

// RunReporter is told about every finished run.
type RunReporter interface {
	ReportRun(batch services.BatchState) error
}

// CompletedPayload is sent with UPLOAD_COMPLETED.
type CompletedPayload struct {
	Total     int                     `json:"total"`
	Succeeded int                     `json:"succeeded"`
	Failed    int                     `json:"failed"`
	Results   []services.UploadResult `json:"results"`
}

// BulkUploadHandler executes TypeBulkUpload tasks. Runs and Reporter are
// optional.
type BulkUploadHandler struct {
	Batches      repositories.BatchRepository
	Runs         repositories.UploadRunRepository
	Orchestrator *services.UploadOrchestrator
	Publisher    ProgressPublisher
	Reporter     RunReporter
}

func (h *BulkUploadHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p BulkUploadPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("invalid bulk upload payload: %v: %w", err, asynq.SkipRetry)
	}
	batchID := p.BatchID.String()

	// Claiming the run and checking the stage is one update, so a task
	// delivered again after a shutdown or crash never reaches the catalog.
	batch, err := h.Batches.UpdateBatch(ctx, p.BatchID, func(s services.BatchState) (services.BatchState, error) {
		return s.RunStarted(time.Now())
	})
	switch {
	case errors.Is(err, repositories.ErrBatchNotFound):
		config.Logger.Warn("Bulk upload batch vanished before processing", zap.String("batch_id", batchID))
		return fmt.Errorf("batch %s: %w", batchID, asynq.SkipRetry)
	case errors.Is(err, services.ErrRunAlreadyStarted):
		return h.finishInterrupted(ctx, p)
	case err != nil:
		config.Logger.Warn("Bulk upload task could not claim batch",
			zap.String("batch_id", batchID),
			zap.Error(err),
		)
		return fmt.Errorf("batch %s: %v: %w", batchID, err, asynq.SkipRetry)
	}

	config.Logger.Info("Bulk upload started",
		zap.String("batch_id", batchID),
		zap.Int("drafts", len(batch.Drafts)),
	)

	final, err := services.RunUpload(ctx, batch, h.Orchestrator, func(state services.BatchState, ev services.ProgressEvent) {
		h.save(ctx, state)
		h.publish(batchID, websocket.MessageTypeUploadProgress, ev)
	})
	if err != nil {
		h.publish(batchID, websocket.MessageTypeError, map[string]string{"message": err.Error()})
		return fmt.Errorf("batch %s: %v: %w", batchID, err, asynq.SkipRetry)
	}

	h.save(ctx, final)
	h.complete(final)
	return nil
}

// finishInterrupted closes a batch whose earlier run stopped part way. The
// drafts without a recorded result are failed rather than submitted again.
func (h *BulkUploadHandler) finishInterrupted(ctx context.Context, p BulkUploadPayload) error {
	batchID := p.BatchID.String()
	final, err := h.Batches.UpdateBatch(context.WithoutCancel(ctx), p.BatchID, func(s services.BatchState) (services.BatchState, error) {
		return s.Interrupted(time.Now())
	})
	if err != nil {
		config.Logger.Error("Failed to close interrupted bulk upload", zap.String("batch_id", batchID), zap.Error(err))
		return fmt.Errorf("batch %s: %v: %w", batchID, err, asynq.SkipRetry)
	}

	config.Logger.Warn("Bulk upload was interrupted; remaining items marked failed",
		zap.String("batch_id", batchID),
		zap.Int("recorded", final.Succeeded()+final.Failed()),
	)
	h.complete(final)
	return nil
}

// complete announces a finished batch, records it and reports it.
func (h *BulkUploadHandler) complete(final services.BatchState) {
	batchID := final.ID.String()
	h.publish(batchID, websocket.MessageTypeUploadCompleted, CompletedPayload{
		Total:     len(final.Results),
		Succeeded: final.Succeeded(),
		Failed:    final.Failed(),
		Results:   final.Results,
	})

	config.Logger.Info("Bulk upload completed",
		zap.String("batch_id", batchID),
		zap.Int("succeeded", final.Succeeded()),
		zap.Int("failed", final.Failed()),
		zap.Duration("elapsed", elapsed(final)),
	)

	if h.Runs != nil {
		if _, err := h.Runs.LogUploadRun(final); err != nil {
			config.Logger.Error("Failed to record bulk upload run", zap.String("batch_id", batchID), zap.Error(err))
		}
	}
	if h.Reporter != nil {
		if err := h.Reporter.ReportRun(final); err != nil {
			config.Logger.Warn("Failed to report bulk upload run", zap.String("batch_id", batchID), zap.Error(err))
		}
	}
}

// save stores progress; a failed save must not stop the run. It outlives
// ctx so that a worker shutting down still records what it finished.
func (h *BulkUploadHandler) save(ctx context.Context, state services.BatchState) {
	if err := h.Batches.SaveBatch(context.WithoutCancel(ctx), state); err != nil {
		config.Logger.Error("Failed to save bulk upload progress",
			zap.String("batch_id", state.ID.String()),
			zap.Int("progress", state.Progress),
			zap.Error(err),
		)
	}
}

func (h *BulkUploadHandler) publish(batchID string, msgType websocket.MessageType, payload interface{}) {
	if h.Publisher != nil {
		h.Publisher.PublishToBatch(batchID, msgType, payload)
	}
}

func elapsed(s services.BatchState) time.Duration {
	if s.UploadStartedAt == nil || s.UploadCompletedAt == nil {
		return 0
	}
	return s.UploadCompletedAt.Sub(*s.UploadStartedAt)
}
