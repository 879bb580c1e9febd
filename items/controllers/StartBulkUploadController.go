package controllers

import (
	"errors"

	"items-admin-backend/config"
	"items-admin-backend/items/repositories"
	"items-admin-backend/items/services"
	"items-admin-backend/items/tasks"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartBulkUploadController moves a valid batch to uploading and hands it
// to the background worker.
func (bc *BulkItemController) StartBulkUploadController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("batchId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid batch ID",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	// The stage check and the save happen as one update so that only one
	// of several simultaneous requests can start the batch.
	ctx := c.UserContext()
	var rejected services.BatchState
	uploading, err := bc.BatchRepo.UpdateBatch(ctx, id, func(batch services.BatchState) (services.BatchState, error) {
		next, err := batch.Uploading(bc.now())
		if err != nil {
			rejected = batch
		}
		return next, err
	})
	if errors.Is(err, repositories.ErrBatchNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Batch not found",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	if err != nil {
		status := transitionStatus(err)
		var data interface{}
		if errors.Is(err, services.ErrBatchInvalid) {
			data = fiber.Map{"report": rejected.Report}
		}
		message := "Batch cannot be uploaded"
		if status == fiber.StatusInternalServerError {
			message = "Failed to save batch"
		}
		return c.Status(status).JSON(fiber.Map{
			"message": message,
			"data":    data,
			"error":   err.Error(),
		})
	}

	info, err := tasks.EnqueueBulkUpload(bc.Enqueuer, uploading.ID)
	if err != nil {
		config.Logger.Error("Failed to enqueue bulk upload", zap.String("batch_id", uploading.ID.String()), zap.Error(err))
		if _, restoreErr := bc.BatchRepo.UpdateBatch(ctx, id, restoreUnstarted); restoreErr != nil {
			config.Logger.Error("Failed to restore batch after enqueue failure",
				zap.String("batch_id", id.String()),
				zap.Error(restoreErr),
			)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to start upload",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	config.Logger.Info("Bulk upload queued",
		zap.String("batch_id", uploading.ID.String()),
		zap.String("task_id", info.ID),
		zap.Int("drafts", len(uploading.Drafts)),
	)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Upload started",
		"data":    uploading,
		"error":   nil,
	})
}

// restoreUnstarted puts an uploading batch that no worker has claimed back
// to validated.
func restoreUnstarted(batch services.BatchState) (services.BatchState, error) {
	if batch.Stage != services.StageUploading || batch.RunStartedAt != nil {
		return batch, nil
	}
	restored := batch
	restored.Stage = services.StageValidated
	restored.UploadStartedAt = nil
	return restored, nil
}
