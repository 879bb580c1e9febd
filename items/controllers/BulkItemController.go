package controllers

import (
	"errors"
	"time"

	"items-admin-backend/items/repositories"
	"items-admin-backend/items/services"
	"items-admin-backend/items/tasks"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BulkItemController struct {
	BatchRepo repositories.BatchRepository
	RunRepo   repositories.UploadRunRepository
	Enqueuer  tasks.TaskEnqueuer
	Now       func() time.Time
}

func (bc *BulkItemController) now() time.Time {
	if bc.Now != nil {
		return bc.Now()
	}
	return time.Now()
}

// loadBatch resolves :batchId. On failure the response is already written
// and the returned error must be passed back to fiber.
func (bc *BulkItemController) loadBatch(c *fiber.Ctx) (services.BatchState, bool, error) {
	id, err := uuid.Parse(c.Params("batchId"))
	if err != nil {
		return services.BatchState{}, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid batch ID",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	batch, err := bc.BatchRepo.GetBatch(c.UserContext(), id)
	if errors.Is(err, repositories.ErrBatchNotFound) {
		return services.BatchState{}, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Batch not found",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	if err != nil {
		return services.BatchState{}, false, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load batch",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	return batch, true, nil
}

// transitionStatus maps a rejected batch transition onto an HTTP status.
func transitionStatus(err error) int {
	var transitionErr *services.TransitionError
	switch {
	case errors.Is(err, services.ErrBatchInvalid), errors.Is(err, services.ErrBatchEmpty):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUploadInProgress), errors.As(err, &transitionErr):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func xlsxAttachment(c *fiber.Ctx, fileName string, data []byte) error {
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(fileName)
	return c.Send(data)
}
