package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// ClearBatchController empties a batch but keeps its id so the client can
// pick another file for it.
func (bc *BulkItemController) ClearBatchController(c *fiber.Ctx) error {
	batch, ok, err := bc.loadBatch(c)
	if !ok {
		return err
	}

	cleared, err := batch.Cleared()
	if err != nil {
		return c.Status(transitionStatus(err)).JSON(fiber.Map{
			"message": "Batch cannot be cleared",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if err := bc.BatchRepo.SaveBatch(c.UserContext(), cleared); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to save batch",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Batch cleared",
		"data":    cleared,
		"error":   nil,
	})
}
