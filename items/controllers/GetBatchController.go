package controllers

import (
	"github.com/gofiber/fiber/v2"
)

func (bc *BulkItemController) GetBatchController(c *fiber.Ctx) error {
	batch, ok, err := bc.loadBatch(c)
	if !ok {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Batch retrieved successfully",
		"data":    batch,
		"error":   nil,
	})
}
