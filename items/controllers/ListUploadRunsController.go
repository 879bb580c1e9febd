package controllers

import (
	"items-admin-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

func (bc *BulkItemController) ListUploadRunsController(c *fiber.Ctx) error {
	if bc.RunRepo == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Upload history is not enabled",
			"data":    nil,
			"error":   "no database configured",
		})
	}

	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid pagination parameters",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	runs, total, err := bc.RunRepo.ListUploadRuns(params.PageSize, params.Offset())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to retrieve upload runs",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Upload runs retrieved successfully",
		"data":    pagination.NewPaginatedResponse(c, runs, total, params),
		"error":   nil,
	})
}
