package controllers

import (
	"items-admin-backend/config"
	"items-admin-backend/items/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (bc *BulkItemController) DownloadTemplateController(c *fiber.Ctx) error {
	data, err := services.BuildTemplate()
	if err != nil {
		config.Logger.Error("Failed to build bulk item template", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate template",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	return xlsxAttachment(c, services.TemplateFileName, data)
}
