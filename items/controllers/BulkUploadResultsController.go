package controllers

import (
	"items-admin-backend/config"
	"items-admin-backend/items/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (bc *BulkItemController) GetBulkUploadResultsController(c *fiber.Ctx) error {
	batch, ok, err := bc.loadBatch(c)
	if !ok {
		return err
	}

	results := batch.Results
	if results == nil {
		results = []services.UploadResult{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Upload results retrieved successfully",
		"data": fiber.Map{
			"stage":     batch.Stage,
			"progress":  batch.Progress,
			"total":     len(batch.Drafts),
			"succeeded": batch.Succeeded(),
			"failed":    batch.Failed(),
			"results":   results,
		},
		"error": nil,
	})
}

func (bc *BulkItemController) ExportBulkUploadResultsController(c *fiber.Ctx) error {
	batch, ok, err := bc.loadBatch(c)
	if !ok {
		return err
	}
	if len(batch.Results) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No upload results to export",
			"data":    nil,
			"error":   "batch has no results",
		})
	}

	data, err := services.BuildResultsWorkbook(batch.Results)
	if err != nil {
		config.Logger.Error("Failed to build results workbook", zap.String("batch_id", batch.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to export results",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	return xlsxAttachment(c, services.ResultsFileName(batch.FileName), data)
}
