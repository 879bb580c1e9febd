package controllers

import (
	"io"

	"items-admin-backend/config"
	"items-admin-backend/items/services"
	"items-admin-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUploadSize bounds the spreadsheet read into memory.
const maxUploadSize = 10 << 20

// UploadBulkItemsFileController starts a new batch from the multipart
// "file" field.
func (bc *BulkItemController) UploadBulkItemsFileController(c *fiber.Ctx) error {
	createdBy := ""
	if user := middleware.CurrentUser(c); user != nil {
		createdBy = user.Email
	}
	return bc.ingest(c, services.NewBatch(uuid.New(), createdBy, bc.now()), fiber.StatusCreated)
}

// ReplaceBulkItemsFileController runs a new file through an existing
// batch, discarding everything it held.
func (bc *BulkItemController) ReplaceBulkItemsFileController(c *fiber.Ctx) error {
	batch, ok, err := bc.loadBatch(c)
	if !ok {
		return err
	}
	return bc.ingest(c, batch, fiber.StatusOK)
}

func (bc *BulkItemController) ingest(c *fiber.Ctx, batch services.BatchState, status int) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to get file",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	if file.Size > maxUploadSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"message": "File is too large",
			"data":    nil,
			"error":   "spreadsheet exceeds 10MB",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to open file",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to read file",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	next, err := services.Ingest(batch, file.Filename, data)
	if err != nil {
		if services.IsParseError(err) {
			config.Logger.Info("Rejected bulk item file",
				zap.String("file_name", file.Filename),
				zap.Error(err),
			)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid spreadsheet",
				"data":    nil,
				"error":   err.Error(),
			})
		}
		return c.Status(transitionStatus(err)).JSON(fiber.Map{
			"message": "Cannot replace the file of this batch",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if err := bc.BatchRepo.SaveBatch(c.UserContext(), next); err != nil {
		config.Logger.Error("Failed to save bulk item batch", zap.String("batch_id", next.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to save batch",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	config.Logger.Info("Bulk item file ingested",
		zap.String("batch_id", next.ID.String()),
		zap.String("file_name", file.Filename),
		zap.Int("drafts", len(next.Drafts)),
		zap.Int("violations", next.Report.ViolationCount()),
		zap.Int("warnings", len(next.Warnings)),
	)

	message := "File processed successfully"
	if !next.Valid {
		message = "File processed with validation errors"
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"data":    next,
		"error":   nil,
	})
}
