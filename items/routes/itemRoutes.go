package routes

import (
	"items-admin-backend/items/controllers"
	"items-admin-backend/items/repositories"
	"items-admin-backend/items/tasks"
	"items-admin-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func ItemRouterInit(
	app *fiber.App,
	batchRepository repositories.BatchRepository,
	runRepository repositories.UploadRunRepository,
	enqueuer tasks.TaskEnqueuer,
	verifier middleware.TokenVerifier,
) {
	bulkItemController := &controllers.BulkItemController{
		BatchRepo: batchRepository,
		RunRepo:   runRepository,
		Enqueuer:  enqueuer,
	}

	bulkRoutes := app.Group("/items/bulk", middleware.ProtectedRoute(verifier))
	bulkRoutes.Get("/template", bulkItemController.DownloadTemplateController)
	bulkRoutes.Get("/runs", bulkItemController.ListUploadRunsController)
	bulkRoutes.Post("/", bulkItemController.UploadBulkItemsFileController)
	bulkRoutes.Get("/:batchId", bulkItemController.GetBatchController)
	bulkRoutes.Put("/:batchId/file", bulkItemController.ReplaceBulkItemsFileController)
	bulkRoutes.Post("/:batchId/upload", bulkItemController.StartBulkUploadController)
	bulkRoutes.Get("/:batchId/results", bulkItemController.GetBulkUploadResultsController)
	bulkRoutes.Get("/:batchId/results/export", bulkItemController.ExportBulkUploadResultsController)
	bulkRoutes.Delete("/:batchId", bulkItemController.ClearBatchController)
}
