package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "items-admin-backend/config"
	internal_services "items-admin-backend/internal/services"
	"items-admin-backend/middleware"
	"items-admin-backend/token"
	"items-admin-backend/utils"
	"items-admin-backend/websocket"

	// Items
	item_repositories "items-admin-backend/items/repositories"
	item_routes "items-admin-backend/items/routes"
	item_services "items-admin-backend/items/services"
	item_tasks "items-admin-backend/items/tasks"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables before the logger so LOG_LEVEL applies
	envErr := godotenv.Load(".env")

	config.InitLogger()
	defer config.Logger.Sync()

	if envErr != nil {
		config.Logger.Warn("No .env file loaded, using process environment", zap.Error(envErr))
	}

	port := config.GetEnvDefault("PORT", "8080")
	ctx := context.Background()

	// Redis backs both the batch store and the asynq queue
	redisClient := config.InitRedisServer(ctx)
	redisOpts := config.RedisOptions()
	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     redisOpts.Addr,
		Password: redisOpts.Password,
		DB:       redisOpts.DB,
	}

	asynqClient := asynq.NewClient(asynqRedisOpt)
	defer asynqClient.Close()

	tokenMaker, err := token.NewPasetoMaker(config.GetEnv("TOKEN_SYMMETRIC_KEY"))
	if err != nil {
		config.Logger.Fatal("Cannot create token maker", zap.Error(err))
	}

	catalogService, err := internal_services.NewCatalogServiceFromEnv()
	if err != nil {
		config.Logger.Fatal("Cannot create catalog client", zap.Error(err))
	}

	// Repositories
	batchRepo := item_repositories.NewRedisBatchRepository(redisClient, config.GetEnvDuration("BATCH_TTL", 24*time.Hour))

	var runRepo item_repositories.UploadRunRepository
	if db := config.ConfigureDatabase(); db != nil {
		runRepo = item_repositories.NewUploadRunRepository(db)

		retention := time.Duration(config.GetEnvInt("UPLOAD_RUN_RETENTION_DAYS", 90)) * 24 * time.Hour
		scheduler, err := utils.RunScheduledCleanup(runRepo, retention)
		if err != nil {
			config.Logger.Fatal("Failed to schedule upload run cleanup", zap.Error(err))
		}
		defer scheduler.Stop()
	}

	var reporter item_tasks.RunReporter
	if utils.InitializeMailer() {
		reporter = item_tasks.NewEmailRunReporter()
	}

	// ------ WebSocket Hub for upload progress ------
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// ------ Background upload worker ------
	uploadHandler := &item_tasks.BulkUploadHandler{
		Batches:      batchRepo,
		Runs:         runRepo,
		Orchestrator: item_services.NewUploadOrchestrator(catalogService),
		Publisher:    wsHub,
		Reporter:     reporter,
	}

	asynqServer := asynq.NewServer(asynqRedisOpt, asynq.Config{
		Concurrency: config.GetEnvInt("UPLOAD_WORKERS", 2),
		Queues:      map[string]int{"bulk_uploads": 1},
		Logger:      config.Logger.Sugar(),
	})
	mux := asynq.NewServeMux()
	mux.Handle(item_tasks.TypeBulkUpload, uploadHandler)
	if err := asynqServer.Start(mux); err != nil {
		config.Logger.Fatal("Failed to start upload worker", zap.Error(err))
	}

	app := fiber.New(fiber.Config{BodyLimit: 12 * 1024 * 1024})
	middleware.InitCors(app)

	// Routes
	item_routes.ItemRouterInit(app, batchRepo, runRepo, asynqClient, tokenMaker)

	wsHandler := websocket.NewWsHandler(wsHub, tokenMaker)
	app.Get("/ws/bulk-uploads", wsHandler.HandleWebSocket)
	config.Logger.Info("WebSocket endpoint registered at /ws/bulk-uploads")

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		config.Logger.Info("Shutting down")
		asynqServer.Shutdown()
		if err := app.Shutdown(); err != nil {
			config.Logger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	config.Logger.Info("Server starting", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(err))
	}
}
