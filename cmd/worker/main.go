package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"files-manager/internal/adapter/worker"
	"files-manager/internal/config"
	infra "files-manager/internal/infrastructure/repository"
	"files-manager/internal/usecase"
)

func main() {
	cfg := config.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := infra.OpenDatabase(cfg.Storage.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	blobs, err := infra.NewBlobs(cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize blob storage:", err)
	}

	records := infra.NewSQLiteRecords(db)
	thumbnails := usecase.NewThumbnailUseCase(records, blobs, logger)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
		},
	)

	mux := asynq.NewServeMux()
	worker.NewTaskHandler(thumbnails).RegisterHandlers(mux)

	log.Printf("Starting worker with concurrency %d", cfg.Worker.Concurrency)
	// Run blocks until SIGTERM/SIGINT and drains in-flight tasks.
	if err := srv.Run(mux); err != nil {
		log.Fatal("Failed to start worker:", err)
	}
}
