package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"files-manager/internal/adapter/handler"
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

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer queueClient.Close()

	blobs, err := infra.NewBlobs(cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize blob storage:", err)
	}

	sessions := infra.NewRedisSessions(redisClient)
	records := infra.NewSQLiteRecords(db)
	queue := infra.NewAsynqQueue(queueClient)

	authUseCase := usecase.NewAuthUseCase(sessions, records, queue, logger)
	filesUseCase := usecase.NewFilesUseCase(records, blobs, queue, logger)
	appUseCase := usecase.NewAppUseCase(sessions, records)

	router := gin.Default()
	handler.NewAppHandler(appUseCase, logger).RegisterRoutes(router)
	handler.NewAuthHandler(authUseCase, logger).RegisterRoutes(router)
	handler.NewFilesHandler(authUseCase, filesUseCase, logger).RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.API.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting server on port %s", cfg.API.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
