package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"epass-service/config"
	"epass-service/internal/handler"
	"epass-service/internal/logger"
	"epass-service/internal/messaging"
	"epass-service/internal/model"
	"epass-service/internal/repository"
	"epass-service/internal/service"
	"epass-service/internal/storage"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := os.Getenv("EPASS_CONFIG")
	if configPath == "" {
		configPath = "config/config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Log.Mode == "production" || cfg.Log.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	slots, closeSlots, err := openSlots(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
	}
	defer closeSlots()
	log.Info("storage ready", "driver", cfg.Storage.Driver)

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository()
	var seed func() []model.Pass
	if cfg.Storage.SeedFixtures {
		seed = func() []model.Pass {
			return repository.GenerateFixtures(time.Now(), categoryRepo.FindAll())
		}
	}
	passRepo := repository.NewPassRepository(slots, seed, log)
	sessionRepo := repository.NewSessionRepository(slots, log)

	// Messaging is optional; without it no events are recorded.
	var events service.EventSink
	var outboxStats handler.OutboxStats
	if cfg.RabbitMQ.Enabled {
		rmq, err := messaging.NewRabbitMQ(cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ", "error", err)
		}
		defer rmq.Close()
		log.Info("connected to RabbitMQ")

		outboxRepo := repository.NewOutboxRepository(slots, time.Now)
		worker := messaging.NewOutboxWorker(outboxRepo, rmq, log)
		worker.Start()
		defer worker.Stop()

		events = outboxRepo
		outboxStats = worker
	}

	// Initialize services
	authService, err := service.NewAuthService(sessionRepo, cfg.JWT, cfg.Admin, time.Now, log)
	if err != nil {
		log.Fatal("failed to init auth service", "error", err)
	}
	passService := service.NewPassService(passRepo, events, time.Now, log)
	viewService := service.NewViewService(passRepo, categoryRepo)

	router := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AuthMiddleware: handler.NewAuthMiddleware(authService, log),
		AuthHandler:    handler.NewAuthHandler(authService, log),
		PassHandler:    handler.NewPassHandler(passService, viewService, log),
		AdminHandler:   handler.NewAdminHandler(passService, viewService, outboxStats, log),
		Log:            log,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("e-pass service starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
}

// openSlots picks the slot backend named by the storage driver. The returned
// func releases it.
func openSlots(ctx context.Context, cfg *config.Config) (storage.Slots, func(), error) {
	switch cfg.Storage.Driver {
	case "", "file":
		slots, err := storage.NewFileSlots(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return slots, func() {}, nil
	case "postgres":
		slots, err := storage.OpenPostgres(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		return slots, func() { slots.Close() }, nil
	case "memory":
		return storage.NewMemorySlots(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
