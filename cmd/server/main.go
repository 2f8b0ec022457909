package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appinventory "github.com/wms/backend/internal/application/inventory"
	apppicking "github.com/wms/backend/internal/application/picking"
	apptransfer "github.com/wms/backend/internal/application/transfer"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/infrastructure/cache"
	"github.com/wms/backend/internal/infrastructure/config"
	"github.com/wms/backend/internal/infrastructure/event"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/infrastructure/persistence"
	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	recordRepo := persistence.NewGormRecordRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	orderRepo := persistence.NewGormTransferOrderRepository(db.DB)

	var idempotency shared.IdempotencyStore
	if cfg.Redis.Enabled {
		idempotency, err = cache.NewRedisIdempotencyStore(cache.RedisConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
	} else {
		idempotency = cache.NewInMemoryIdempotencyStore()
	}
	defer idempotency.Close()

	eventBus := event.NewInMemoryEventBus(log)
	authorizer := auth.NewStaticAuthorizer(cfg.Transfer.Approvers)

	pickingService := apppicking.NewService(recordRepo, eventBus, log)
	inventoryService := appinventory.NewService(recordRepo, movementRepo, eventBus, log)
	transferService := apptransfer.NewService(
		orderRepo, recordRepo, movementRepo, idempotency, authorizer, eventBus, log,
		apptransfer.Config{
			MaxRetries:     cfg.Transfer.MaxRetries,
			IdempotencyTTL: cfg.Transfer.IdempotencyTTL,
		})

	engine := router.New(router.Config{
		Env:           cfg.App.Env,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		JWTExpiration: time.Duration(cfg.JWT.ExpirationHours) * time.Hour,
		Logger:        log,
		System:        handler.NewSystemHandler(db),
		Registrars: []router.RouteRegistrar{
			handler.NewPickingHandler(pickingService),
			handler.NewInventoryHandler(inventoryService),
			handler.NewTransferHandler(transferService),
		},
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.App.Env))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
