package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/octabyte/saveat-admin/apiclient"
	"github.com/octabyte/saveat-admin/config"
	"github.com/octabyte/saveat-admin/db/redis"
	"github.com/octabyte/saveat-admin/notifications"
	"github.com/octabyte/saveat-admin/otel"
	"github.com/octabyte/saveat-admin/otel/metrics"
	"github.com/octabyte/saveat-admin/server"
	"github.com/octabyte/saveat-admin/session"
	"github.com/octabyte/saveat-admin/storage"
	"github.com/octabyte/saveat-admin/storage/memory"
	"github.com/octabyte/saveat-admin/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("configuration: " + err.Error())
	}

	logger.Init(cfg.Logger())
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := otel.Init(ctx, cfg.Otel())
	if err != nil {
		logger.LogWarn("telemetry disabled", zap.Error(err))
		shutdownTelemetry = func(context.Context) error { return nil }
	}
	if err := metrics.Init(cfg.ServiceName); err != nil {
		logger.LogWarn("metrics instruments unavailable", zap.Error(err))
	}

	client := redis.NewRedisClient(cfg.Redis())
	defer client.Close()
	if err := redis.Ping(ctx, client); err != nil {
		logger.LogWarn("durable credential area unavailable, remembered logins will not persist", zap.Error(err))
	}

	store := storage.NewCredentialStore(redis.NewArea(client, cfg.RedisKeyPrefix), memory.NewArea())
	nav := server.NewNavigation()
	manager := session.NewManager(store, nav)
	manager.Initialize(ctx)

	api := apiclient.New(cfg.API(), store, manager)
	poller := notifications.NewPoller(api, manager, cfg.NotificationsPollInterval)
	go poller.Run(ctx)

	srv := server.New(server.Options{ServiceName: cfg.ServiceName, Tracing: cfg.OtelEnabled}, api, manager, poller, nav)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		logger.LogInfo("shutting down")
	case err := <-errCh:
		if err != nil {
			logger.LogError("console stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.LogError("server shutdown", zap.Error(err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.LogError("telemetry shutdown", zap.Error(err))
	}
}
