package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/micro-ha/smarthome-dashboard/internal/config"
	httpapi "github.com/micro-ha/smarthome-dashboard/internal/http"
	"github.com/micro-ha/smarthome-dashboard/internal/http/handlers"
	"github.com/micro-ha/smarthome-dashboard/internal/logging"
	"github.com/micro-ha/smarthome-dashboard/internal/metrics"
	"github.com/micro-ha/smarthome-dashboard/internal/repository/sqlite"
	"github.com/micro-ha/smarthome-dashboard/internal/seed"
	"github.com/micro-ha/smarthome-dashboard/internal/services/auth"
	"github.com/micro-ha/smarthome-dashboard/internal/services/dashboard"
	devicesvc "github.com/micro-ha/smarthome-dashboard/internal/services/device"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadServer()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	if cfg.DefaultJWTSecret() {
		logger.Warn("JWT_SECRET not set, signing tokens with the development secret")
	}

	if err := os.MkdirAll(cfg.DBDir(), 0o755); err != nil {
		logger.Error("failed to create db directory", "err", err)
		os.Exit(1)
	}

	db, err := sqlite.Open(ctx, cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to initialize storage", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	m := metrics.New()
	deviceRepo := sqlite.NewDeviceRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	devices := devicesvc.New(deviceRepo, m, logger)
	users := auth.New(userRepo, auth.Options{Secret: cfg.JWTSecret, TTL: cfg.TokenTTL}, m, logger)

	if cfg.SeedDemo {
		if err := seed.Run(ctx, deviceRepo, devices, userRepo, users, logger); err != nil {
			logger.Error("failed to seed database", "err", err)
			os.Exit(1)
		}
	}
	devices.RefreshCounts(ctx)

	api := handlers.New(devices, users, dashboard.New(devices), db, logger)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(api, users, m),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server starting", "addr", httpServer.Addr, "db_path", cfg.DBPath)
	if err := httpapi.RunServer(ctx, httpServer); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server terminated with error", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
