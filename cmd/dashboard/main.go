package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/micro-ha/smarthome-dashboard/internal/cli"
	"github.com/micro-ha/smarthome-dashboard/internal/config"
	"github.com/micro-ha/smarthome-dashboard/internal/localcache"
	"github.com/micro-ha/smarthome-dashboard/internal/logging"
	"github.com/micro-ha/smarthome-dashboard/internal/remote"
	"github.com/micro-ha/smarthome-dashboard/internal/syncstate"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadClient()
	logger := logging.NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logger.Error("failed to load config", "err", err)
		return 1
	}

	cache := localcache.Open(ctx, cfg.CachePath, logger)
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Warn("failed to close local cache", "err", err)
		}
	}()

	token := localcache.NewHandle(cache, localcache.KeyAuthToken, "")
	client := remote.NewClientWithHTTPClient(cfg.APIBaseURL, remote.NewSession(token), &http.Client{Timeout: cfg.APITimeout})
	state := syncstate.New(cache, client, logger, syncstate.Options{Seed: cfg.SeedDemo})

	app := cli.New(state, client, os.Stdout, os.Stderr, logger)
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}
