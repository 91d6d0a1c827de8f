// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/pinewood/internal/api"
	"github.com/tomtom215/pinewood/internal/cache"
	"github.com/tomtom215/pinewood/internal/config"
	"github.com/tomtom215/pinewood/internal/dataset"
	"github.com/tomtom215/pinewood/internal/logging"
	"github.com/tomtom215/pinewood/internal/recommend"
	"github.com/tomtom215/pinewood/internal/supervisor"
	"github.com/tomtom215/pinewood/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("source", cfg.Dataset.Source).
		Int("k", cfg.Recommend.K).
		Bool("exclude_rated", cfg.Recommend.ExcludeRated).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("Starting Pinewood with supervisor tree")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ds, err := dataset.Load(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}

	resultCache, closeCache, err := cache.NewResultCache(ctx, &cfg.Cache)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize result cache")
	}
	defer func() {
		if err := closeCache(); err != nil {
			logging.Error().Err(err).Msg("Error closing result cache")
		}
	}()

	var opts []recommend.Option
	if resultCache != nil {
		opts = append(opts, recommend.WithCache(resultCache))
	}
	engine, err := recommend.NewEngine(ds.Matrix, ds.Catalog, cfg.Recommend.EngineConfig(),
		logging.WithComponent("recommend"), opts...)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	handler := api.NewHandler(engine, ds.Catalog, cfg.Recommend.MaxK, readinessCheck(resultCache))
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, mw, cfg.Server.Timeout),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout + 5*time.Second,
	})

	if mem, ok := resultCache.(*cache.MemoryResults); ok {
		tree.AddDataService(services.NewCacheJanitor(mem, time.Minute))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
		cancel()
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Pinewood stopped gracefully")
}

// readinessCheck reports the result cache as a dependency when it can be
// pinged. Without one the server is ready once the dataset is loaded.
func readinessCheck(c recommend.ResultCache) api.ReadinessCheck {
	type pinger interface {
		Ping(ctx context.Context) error
	}
	p, ok := c.(pinger)
	if !ok {
		return nil
	}
	return func(ctx context.Context) error {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("result cache: %w", err)
		}
		return nil
	}
}
