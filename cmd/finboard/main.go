package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"finboard/internal/backend"
	"finboard/internal/cache"
	"finboard/internal/cli"
	apphttp "finboard/internal/http"
	"finboard/internal/log"
	"finboard/internal/services"
	"finboard/internal/tracing"
	"finboard/internal/workspace"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg, log.ComponentApp)

	ctx, cancel := cli.GracefulShutdown(logger)
	defer cancel()

	shutdownTracing, err := tracing.Setup(ctx, cfg.OTLPEndpoint, cfg.OTELServiceName)
	if err != nil {
		logger.Error("Failed to set up tracing", "error", err, "endpoint", cfg.OTLPEndpoint)
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	store := workspace.NewStore(cfg.WorkspaceMax, cfg.WorkspaceTTL, workspace.Seed{
		ExtraTransactions: cfg.MockExtraTransactions,
		Seed:              cfg.MockSeed,
	})
	caches := cache.NewManager(logger.WithComponent(log.ComponentCache).Logger)
	caches.Register("workspaces", store.Cleaner())
	caches.StartCleanup(time.Minute)

	var publisher services.ActivityPublisher
	if res.Publisher != nil {
		publisher = res.Publisher
	}
	svc := services.NewWorkspaceService(res.Themes, publisher, logger)

	srv, err := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Workspaces:         store,
		Service:            svc,
		Logger:             logger,
		Ready:              res.Ready,
		Now:                cfg.Today,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
	if err != nil {
		logger.Error("Failed to create HTTP server", "error", err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting finboard server",
			"port", cfg.Port,
			"backend", cfg.DataBackend,
			"activity_feed", publisher != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	runErr := g.Wait()

	caches.Stop()
	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Warn("Tracing shutdown error", "error", err)
	}
	if err := res.Cleanup(); err != nil {
		logger.Warn("Backend cleanup error", "error", err)
	}

	if runErr != nil {
		logger.Error("Server error", "error", runErr, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
