package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"finboard/internal/amqp"
	"finboard/internal/cache"
	"finboard/internal/cli"
	"finboard/internal/log"
	"finboard/internal/worker"
)

const reportInterval = time.Minute

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg, log.ComponentWorker)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the activity consumer")
		os.Exit(1)
	}

	logger.Info("Starting finboard-activity",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := cli.GracefulShutdown(logger)
	defer cancel()

	activity := worker.NewActivityWorker(logger.Logger)
	caches := cache.NewManager(logger.WithComponent(log.ComponentCache).Logger)
	caches.Register("activity_ids", activity.SeenCleaner())
	caches.StartCleanup(10 * time.Minute)
	defer caches.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		err := client.ConsumeActivity(gctx, func(msg *amqp.ActivityMessage) error {
			return activity.HandleActivity(gctx, msg)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		activity.ReportEvery(gctx, reportInterval)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Activity consumption failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Activity consumer stopped gracefully")
}
