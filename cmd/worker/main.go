package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/shop24/shop24/internal/app"
	jobmetrics "github.com/shop24/shop24/internal/jobs"
	"github.com/shop24/shop24/internal/observability"
	salesmetrics "github.com/shop24/shop24/internal/sales/metrics"
	"github.com/shop24/shop24/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	if cfg.AppStore == app.StoreMemory {
		// A private in-memory store never sees the API's orders.
		return errors.New("the worker needs a shared store, APP_STORE=memory is not supported")
	}
	if cfg.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required by the worker")
	}
	store, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics := observability.NewMetrics()
	snapshotJob := jobs.NewMetricsSnapshotJob(
		salesmetrics.NewService(store, nil, logger),
		metrics,
		logger,
		jobmetrics.NewMetrics(metrics.Registerer()),
	)
	snapshotTask, err := jobs.NewMetricsSnapshotTask("scheduled")
	if err != nil {
		return err
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskMetricsSnapshot, Handler: snapshotJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.MetricsSnapshotCron, Task: snapshotTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	server := &http.Server{Addr: cfg.WorkerMetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("worker metrics listening", slog.String("addr", cfg.WorkerMetricsAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
