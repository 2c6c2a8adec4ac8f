package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/shop24/shop24/internal/app"
	"github.com/shop24/shop24/internal/observability"
	platformcache "github.com/shop24/shop24/internal/platform/cache"
	salesmetrics "github.com/shop24/shop24/internal/sales/metrics"
	"github.com/shop24/shop24/jobs"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			return serve(c.Context, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	store, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var (
		cache     *salesmetrics.Cache
		inspector jobs.QueueInspector
	)
	if cfg.RedisAddr != "" {
		client, err := platformcache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis unavailable, report cache disabled", slog.Any("error", err))
		} else {
			defer func() {
				if err := client.Close(); err != nil {
					logger.Warn("redis close", slog.Any("error", err))
				}
			}()
			cache = salesmetrics.NewCache(client, cfg.ReportCacheTTL)
			insp := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
			defer func() { _ = insp.Close() }()
			inspector = insp
		}
	}

	metrics := observability.NewMetrics()
	router := app.NewRouter(app.RouterParams{
		Logger:     logger,
		Config:     cfg,
		Services:   app.NewServices(store, cache, logger, metrics),
		JobHandler: jobs.NewHandler(inspector, logger),
		Metrics:    metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr), slog.String("store", cfg.AppStore))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown", slog.Any("error", err))
			return err
		}
		logger.Info("http server stopped")
		return nil
	})
	return g.Wait()
}
