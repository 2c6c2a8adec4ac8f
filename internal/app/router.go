package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shop24/shop24/internal/masterdata/categories"
	"github.com/shop24/shop24/internal/masterdata/products"
	"github.com/shop24/shop24/internal/observability"
	"github.com/shop24/shop24/internal/platform/httpx"
	"github.com/shop24/shop24/internal/sales/customers"
	salesmetrics "github.com/shop24/shop24/internal/sales/metrics"
	"github.com/shop24/shop24/internal/sales/orders"
	"github.com/shop24/shop24/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger     *slog.Logger
	Config     *Config
	Services   *Services
	JobHandler *jobs.Handler
	Metrics    *observability.Metrics
}

// NewRouter constructs the chi.Router with shop24 defaults.
func NewRouter(params RouterParams) http.Handler {
	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), r.Method+" not allowed on "+r.URL.Path)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if svc := params.Services; svc != nil {
		r.Route("/api", func(r chi.Router) {
			categories.NewHandler(logger, svc.Categories).MountRoutes(r)
			products.NewHandler(logger, svc.Products).MountRoutes(r)
			customers.NewHandler(logger, svc.Customers, svc.Orders).MountRoutes(r)
			orders.NewHandler(logger, svc.Orders).MountRoutes(r)
			salesmetrics.NewHandler(logger, svc.Sales).MountRoutes(r)
		})
	}
	jobHandler := params.JobHandler
	if jobHandler == nil {
		jobHandler = jobs.NewHandler(nil, logger)
	}
	r.Route("/jobs", jobHandler.MountRoutes)
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
