package metrics

import (
	"log/slog"
	"net/http"

	"github.com/shop24/shop24/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// Quantities answers GET /metrics/quantities with a product id to quantity
// object.
func (h *Handler) Quantities(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.AggregateQuantities(r.Context())
	if err != nil {
		httpx.Fail(w, r, h.logger, "aggregate quantities failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, totals)
}

func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.CachedReport(r.Context())
	if err != nil {
		httpx.Fail(w, r, h.logger, "product report failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}
