package products

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/shop24/shop24/internal/platform/httpx"
	"github.com/shop24/shop24/internal/shop"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func decodeRequest(r *http.Request) (productRequest, error) {
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return req, err
	}
	return req, shop.ValidateStruct(shop.EntityProduct, req)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	field, desc := httpx.SortParams(r)
	products, err := h.service.List(r.Context(), shop.ListOptions{OrderBy: field, Desc: desc})
	if err != nil {
		httpx.Fail(w, r, h.logger, "list products failed", err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toResponse(p))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, h.logger, "get product failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(product))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	product, err := h.service.Create(r.Context(), req.input())
	if err != nil {
		httpx.Fail(w, r, h.logger, "create product failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(product))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	req, err := decodeRequest(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	product, err := h.service.Update(r.Context(), id, req.input())
	if err != nil {
		httpx.Fail(w, r, h.logger, "update product failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(product))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.Fail(w, r, h.logger, "delete product failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Quote answers GET /pricing/normalize?cost=&price=.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cost, err := decimal.NewFromString(q.Get("cost"))
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid cost %q", httpx.ErrBadRequest, q.Get("cost")))
		return
	}
	requested, err := decimal.NewFromString(q.Get("price"))
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid price %q", httpx.ErrBadRequest, q.Get("price")))
		return
	}
	floor, price, err := h.service.Quote(cost, requested)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quoteResponse{
		Cost:      cost.StringFixed(2),
		Requested: requested.StringFixed(2),
		Floor:     floor.StringFixed(2),
		Price:     price.StringFixed(2),
	})
}
