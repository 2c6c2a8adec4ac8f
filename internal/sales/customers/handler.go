package customers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shop24/shop24/internal/platform/httpx"
	"github.com/shop24/shop24/internal/shop"
)

// OrderHistory lists a customer's orders by shipment priority.
type OrderHistory interface {
	OrderHistory(ctx context.Context, customerID int64) ([]shop.Order, error)
}

type Handler struct {
	logger  *slog.Logger
	service *Service
	orders  OrderHistory
}

func NewHandler(logger *slog.Logger, service *Service, orders OrderHistory) *Handler {
	return &Handler{logger: logger, service: service, orders: orders}
}

func decodeRequest(r *http.Request) (customerRequest, error) {
	var req customerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return req, err
	}
	return req, shop.ValidateStruct(shop.EntityCustomer, req)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	field, desc := httpx.SortParams(r)
	customers, err := h.service.List(r.Context(), shop.ListOptions{OrderBy: field, Desc: desc})
	if err != nil {
		httpx.Fail(w, r, h.logger, "list customers failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, customers)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	customer, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, h.logger, "get customer failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	customer, err := h.service.Create(r.Context(), req.input())
	if err != nil {
		httpx.Fail(w, r, h.logger, "create customer failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, customer)
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
	customer, err := h.service.Update(r.Context(), id, req.input())
	if err != nil {
		httpx.Fail(w, r, h.logger, "update customer failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.Fail(w, r, h.logger, "delete customer failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Orders lists the customer's orders. Unknown customers yield an empty list.
func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	orders, err := h.orders.OrderHistory(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, h.logger, "customer order history failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}
