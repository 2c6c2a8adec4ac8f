package orders

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

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

func decode[T any](r *http.Request, entity string) (T, error) {
	var req T
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return req, err
	}
	return req, shop.ValidateStruct(entity, req)
}

// List answers GET /orders. With ?customer_id= it returns that customer's
// order history instead.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		orders []shop.Order
		err    error
	)
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		customerID, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil {
			httpx.RespondError(w, fmt.Errorf("%w: invalid customer_id %q", httpx.ErrBadRequest, raw))
			return
		}
		orders, err = h.service.OrderHistory(r.Context(), customerID)
	} else {
		field, desc := httpx.SortParams(r)
		orders, err = h.service.List(r.Context(), shop.ListOptions{OrderBy: field, Desc: desc})
	}
	if err != nil {
		httpx.Fail(w, r, h.logger, "list orders failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, h.logger, "get order failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decode[orderRequest](r, shop.EntityOrder)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	order, err := h.service.CreateOrder(r.Context(), req.CustomerID, req.ShipmentPriority)
	if err != nil {
		httpx.Fail(w, r, h.logger, "create order failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	req, err := decode[placeOrderRequest](r, shop.EntityOrder)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	placed, err := h.service.PlaceOrder(r.Context(), req.request())
	if err != nil {
		httpx.Fail(w, r, h.logger, "place order failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, placed)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	req, err := decode[orderRequest](r, shop.EntityOrder)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	order, err := h.service.UpdateOrder(r.Context(), id, req.CustomerID, req.ShipmentPriority)
	if err != nil {
		httpx.Fail(w, r, h.logger, "update order failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		httpx.Fail(w, r, h.logger, "delete order failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListLines(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	lines, err := h.service.ListOrderLines(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, h.logger, "list order lines failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, lines)
}

func (h *Handler) AddLine(w http.ResponseWriter, r *http.Request) {
	orderID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	req, err := decode[lineRequest](r, shop.EntityOrderLine)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	line, err := h.service.AddOrderLine(r.Context(), orderID, req.ProductID, req.Quantity)
	if err != nil {
		httpx.Fail(w, r, h.logger, "add order line failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, line)
}

func (h *Handler) ShowLine(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	line, err := h.service.GetOrderLine(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, h.logger, "get order line failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, line)
}

func (h *Handler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	req, err := decode[lineRequest](r, shop.EntityOrderLine)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	line, err := h.service.UpdateOrderLine(r.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		httpx.Fail(w, r, h.logger, "update order line failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, line)
}

func (h *Handler) DeleteLine(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeleteOrderLine(r.Context(), id); err != nil {
		httpx.Fail(w, r, h.logger, "delete order line failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
