package categories

import (
	"log/slog"
	"net/http"

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

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func decodeRequest(r *http.Request) (categoryRequest, error) {
	var req categoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return req, err
	}
	return req, shop.ValidateStruct(shop.EntityCategory, req)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	field, desc := httpx.SortParams(r)
	categories, err := h.service.List(r.Context(), shop.ListOptions{OrderBy: field, Desc: desc})
	if err != nil {
		httpx.Fail(w, r, h.logger, "list categories failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, categories)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	category, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, h.logger, "get category failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	category, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		httpx.Fail(w, r, h.logger, "create category failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, category)
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
	category, err := h.service.Update(r.Context(), id, req.Name)
	if err != nil {
		httpx.Fail(w, r, h.logger, "update category failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.Fail(w, r, h.logger, "delete category failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
