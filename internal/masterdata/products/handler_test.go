package products

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	env := newTestEnv(t)
	r := chi.NewRouter()
	NewHandler(slog.New(slog.DiscardHandler), env.svc).MountRoutes(r)
	return r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandlerCreateRendersFloorPrice(t *testing.T) {
	router := newTestRouter(t)

	rr := serve(router, http.MethodPost, "/products", `{"name":"Hammer","description":"Claw","cost":"10.00","price":5,"category_id":1}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var got productResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "13.00", got.Price)
	assert.Equal(t, "10.00", got.Cost)

	rr = serve(router, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestHandlerCreateErrors(t *testing.T) {
	router := newTestRouter(t)

	rr := serve(router, http.MethodPost, "/products", `{"name":"Hammer","description":"Claw","price":"5.00","category_id":1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "cost is required")

	rr = serve(router, http.MethodPost, "/products", `{"name":"Hammer","description":"Claw","cost":"1","price":"5.00","category_id":99}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = serve(router, http.MethodDelete, "/products/5", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlerQuote(t *testing.T) {
	router := newTestRouter(t)

	rr := serve(router, http.MethodGet, "/pricing/normalize?cost=10.00&price=5.00", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got quoteResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, quoteResponse{Cost: "10.00", Requested: "5.00", Floor: "13.00", Price: "13.00"}, got)

	rr = serve(router, http.MethodGet, "/pricing/normalize?cost=abc&price=5", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
