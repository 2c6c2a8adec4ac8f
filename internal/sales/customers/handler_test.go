package customers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop24/shop24/internal/shop"
)

type stubHistory struct {
	orders []shop.Order
	asked  int64
}

func (s *stubHistory) OrderHistory(_ context.Context, customerID int64) ([]shop.Order, error) {
	s.asked = customerID
	return s.orders, nil
}

func TestHandlerCreateAndHistory(t *testing.T) {
	svc, _ := newTestService()
	history := &stubHistory{orders: []shop.Order{}}
	r := chi.NewRouter()
	NewHandler(slog.New(slog.DiscardHandler), svc, history).MountRoutes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/customers",
		strings.NewReader(`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","city":"London"}`)))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"city":"London"`)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/customers/999/orders", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
	assert.Equal(t, int64(999), history.asked)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"first_name":"Ada","last_name":"Lovelace","email":"bad"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
