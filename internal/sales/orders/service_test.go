package orders

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop24/shop24/internal/shared"
	"github.com/shop24/shop24/internal/shop"
	"github.com/shop24/shop24/internal/shop/memstore"
)

func ptr[T any](v T) *T { return &v }

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Bump(context.Context) error {
	c.calls++
	return nil
}

type fixture struct {
	svc      *Service
	store    *memstore.Store
	reports  *countingInvalidator
	customer shop.Customer
	products []shop.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	reports := &countingInvalidator{}
	f := &fixture{
		svc:     NewService(store, reports, slog.New(slog.DiscardHandler), nil),
		store:   store,
		reports: reports,
	}
	require.NoError(t, store.WithTx(context.Background(), func(ctx context.Context, tx shop.Tx) error {
		category, err := tx.CreateCategory(ctx, shop.Category{Name: "Tools"})
		if err != nil {
			return err
		}
		if f.customer, err = tx.CreateCustomer(ctx, shop.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}); err != nil {
			return err
		}
		for _, name := range []string{"Hammer", "Saw"} {
			p, err := tx.CreateProduct(ctx, shop.Product{
				Name: name, Description: name, CategoryID: category.ID,
				Cost: decimal.NewFromInt(1), Price: decimal.NewFromInt(2),
			})
			if err != nil {
				return err
			}
			f.products = append(f.products, p)
		}
		return nil
	}))
	return f
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateOrder(context.Background(), 999, nil)

	var refErr *shared.ReferentialIntegrityError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, shop.EntityCustomer, refErr.RefEntity)
	assert.Equal(t, int64(999), refErr.RefID)
	assert.Zero(t, f.reports.calls)
}

func TestCreateOrderWithoutCustomerIsValidationError(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateOrder(context.Background(), 0, nil)

	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "customer_id", verr.Field)
	assert.False(t, errors.Is(err, shared.ErrReferentialIntegrity))
}

func TestOrderValuesMustFitInt4(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, f.customer.ID, ptr(3_000_000_000))
	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "shipment_priority", verr.Field)

	order, err := f.svc.CreateOrder(ctx, f.customer.ID, nil)
	require.NoError(t, err)
	_, err = f.svc.AddOrderLine(ctx, order.ID, f.products[0].ID, 3_000_000_000)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "quantity", verr.Field)
}

func TestCreateOrderRejectsNegativePriority(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateOrder(context.Background(), f.customer.ID, ptr(-1))
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestAddOrderLineQuantityMustBePositive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.svc.CreateOrder(ctx, f.customer.ID, nil)
	require.NoError(t, err)

	for _, qty := range []int{0, -1} {
		_, err := f.svc.AddOrderLine(ctx, order.ID, f.products[0].ID, qty)
		var verr *shared.ValidationError
		require.True(t, errors.As(err, &verr), "quantity %d", qty)
		assert.Equal(t, "quantity", verr.Field)
	}
}

func TestAddOrderLineReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.svc.CreateOrder(ctx, f.customer.ID, nil)
	require.NoError(t, err)

	_, err = f.svc.AddOrderLine(ctx, 404, f.products[0].ID, 1)
	assert.ErrorIs(t, err, shared.ErrReferentialIntegrity)

	_, err = f.svc.AddOrderLine(ctx, order.ID, 404, 1)
	assert.ErrorIs(t, err, shared.ErrReferentialIntegrity)

	_, err = f.svc.AddOrderLine(ctx, order.ID, f.products[0].ID, 2)
	require.NoError(t, err)
	_, err = f.svc.AddOrderLine(ctx, order.ID, f.products[0].ID, 5)
	assert.ErrorIs(t, err, shared.ErrConflict, "one line per product and order")
}

func TestUpdateOrderAndLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.svc.CreateOrder(ctx, f.customer.ID, ptr(3))
	require.NoError(t, err)
	line, err := f.svc.AddOrderLine(ctx, order.ID, f.products[0].ID, 2)
	require.NoError(t, err)

	updated, err := f.svc.UpdateOrder(ctx, order.ID, f.customer.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.ShipmentPriority)
	assert.Equal(t, order.OrderDate, updated.OrderDate)

	_, err = f.svc.UpdateOrder(ctx, order.ID, 999, nil)
	assert.ErrorIs(t, err, shared.ErrReferentialIntegrity)

	_, err = f.svc.UpdateOrder(ctx, 404, f.customer.ID, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	changed, err := f.svc.UpdateOrderLine(ctx, line.ID, f.products[1].ID, 9)
	require.NoError(t, err)
	assert.Equal(t, order.ID, changed.OrderID)
	assert.Equal(t, f.products[1].ID, changed.ProductID)
	assert.Equal(t, 9, changed.Quantity)

	_, err = f.svc.UpdateOrderLine(ctx, line.ID, f.products[1].ID, 0)
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = f.svc.UpdateOrderLine(ctx, 404, f.products[1].ID, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.svc.CreateOrder(ctx, f.customer.ID, nil)
	require.NoError(t, err)
	first, err := f.svc.AddOrderLine(ctx, order.ID, f.products[0].ID, 1)
	require.NoError(t, err)
	second, err := f.svc.AddOrderLine(ctx, order.ID, f.products[1].ID, 1)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteOrderLine(ctx, first.ID))
	assert.ErrorIs(t, f.svc.DeleteOrderLine(ctx, first.ID), shared.ErrNotFound)

	require.NoError(t, f.svc.DeleteOrder(ctx, order.ID))
	_, err = f.svc.GetOrderLine(ctx, second.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound, "order delete cascades to lines")

	assert.ErrorIs(t, f.svc.DeleteOrder(ctx, order.ID), shared.ErrNotFound)
}

func TestListOrderLinesEmptyAndOrdered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.svc.CreateOrder(ctx, f.customer.ID, nil)
	require.NoError(t, err)

	lines, err := f.svc.ListOrderLines(ctx, order.ID)
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)

	second, err := f.svc.AddOrderLine(ctx, order.ID, f.products[1].ID, 1)
	require.NoError(t, err)
	first, err := f.svc.AddOrderLine(ctx, order.ID, f.products[0].ID, 1)
	require.NoError(t, err)

	lines, err = f.svc.ListOrderLines(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, second.ID, lines[0].ID)
	assert.Equal(t, first.ID, lines[1].ID)
}

func TestOrderHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	history, err := f.svc.OrderHistory(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)

	low, err := f.svc.CreateOrder(ctx, f.customer.ID, ptr(5))
	require.NoError(t, err)
	none, err := f.svc.CreateOrder(ctx, f.customer.ID, nil)
	require.NoError(t, err)
	urgent, err := f.svc.CreateOrder(ctx, f.customer.ID, ptr(0))
	require.NoError(t, err)

	history, err = f.svc.OrderHistory(ctx, f.customer.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []int64{urgent.ID, low.ID, none.ID}, []int64{history[0].ID, history[1].ID, history[2].ID})
}

func TestMutationsBumpReportCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.CreateOrder(ctx, f.customer.ID, nil)
	require.NoError(t, err)
	_, err = f.svc.AddOrderLine(ctx, order.ID, f.products[0].ID, 1)
	require.NoError(t, err)
	_, err = f.svc.AddOrderLine(ctx, order.ID, f.products[0].ID, 0)
	require.Error(t, err)

	assert.Equal(t, 2, f.reports.calls)
}
