package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop24/shop24/internal/shared"
	"github.com/shop24/shop24/internal/shop"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	store *Store
	clock time.Time
}

func newFixture() *fixture {
	f := &fixture{clock: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	f.store = New(WithClock(func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}))
	return f
}

func (f *fixture) tx(t *testing.T, fn func(ctx context.Context, tx shop.Tx) error) {
	t.Helper()
	require.NoError(t, f.store.WithTx(context.Background(), fn))
}

func (f *fixture) seed(t *testing.T) (shop.Category, shop.Customer, shop.Product) {
	t.Helper()
	var (
		cat  shop.Category
		cust shop.Customer
		prod shop.Product
	)
	f.tx(t, func(ctx context.Context, tx shop.Tx) error {
		var err error
		if cat, err = tx.CreateCategory(ctx, shop.Category{Name: "Tools"}); err != nil {
			return err
		}
		if cust, err = tx.CreateCustomer(ctx, shop.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}); err != nil {
			return err
		}
		prod, err = tx.CreateProduct(ctx, shop.Product{
			Name:        "Hammer",
			Description: "Claw hammer",
			Cost:        decimal.RequireFromString("10.00"),
			Price:       decimal.RequireFromString("13.00"),
			CategoryID:  cat.ID,
		})
		return err
	})
	return cat, cust, prod
}

func TestRoundTripAllEntities(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cat, cust, prod := f.seed(t)

	gotCat, err := f.store.GetCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, cat, gotCat)

	gotCust, err := f.store.GetCustomer(ctx, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, cust, gotCust)

	gotProd, err := f.store.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, prod, gotProd)
	assert.False(t, gotProd.CreatedAt.IsZero())

	var order shop.Order
	var line shop.OrderLine
	f.tx(t, func(ctx context.Context, tx shop.Tx) error {
		var err error
		if order, err = tx.CreateOrder(ctx, shop.Order{CustomerID: cust.ID, ShipmentPriority: ptr(2)}); err != nil {
			return err
		}
		line, err = tx.CreateOrderLine(ctx, shop.OrderLine{OrderID: order.ID, ProductID: prod.ID, Quantity: 3})
		return err
	})

	gotOrder, err := f.store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, gotOrder)

	gotLine, err := f.store.GetOrderLine(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, line, gotLine)

	// updates keep store-assigned timestamps
	f.tx(t, func(ctx context.Context, tx shop.Tx) error {
		prod.Name = "Sledgehammer"
		updated, err := tx.UpdateProduct(ctx, shop.Product{ID: prod.ID, Name: prod.Name, Description: prod.Description, Cost: prod.Cost, Price: prod.Price, CategoryID: prod.CategoryID})
		if err != nil {
			return err
		}
		assert.Equal(t, prod.CreatedAt, updated.CreatedAt)

		updatedOrder, err := tx.UpdateOrder(ctx, shop.Order{ID: order.ID, CustomerID: cust.ID})
		if err != nil {
			return err
		}
		assert.Equal(t, order.OrderDate, updatedOrder.OrderDate)
		assert.Nil(t, updatedOrder.ShipmentPriority)
		return nil
	})

	gotProd, err = f.store.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sledgehammer", gotProd.Name)

	f.tx(t, func(ctx context.Context, tx shop.Tx) error {
		if err := tx.DeleteOrderLine(ctx, line.ID); err != nil {
			return err
		}
		if err := tx.DeleteOrder(ctx, order.ID); err != nil {
			return err
		}
		if err := tx.DeleteProduct(ctx, prod.ID); err != nil {
			return err
		}
		if err := tx.DeleteCustomer(ctx, cust.ID); err != nil {
			return err
		}
		return tx.DeleteCategory(ctx, cat.ID)
	})

	_, err = f.store.GetCategory(ctx, cat.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = f.store.GetOrderLine(ctx, line.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestReadsReturnCopies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, cust, _ := f.seed(t)

	var order shop.Order
	f.tx(t, func(ctx context.Context, tx shop.Tx) error {
		var err error
		order, err = tx.CreateOrder(ctx, shop.Order{CustomerID: cust.ID, ShipmentPriority: ptr(1)})
		return err
	})

	got, err := f.store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	*got.ShipmentPriority = 99

	again, err := f.store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, *again.ShipmentPriority)
}

func TestReferentialIntegrity(t *testing.T) {
	f := newFixture()
	_, cust, prod := f.seed(t)

	err := f.store.WithTx(context.Background(), func(ctx context.Context, tx shop.Tx) error {
		_, err := tx.CreateOrder(ctx, shop.Order{CustomerID: 999})
		return err
	})
	var refErr *shared.ReferentialIntegrityError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "customer_id", refErr.Field)
	assert.Equal(t, int64(999), refErr.RefID)

	err = f.store.WithTx(context.Background(), func(ctx context.Context, tx shop.Tx) error {
		_, err := tx.CreateProduct(ctx, shop.Product{Name: "x", Description: "y", CategoryID: 42})
		return err
	})
	assert.ErrorIs(t, err, shared.ErrReferentialIntegrity)

	err = f.store.WithTx(context.Background(), func(ctx context.Context, tx shop.Tx) error {
		_, err := tx.CreateOrderLine(ctx, shop.OrderLine{OrderID: 77, ProductID: prod.ID, Quantity: 1})
		return err
	})
	assert.ErrorIs(t, err, shared.ErrReferentialIntegrity)

	err = f.store.WithTx(context.Background(), func(ctx context.Context, tx shop.Tx) error {
		order, err := tx.CreateOrder(ctx, shop.Order{CustomerID: cust.ID})
		if err != nil {
			return err
		}
		_, err = tx.CreateOrderLine(ctx, shop.OrderLine{OrderID: order.ID, ProductID: 1234, Quantity: 1})
		return err
	})
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "product_id", refErr.Field)
}

func TestDeletePolicies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cat, cust, prod := f.seed(t)

	var order shop.Order
	var line shop.OrderLine
	f.tx(t, func(ctx context.Context, tx shop.Tx) error {
		var err error
		if order, err = tx.CreateOrder(ctx, shop.Order{CustomerID: cust.ID}); err != nil {
			return err
		}
		line, err = tx.CreateOrderLine(ctx, shop.OrderLine{OrderID: order.ID, ProductID: prod.ID, Quantity: 2})
		return err
	})

	cases := map[string]func(ctx context.Context, tx shop.Tx) error{
		"category with products": func(ctx context.Context, tx shop.Tx) error { return tx.DeleteCategory(ctx, cat.ID) },
		"customer with orders":   func(ctx context.Context, tx shop.Tx) error { return tx.DeleteCustomer(ctx, cust.ID) },
		"product with lines":     func(ctx context.Context, tx shop.Tx) error { return tx.DeleteProduct(ctx, prod.ID) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, f.store.WithTx(ctx, fn), shared.ErrConflict)
		})
	}

	f.tx(t, func(ctx context.Context, tx shop.Tx) error { return tx.DeleteOrder(ctx, order.ID) })
	_, err := f.store.GetOrderLine(ctx, line.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound, "deleting an order removes its lines")

	f.tx(t, func(ctx context.Context, tx shop.Tx) error { return tx.DeleteProduct(ctx, prod.ID) })

	err = f.store.WithTx(ctx, func(ctx context.Context, tx shop.Tx) error { return tx.DeleteOrder(ctx, order.ID) })
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDuplicateOrderLineAndCategoryName(t *testing.T) {
	f := newFixture()
	_, cust, prod := f.seed(t)

	err := f.store.WithTx(context.Background(), func(ctx context.Context, tx shop.Tx) error {
		order, err := tx.CreateOrder(ctx, shop.Order{CustomerID: cust.ID})
		if err != nil {
			return err
		}
		if _, err := tx.CreateOrderLine(ctx, shop.OrderLine{OrderID: order.ID, ProductID: prod.ID, Quantity: 1}); err != nil {
			return err
		}
		_, err = tx.CreateOrderLine(ctx, shop.OrderLine{OrderID: order.ID, ProductID: prod.ID, Quantity: 4})
		return err
	})
	assert.ErrorIs(t, err, shared.ErrConflict)

	err = f.store.WithTx(context.Background(), func(ctx context.Context, tx shop.Tx) error {
		_, err := tx.CreateCategory(ctx, shop.Category{Name: "Tools"})
		return err
	})
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestWithTxRollsBackEverything(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, cust, _ := f.seed(t)

	boom := errors.New("boom")
	var createdID int64
	err := f.store.WithTx(ctx, func(ctx context.Context, tx shop.Tx) error {
		order, err := tx.CreateOrder(ctx, shop.Order{CustomerID: cust.ID})
		if err != nil {
			return err
		}
		createdID = order.ID
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = f.store.GetOrder(ctx, createdID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// the rolled back id is not handed out again
	var next shop.Order
	f.tx(t, func(ctx context.Context, tx shop.Tx) error {
		var err error
		next, err = tx.CreateOrder(ctx, shop.Order{CustomerID: cust.ID})
		return err
	})
	assert.Greater(t, next.ID, createdID)
}

func TestListOrdersByPriorityNullsLast(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, cust, _ := f.seed(t)

	priorities := []*int{nil, ptr(3), ptr(1), nil, ptr(1)}
	f.tx(t, func(ctx context.Context, tx shop.Tx) error {
		for _, p := range priorities {
			if _, err := tx.CreateOrder(ctx, shop.Order{CustomerID: cust.ID, ShipmentPriority: p}); err != nil {
				return err
			}
		}
		return nil
	})

	orders, err := f.store.ListOrders(ctx, shop.OrderFilter{})
	require.NoError(t, err)
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []int64{3, 5, 2, 1, 4}, ids)

	orders, err = f.store.ListOrders(ctx, shop.OrderFilter{ListOptions: shop.ListOptions{OrderBy: "shipment_priority", Desc: true}})
	require.NoError(t, err)
	ids = ids[:0]
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []int64{2, 3, 5, 1, 4}, ids)

	other := int64(999)
	history, err := f.store.ListOrders(ctx, shop.OrderFilter{CustomerID: &other})
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)

	_, err = f.store.ListOrders(ctx, shop.OrderFilter{ListOptions: shop.ListOptions{OrderBy: "total"}})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestListProductsByCreatedAt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cat, _, first := f.seed(t)

	var second shop.Product
	f.tx(t, func(ctx context.Context, tx shop.Tx) error {
		var err error
		second, err = tx.CreateProduct(ctx, shop.Product{Name: "Anvil", Description: "Heavy", Cost: decimal.NewFromInt(1), Price: decimal.NewFromInt(2), CategoryID: cat.ID})
		return err
	})

	products, err := f.store.ListProducts(ctx, shop.ListOptions{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, first.ID, products[0].ID)
	assert.Equal(t, second.ID, products[1].ID)

	products, err = f.store.ListProducts(ctx, shop.ListOptions{OrderBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, "Anvil", products[0].Name)
}

func TestSumQuantityByProduct(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cat, cust, prod := f.seed(t)

	f.tx(t, func(ctx context.Context, tx shop.Tx) error {
		if _, err := tx.CreateProduct(ctx, shop.Product{Name: "Idle", Description: "never ordered", CategoryID: cat.ID}); err != nil {
			return err
		}
		for _, qty := range []int{3, 4} {
			order, err := tx.CreateOrder(ctx, shop.Order{CustomerID: cust.ID})
			if err != nil {
				return err
			}
			if _, err := tx.CreateOrderLine(ctx, shop.OrderLine{OrderID: order.ID, ProductID: prod.ID, Quantity: qty}); err != nil {
				return err
			}
		}
		return nil
	})

	totals, err := f.store.SumQuantityByProduct(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{prod.ID: 7}, totals)
}

func TestWithTxHonoursCancelledContext(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := f.store.WithTx(ctx, func(context.Context, shop.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
