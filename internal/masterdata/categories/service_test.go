package categories

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop24/shop24/internal/shared"
	"github.com/shop24/shop24/internal/shop"
	"github.com/shop24/shop24/internal/shop/memstore"
)

func newTestService() (*Service, *memstore.Store) {
	store := memstore.New()
	return NewService(store, slog.New(slog.DiscardHandler), nil), store
}

func TestServiceCRUD(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "  Garden ")
	require.NoError(t, err)
	assert.Equal(t, "Garden", created.Name)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := svc.Update(ctx, created.ID, "Outdoor")
	require.NoError(t, err)
	assert.Equal(t, "Outdoor", updated.Name)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestServiceRejectsBlankAndDuplicateNames(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "   ")
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(ctx, "Tools")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Tools")
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestServiceDeleteWithProductsConflicts(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	category, err := svc.Create(ctx, "Tools")
	require.NoError(t, err)
	require.NoError(t, store.WithTx(ctx, func(ctx context.Context, tx shop.Tx) error {
		_, err := tx.CreateProduct(ctx, shop.Product{Name: "Saw", Description: "Hand saw", Cost: decimal.NewFromInt(5), Price: decimal.NewFromInt(7), CategoryID: category.ID})
		return err
	}))

	assert.ErrorIs(t, svc.Delete(ctx, category.ID), shared.ErrConflict)
}

func TestServiceListOrdersByName(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	for _, name := range []string{"Kitchen", "Bath", "Garden"} {
		_, err := svc.Create(ctx, name)
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, shop.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Bath", "Garden", "Kitchen"}, []string{list[0].Name, list[1].Name, list[2].Name})
}
