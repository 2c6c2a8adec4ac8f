package pgstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop24/shop24/internal/shared"
	"github.com/shop24/shop24/internal/shop"
)

func TestMapError(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		err := mapError(shop.EntityOrder, 12, opRead, pgx.ErrNoRows)
		var nf *shared.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, int64(12), nf.ID)
	})

	t.Run("foreign key on write", func(t *testing.T) {
		err := mapError(shop.EntityOrderLine, 0, opWrite, &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "order_lines_product_id_fkey"})
		var ref *shared.ReferentialIntegrityError
		require.True(t, errors.As(err, &ref))
		assert.Equal(t, "product_id", ref.Field)
		assert.Equal(t, shop.EntityProduct, ref.RefEntity)
	})

	t.Run("foreign key on delete", func(t *testing.T) {
		err := mapError(shop.EntityProduct, 4, opDelete, &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "order_lines_product_id_fkey"})
		assert.ErrorIs(t, err, shared.ErrConflict)
	})

	t.Run("unique", func(t *testing.T) {
		err := mapError(shop.EntityCategory, 0, opWrite, &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "categories_name_key"})
		assert.ErrorIs(t, err, shared.ErrConflict)
	})

	t.Run("check", func(t *testing.T) {
		err := mapError(shop.EntityOrderLine, 0, opWrite, &pgconn.PgError{Code: codeCheckViolation, ConstraintName: "order_lines_quantity_check"})
		var verr *shared.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "quantity", verr.Field)
	})

	t.Run("numeric out of range", func(t *testing.T) {
		err := mapError(shop.EntityProduct, 0, opWrite, &pgconn.PgError{Code: codeNumericOutOfRange, ColumnName: "price"})
		var verr *shared.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, shop.EntityProduct, verr.Entity)
		assert.Equal(t, "price", verr.Field)
	})

	t.Run("transient errors pass through", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := mapError(shop.EntityOrder, 0, opWrite, fmt.Errorf("exec: %w", cause))
		assert.ErrorIs(t, err, cause)
		assert.False(t, errors.Is(err, shared.ErrNotFound))
	})

	assert.NoError(t, mapError(shop.EntityOrder, 1, opRead, nil))
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, " ORDER BY shipment_priority ASC NULLS LAST, id ASC", orderClause("shipment_priority", false))
	assert.Equal(t, " ORDER BY created_at DESC NULLS LAST, id ASC", orderClause("created_at", true))
}
