package pgstore

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shop24/shop24/internal/shared"
	"github.com/shop24/shop24/internal/shop"
)

const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

type constraintInfo struct {
	entity    string
	field     string
	refEntity string
}

var constraints = map[string]constraintInfo{
	"categories_name_key":            {entity: shop.EntityCategory, field: "name"},
	"products_cost_check":            {entity: shop.EntityProduct, field: "cost"},
	"products_price_check":           {entity: shop.EntityProduct, field: "price"},
	"products_category_id_fkey":      {entity: shop.EntityProduct, field: "category_id", refEntity: shop.EntityCategory},
	"orders_customer_id_fkey":        {entity: shop.EntityOrder, field: "customer_id", refEntity: shop.EntityCustomer},
	"orders_shipment_priority_check": {entity: shop.EntityOrder, field: "shipment_priority"},
	"order_lines_order_id_fkey":      {entity: shop.EntityOrderLine, field: "order_id", refEntity: shop.EntityOrder},
	"order_lines_product_id_fkey":    {entity: shop.EntityOrderLine, field: "product_id", refEntity: shop.EntityProduct},
	"order_lines_quantity_check":     {entity: shop.EntityOrderLine, field: "quantity"},
	"order_lines_order_product_key":  {entity: shop.EntityOrderLine, field: "product_id"},
}

type operation int

const (
	opRead operation = iota
	opWrite
	opDelete
)

// mapError turns driver errors into the shared error kinds. Constraint
// violations normally get caught by the pre-checks; this covers races.
func mapError(entity string, id int64, op operation, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &shared.NotFoundError{Entity: entity, ID: id}
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("pgstore: %s: %w", entity, err)
	}
	info, known := constraints[pgErr.ConstraintName]
	if !known {
		info = constraintInfo{entity: entity}
	}
	switch pgErr.Code {
	case codeForeignKeyViolation:
		if op == opDelete {
			return &shared.ConflictError{Entity: entity, ID: id, Reason: "row is still referenced by " + info.entity}
		}
		return &shared.ReferentialIntegrityError{Entity: info.entity, Field: info.field, RefEntity: info.refEntity}
	case codeUniqueViolation:
		return &shared.ConflictError{Entity: info.entity, ID: id, Reason: info.field + " already exists"}
	case codeCheckViolation:
		return shared.NewValidationError(info.entity, info.field, "violates "+pgErr.ConstraintName)
	case codeNumericOutOfRange:
		return shared.NewValidationError(entity, pgErr.ColumnName, "is out of range")
	}
	return fmt.Errorf("pgstore: %s: %w", entity, err)
}
