package pgstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/shop24/shop24/internal/shop"
)

const (
	categoryColumns  = "id, name"
	customerColumns  = "id, first_name, last_name, email, phone, street_addr, state, zipcode, city"
	productColumns   = "id, name, description, cost::text, price::text, category_id, created_at"
	orderColumns     = "id, customer_id, order_date, shipment_priority"
	orderLineColumns = "id, order_id, product_id, quantity"
)

type reader struct {
	db dbtx
}

// orderClause builds an ORDER BY from a whitelisted field. NULLs sort last in
// both directions and ties fall back to id.
func orderClause(field string, desc bool) string {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s NULLS LAST, id ASC", field, dir)
}

func (r reader) GetCategory(ctx context.Context, id int64) (shop.Category, error) {
	row := r.db.QueryRow(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = $1", id)
	c, err := scanCategory(row)
	return c, mapError(shop.EntityCategory, id, opRead, err)
}

func (r reader) ListCategories(ctx context.Context, opts shop.ListOptions) ([]shop.Category, error) {
	field, err := opts.ResolveSort(shop.EntityCategory, shop.CategorySortFields)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, "SELECT "+categoryColumns+" FROM categories"+orderClause(field, opts.Desc))
	if err != nil {
		return nil, mapError(shop.EntityCategory, 0, opRead, err)
	}
	return collect(rows, shop.EntityCategory, scanCategory)
}

func (r reader) GetCustomer(ctx context.Context, id int64) (shop.Customer, error) {
	row := r.db.QueryRow(ctx, "SELECT "+customerColumns+" FROM customers WHERE id = $1", id)
	c, err := scanCustomer(row)
	return c, mapError(shop.EntityCustomer, id, opRead, err)
}

func (r reader) ListCustomers(ctx context.Context, opts shop.ListOptions) ([]shop.Customer, error) {
	field, err := opts.ResolveSort(shop.EntityCustomer, shop.CustomerSortFields)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, "SELECT "+customerColumns+" FROM customers"+orderClause(field, opts.Desc))
	if err != nil {
		return nil, mapError(shop.EntityCustomer, 0, opRead, err)
	}
	return collect(rows, shop.EntityCustomer, scanCustomer)
}

func (r reader) GetProduct(ctx context.Context, id int64) (shop.Product, error) {
	row := r.db.QueryRow(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	return p, mapError(shop.EntityProduct, id, opRead, err)
}

func (r reader) ListProducts(ctx context.Context, opts shop.ListOptions) ([]shop.Product, error) {
	field, err := opts.ResolveSort(shop.EntityProduct, shop.ProductSortFields)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, "SELECT "+productColumns+" FROM products"+orderClause(field, opts.Desc))
	if err != nil {
		return nil, mapError(shop.EntityProduct, 0, opRead, err)
	}
	return collect(rows, shop.EntityProduct, scanProduct)
}

func (r reader) GetOrder(ctx context.Context, id int64) (shop.Order, error) {
	row := r.db.QueryRow(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	o, err := scanOrder(row)
	return o, mapError(shop.EntityOrder, id, opRead, err)
}

func (r reader) ListOrders(ctx context.Context, filter shop.OrderFilter) ([]shop.Order, error) {
	field, err := filter.ResolveSort(shop.EntityOrder, shop.OrderSortFields)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	sb.WriteString("SELECT " + orderColumns + " FROM orders")
	var args []any
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		sb.WriteString(" WHERE customer_id = $1")
	}
	sb.WriteString(orderClause(field, filter.Desc))

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, mapError(shop.EntityOrder, 0, opRead, err)
	}
	return collect(rows, shop.EntityOrder, scanOrder)
}

func (r reader) GetOrderLine(ctx context.Context, id int64) (shop.OrderLine, error) {
	row := r.db.QueryRow(ctx, "SELECT "+orderLineColumns+" FROM order_lines WHERE id = $1", id)
	l, err := scanOrderLine(row)
	return l, mapError(shop.EntityOrderLine, id, opRead, err)
}

func (r reader) ListOrderLines(ctx context.Context, filter shop.OrderLineFilter) ([]shop.OrderLine, error) {
	var (
		where []string
		args  []any
	)
	if filter.OrderID != 0 {
		args = append(args, filter.OrderID)
		where = append(where, fmt.Sprintf("order_id = $%d", len(args)))
	}
	if filter.ProductID != 0 {
		args = append(args, filter.ProductID)
		where = append(where, fmt.Sprintf("product_id = $%d", len(args)))
	}
	query := "SELECT " + orderLineColumns + " FROM order_lines"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(shop.EntityOrderLine, 0, opRead, err)
	}
	return collect(rows, shop.EntityOrderLine, scanOrderLine)
}

func (r reader) SumQuantityByProduct(ctx context.Context) (map[int64]int64, error) {
	rows, err := r.db.Query(ctx, "SELECT product_id, SUM(quantity)::bigint FROM order_lines GROUP BY product_id")
	if err != nil {
		return nil, mapError(shop.EntityOrderLine, 0, opRead, err)
	}
	defer rows.Close()

	totals := make(map[int64]int64)
	for rows.Next() {
		var productID, qty int64
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, mapError(shop.EntityOrderLine, 0, opRead, err)
		}
		totals[productID] = qty
	}
	return totals, mapError(shop.EntityOrderLine, 0, opRead, rows.Err())
}

func (r reader) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var found bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS ("+query+")", args...).Scan(&found); err != nil {
		return false, fmt.Errorf("pgstore: exists: %w", err)
	}
	return found, nil
}

func collect[T any](rows pgx.Rows, entity string, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()
	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, mapError(entity, 0, opRead, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(entity, 0, opRead, err)
	}
	return items, nil
}

func scanCategory(row pgx.Row) (shop.Category, error) {
	var c shop.Category
	err := row.Scan(&c.ID, &c.Name)
	return c, err
}

func scanCustomer(row pgx.Row) (shop.Customer, error) {
	var (
		c                                       shop.Customer
		phone, street, state, zipcode, cityText pgtype.Text
	)
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &phone, &street, &state, &zipcode, &cityText); err != nil {
		return c, err
	}
	c.Phone = textPtr(phone)
	c.StreetAddr = textPtr(street)
	c.State = textPtr(state)
	c.Zipcode = textPtr(zipcode)
	c.City = textPtr(cityText)
	return c, nil
}

func scanProduct(row pgx.Row) (shop.Product, error) {
	var (
		p           shop.Product
		cost, price string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &cost, &price, &p.CategoryID, &p.CreatedAt); err != nil {
		return p, err
	}
	var err error
	if p.Cost, err = decimal.NewFromString(cost); err != nil {
		return p, fmt.Errorf("parse cost: %w", err)
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return p, fmt.Errorf("parse price: %w", err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

func scanOrder(row pgx.Row) (shop.Order, error) {
	var (
		o        shop.Order
		priority pgtype.Int4
	)
	if err := row.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &priority); err != nil {
		return o, err
	}
	if priority.Valid {
		v := int(priority.Int32)
		o.ShipmentPriority = &v
	}
	o.OrderDate = o.OrderDate.UTC()
	return o, nil
}

func scanOrderLine(row pgx.Row) (shop.OrderLine, error) {
	var l shop.OrderLine
	err := row.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity)
	return l, err
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	v := t.String
	return &v
}
