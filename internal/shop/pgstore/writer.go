package pgstore

import (
	"context"

	"github.com/shop24/shop24/internal/shared"
	"github.com/shop24/shop24/internal/shop"
)

type writer struct {
	reader
}

var _ shop.Tx = (*writer)(nil)

func (w *writer) requireRow(ctx context.Context, table, entity string, id int64) error {
	found, err := w.exists(ctx, "SELECT 1 FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	if !found {
		return &shared.NotFoundError{Entity: entity, ID: id}
	}
	return nil
}

func (w *writer) requireRef(ctx context.Context, table string, id int64, ref shared.ReferentialIntegrityError) error {
	found, err := w.exists(ctx, "SELECT 1 FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	if !found {
		ref.RefID = id
		return &ref
	}
	return nil
}

func (w *writer) rejectDependents(ctx context.Context, query, entity string, id int64, reason string) error {
	found, err := w.exists(ctx, query, id)
	if err != nil {
		return err
	}
	if found {
		return &shared.ConflictError{Entity: entity, ID: id, Reason: reason}
	}
	return nil
}

func (w *writer) delete(ctx context.Context, table, entity string, id int64) error {
	tag, err := w.db.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return mapError(entity, id, opDelete, err)
	}
	if tag.RowsAffected() == 0 {
		return &shared.NotFoundError{Entity: entity, ID: id}
	}
	return nil
}

func (w *writer) CreateCategory(ctx context.Context, c shop.Category) (shop.Category, error) {
	if err := c.Validate(); err != nil {
		return shop.Category{}, err
	}
	err := w.db.QueryRow(ctx, "INSERT INTO categories (name) VALUES ($1) RETURNING id", c.Name).Scan(&c.ID)
	if err != nil {
		return shop.Category{}, mapError(shop.EntityCategory, 0, opWrite, err)
	}
	return c, nil
}

func (w *writer) UpdateCategory(ctx context.Context, c shop.Category) (shop.Category, error) {
	if err := c.Validate(); err != nil {
		return shop.Category{}, err
	}
	tag, err := w.db.Exec(ctx, "UPDATE categories SET name = $2 WHERE id = $1", c.ID, c.Name)
	if err != nil {
		return shop.Category{}, mapError(shop.EntityCategory, c.ID, opWrite, err)
	}
	if tag.RowsAffected() == 0 {
		return shop.Category{}, &shared.NotFoundError{Entity: shop.EntityCategory, ID: c.ID}
	}
	return c, nil
}

func (w *writer) DeleteCategory(ctx context.Context, id int64) error {
	if err := w.requireRow(ctx, "categories", shop.EntityCategory, id); err != nil {
		return err
	}
	if err := w.rejectDependents(ctx, "SELECT 1 FROM products WHERE category_id = $1", shop.EntityCategory, id, "category still has products"); err != nil {
		return err
	}
	return w.delete(ctx, "categories", shop.EntityCategory, id)
}

func (w *writer) CreateCustomer(ctx context.Context, c shop.Customer) (shop.Customer, error) {
	if err := c.Validate(); err != nil {
		return shop.Customer{}, err
	}
	err := w.db.QueryRow(ctx, `
		INSERT INTO customers (first_name, last_name, email, phone, street_addr, state, zipcode, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.StreetAddr, c.State, c.Zipcode, c.City,
	).Scan(&c.ID)
	if err != nil {
		return shop.Customer{}, mapError(shop.EntityCustomer, 0, opWrite, err)
	}
	return c, nil
}

func (w *writer) UpdateCustomer(ctx context.Context, c shop.Customer) (shop.Customer, error) {
	if err := c.Validate(); err != nil {
		return shop.Customer{}, err
	}
	tag, err := w.db.Exec(ctx, `
		UPDATE customers
		SET first_name = $2, last_name = $3, email = $4, phone = $5,
			street_addr = $6, state = $7, zipcode = $8, city = $9
		WHERE id = $1`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.StreetAddr, c.State, c.Zipcode, c.City,
	)
	if err != nil {
		return shop.Customer{}, mapError(shop.EntityCustomer, c.ID, opWrite, err)
	}
	if tag.RowsAffected() == 0 {
		return shop.Customer{}, &shared.NotFoundError{Entity: shop.EntityCustomer, ID: c.ID}
	}
	return c, nil
}

func (w *writer) DeleteCustomer(ctx context.Context, id int64) error {
	if err := w.requireRow(ctx, "customers", shop.EntityCustomer, id); err != nil {
		return err
	}
	if err := w.rejectDependents(ctx, "SELECT 1 FROM orders WHERE customer_id = $1", shop.EntityCustomer, id, "customer still has orders"); err != nil {
		return err
	}
	return w.delete(ctx, "customers", shop.EntityCustomer, id)
}

func (w *writer) categoryRef(ctx context.Context, id int64) error {
	return w.requireRef(ctx, "categories", id, shared.ReferentialIntegrityError{
		Entity: shop.EntityProduct, Field: "category_id", RefEntity: shop.EntityCategory,
	})
}

func (w *writer) CreateProduct(ctx context.Context, p shop.Product) (shop.Product, error) {
	if err := p.Validate(); err != nil {
		return shop.Product{}, err
	}
	if err := w.categoryRef(ctx, p.CategoryID); err != nil {
		return shop.Product{}, err
	}
	err := w.db.QueryRow(ctx, `
		INSERT INTO products (name, description, cost, price, category_id)
		VALUES ($1, $2, $3::numeric, $4::numeric, $5)
		RETURNING id, created_at`,
		p.Name, p.Description, p.Cost.String(), p.Price.String(), p.CategoryID,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return shop.Product{}, mapError(shop.EntityProduct, 0, opWrite, err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

func (w *writer) UpdateProduct(ctx context.Context, p shop.Product) (shop.Product, error) {
	if err := p.Validate(); err != nil {
		return shop.Product{}, err
	}
	if err := w.requireRow(ctx, "products", shop.EntityProduct, p.ID); err != nil {
		return shop.Product{}, err
	}
	if err := w.categoryRef(ctx, p.CategoryID); err != nil {
		return shop.Product{}, err
	}
	err := w.db.QueryRow(ctx, `
		UPDATE products
		SET name = $2, description = $3, cost = $4::numeric, price = $5::numeric, category_id = $6
		WHERE id = $1
		RETURNING created_at`,
		p.ID, p.Name, p.Description, p.Cost.String(), p.Price.String(), p.CategoryID,
	).Scan(&p.CreatedAt)
	if err != nil {
		return shop.Product{}, mapError(shop.EntityProduct, p.ID, opWrite, err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

func (w *writer) DeleteProduct(ctx context.Context, id int64) error {
	if err := w.requireRow(ctx, "products", shop.EntityProduct, id); err != nil {
		return err
	}
	if err := w.rejectDependents(ctx, "SELECT 1 FROM order_lines WHERE product_id = $1", shop.EntityProduct, id, "product is referenced by order lines"); err != nil {
		return err
	}
	return w.delete(ctx, "products", shop.EntityProduct, id)
}

func (w *writer) customerRef(ctx context.Context, id int64) error {
	return w.requireRef(ctx, "customers", id, shared.ReferentialIntegrityError{
		Entity: shop.EntityOrder, Field: "customer_id", RefEntity: shop.EntityCustomer,
	})
}

func (w *writer) CreateOrder(ctx context.Context, o shop.Order) (shop.Order, error) {
	if err := o.Validate(); err != nil {
		return shop.Order{}, err
	}
	if err := w.customerRef(ctx, o.CustomerID); err != nil {
		return shop.Order{}, err
	}
	err := w.db.QueryRow(ctx, `
		INSERT INTO orders (customer_id, shipment_priority)
		VALUES ($1, $2)
		RETURNING id, order_date`,
		o.CustomerID, o.ShipmentPriority,
	).Scan(&o.ID, &o.OrderDate)
	if err != nil {
		return shop.Order{}, mapError(shop.EntityOrder, 0, opWrite, err)
	}
	o.OrderDate = o.OrderDate.UTC()
	return o, nil
}

func (w *writer) UpdateOrder(ctx context.Context, o shop.Order) (shop.Order, error) {
	if err := o.Validate(); err != nil {
		return shop.Order{}, err
	}
	if err := w.requireRow(ctx, "orders", shop.EntityOrder, o.ID); err != nil {
		return shop.Order{}, err
	}
	if err := w.customerRef(ctx, o.CustomerID); err != nil {
		return shop.Order{}, err
	}
	err := w.db.QueryRow(ctx, `
		UPDATE orders SET customer_id = $2, shipment_priority = $3
		WHERE id = $1
		RETURNING order_date`,
		o.ID, o.CustomerID, o.ShipmentPriority,
	).Scan(&o.OrderDate)
	if err != nil {
		return shop.Order{}, mapError(shop.EntityOrder, o.ID, opWrite, err)
	}
	o.OrderDate = o.OrderDate.UTC()
	return o, nil
}

// DeleteOrder relies on the ON DELETE CASCADE of order_lines.order_id.
func (w *writer) DeleteOrder(ctx context.Context, id int64) error {
	return w.delete(ctx, "orders", shop.EntityOrder, id)
}

func (w *writer) checkLine(ctx context.Context, l shop.OrderLine) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := w.requireRef(ctx, "orders", l.OrderID, shared.ReferentialIntegrityError{
		Entity: shop.EntityOrderLine, Field: "order_id", RefEntity: shop.EntityOrder,
	}); err != nil {
		return err
	}
	if err := w.requireRef(ctx, "products", l.ProductID, shared.ReferentialIntegrityError{
		Entity: shop.EntityOrderLine, Field: "product_id", RefEntity: shop.EntityProduct,
	}); err != nil {
		return err
	}
	var existing int64
	err := w.db.QueryRow(ctx,
		"SELECT COALESCE(MIN(id), 0) FROM order_lines WHERE order_id = $1 AND product_id = $2 AND id <> $3",
		l.OrderID, l.ProductID, l.ID,
	).Scan(&existing)
	if err != nil {
		return mapError(shop.EntityOrderLine, l.ID, opRead, err)
	}
	if existing != 0 {
		return &shared.ConflictError{Entity: shop.EntityOrderLine, ID: existing, Reason: "order already has a line for this product"}
	}
	return nil
}

func (w *writer) CreateOrderLine(ctx context.Context, l shop.OrderLine) (shop.OrderLine, error) {
	if err := w.checkLine(ctx, l); err != nil {
		return shop.OrderLine{}, err
	}
	err := w.db.QueryRow(ctx,
		"INSERT INTO order_lines (order_id, product_id, quantity) VALUES ($1, $2, $3) RETURNING id",
		l.OrderID, l.ProductID, l.Quantity,
	).Scan(&l.ID)
	if err != nil {
		return shop.OrderLine{}, mapError(shop.EntityOrderLine, 0, opWrite, err)
	}
	return l, nil
}

func (w *writer) UpdateOrderLine(ctx context.Context, l shop.OrderLine) (shop.OrderLine, error) {
	if err := w.requireRow(ctx, "order_lines", shop.EntityOrderLine, l.ID); err != nil {
		return shop.OrderLine{}, err
	}
	if err := w.checkLine(ctx, l); err != nil {
		return shop.OrderLine{}, err
	}
	_, err := w.db.Exec(ctx,
		"UPDATE order_lines SET order_id = $2, product_id = $3, quantity = $4 WHERE id = $1",
		l.ID, l.OrderID, l.ProductID, l.Quantity,
	)
	if err != nil {
		return shop.OrderLine{}, mapError(shop.EntityOrderLine, l.ID, opWrite, err)
	}
	return l, nil
}

func (w *writer) DeleteOrderLine(ctx context.Context, id int64) error {
	return w.delete(ctx, "order_lines", shop.EntityOrderLine, id)
}
