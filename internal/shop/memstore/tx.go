package memstore

import (
	"context"

	"github.com/shop24/shop24/internal/shared"
	"github.com/shop24/shop24/internal/shop"
)

type tx struct {
	view
	store *Store
}

var _ shop.Tx = (*tx)(nil)

func (t *tx) CreateCategory(_ context.Context, c shop.Category) (shop.Category, error) {
	if err := c.Validate(); err != nil {
		return shop.Category{}, err
	}
	if err := t.uniqueCategoryName(c.Name, 0); err != nil {
		return shop.Category{}, err
	}
	c.ID = t.store.nextID(shop.EntityCategory)
	t.st.categories[c.ID] = c
	return c, nil
}

func (t *tx) UpdateCategory(_ context.Context, c shop.Category) (shop.Category, error) {
	if err := c.Validate(); err != nil {
		return shop.Category{}, err
	}
	if _, ok := t.st.categories[c.ID]; !ok {
		return shop.Category{}, &shared.NotFoundError{Entity: shop.EntityCategory, ID: c.ID}
	}
	if err := t.uniqueCategoryName(c.Name, c.ID); err != nil {
		return shop.Category{}, err
	}
	t.st.categories[c.ID] = c
	return c, nil
}

func (t *tx) uniqueCategoryName(name string, self int64) error {
	for id, existing := range t.st.categories {
		if id != self && existing.Name == name {
			return &shared.ConflictError{Entity: shop.EntityCategory, ID: id, Reason: "name already exists"}
		}
	}
	return nil
}

func (t *tx) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := t.st.categories[id]; !ok {
		return &shared.NotFoundError{Entity: shop.EntityCategory, ID: id}
	}
	for _, p := range t.st.products {
		if p.CategoryID == id {
			return &shared.ConflictError{Entity: shop.EntityCategory, ID: id, Reason: "category still has products"}
		}
	}
	delete(t.st.categories, id)
	return nil
}

func (t *tx) CreateCustomer(_ context.Context, c shop.Customer) (shop.Customer, error) {
	if err := c.Validate(); err != nil {
		return shop.Customer{}, err
	}
	c = copyCustomer(c)
	c.ID = t.store.nextID(shop.EntityCustomer)
	t.st.customers[c.ID] = c
	return copyCustomer(c), nil
}

func (t *tx) UpdateCustomer(_ context.Context, c shop.Customer) (shop.Customer, error) {
	if err := c.Validate(); err != nil {
		return shop.Customer{}, err
	}
	if _, ok := t.st.customers[c.ID]; !ok {
		return shop.Customer{}, &shared.NotFoundError{Entity: shop.EntityCustomer, ID: c.ID}
	}
	c = copyCustomer(c)
	t.st.customers[c.ID] = c
	return copyCustomer(c), nil
}

func (t *tx) DeleteCustomer(_ context.Context, id int64) error {
	if _, ok := t.st.customers[id]; !ok {
		return &shared.NotFoundError{Entity: shop.EntityCustomer, ID: id}
	}
	for _, o := range t.st.orders {
		if o.CustomerID == id {
			return &shared.ConflictError{Entity: shop.EntityCustomer, ID: id, Reason: "customer still has orders"}
		}
	}
	delete(t.st.customers, id)
	return nil
}

func (t *tx) CreateProduct(_ context.Context, p shop.Product) (shop.Product, error) {
	if err := p.Validate(); err != nil {
		return shop.Product{}, err
	}
	if err := t.requireCategory(p.CategoryID); err != nil {
		return shop.Product{}, err
	}
	p.ID = t.store.nextID(shop.EntityProduct)
	p.CreatedAt = t.store.timestamp()
	t.st.products[p.ID] = p
	return p, nil
}

func (t *tx) UpdateProduct(_ context.Context, p shop.Product) (shop.Product, error) {
	if err := p.Validate(); err != nil {
		return shop.Product{}, err
	}
	existing, ok := t.st.products[p.ID]
	if !ok {
		return shop.Product{}, &shared.NotFoundError{Entity: shop.EntityProduct, ID: p.ID}
	}
	if err := t.requireCategory(p.CategoryID); err != nil {
		return shop.Product{}, err
	}
	p.CreatedAt = existing.CreatedAt
	t.st.products[p.ID] = p
	return p, nil
}

func (t *tx) requireCategory(id int64) error {
	if _, ok := t.st.categories[id]; !ok {
		return &shared.ReferentialIntegrityError{Entity: shop.EntityProduct, Field: "category_id", RefEntity: shop.EntityCategory, RefID: id}
	}
	return nil
}

func (t *tx) DeleteProduct(_ context.Context, id int64) error {
	if _, ok := t.st.products[id]; !ok {
		return &shared.NotFoundError{Entity: shop.EntityProduct, ID: id}
	}
	for _, l := range t.st.lines {
		if l.ProductID == id {
			return &shared.ConflictError{Entity: shop.EntityProduct, ID: id, Reason: "product is referenced by order lines"}
		}
	}
	delete(t.st.products, id)
	return nil
}

func (t *tx) CreateOrder(_ context.Context, o shop.Order) (shop.Order, error) {
	if err := o.Validate(); err != nil {
		return shop.Order{}, err
	}
	if err := t.requireCustomer(o.CustomerID); err != nil {
		return shop.Order{}, err
	}
	o = copyOrder(o)
	o.ID = t.store.nextID(shop.EntityOrder)
	o.OrderDate = t.store.timestamp()
	t.st.orders[o.ID] = o
	return copyOrder(o), nil
}

func (t *tx) UpdateOrder(_ context.Context, o shop.Order) (shop.Order, error) {
	if err := o.Validate(); err != nil {
		return shop.Order{}, err
	}
	existing, ok := t.st.orders[o.ID]
	if !ok {
		return shop.Order{}, &shared.NotFoundError{Entity: shop.EntityOrder, ID: o.ID}
	}
	if err := t.requireCustomer(o.CustomerID); err != nil {
		return shop.Order{}, err
	}
	o = copyOrder(o)
	o.OrderDate = existing.OrderDate
	t.st.orders[o.ID] = o
	return copyOrder(o), nil
}

func (t *tx) requireCustomer(id int64) error {
	if _, ok := t.st.customers[id]; !ok {
		return &shared.ReferentialIntegrityError{Entity: shop.EntityOrder, Field: "customer_id", RefEntity: shop.EntityCustomer, RefID: id}
	}
	return nil
}

func (t *tx) DeleteOrder(_ context.Context, id int64) error {
	if _, ok := t.st.orders[id]; !ok {
		return &shared.NotFoundError{Entity: shop.EntityOrder, ID: id}
	}
	for lineID, l := range t.st.lines {
		if l.OrderID == id {
			delete(t.st.lines, lineID)
		}
	}
	delete(t.st.orders, id)
	return nil
}

func (t *tx) CreateOrderLine(_ context.Context, l shop.OrderLine) (shop.OrderLine, error) {
	if err := t.checkLine(l); err != nil {
		return shop.OrderLine{}, err
	}
	l.ID = t.store.nextID(shop.EntityOrderLine)
	t.st.lines[l.ID] = l
	return l, nil
}

func (t *tx) UpdateOrderLine(_ context.Context, l shop.OrderLine) (shop.OrderLine, error) {
	if _, ok := t.st.lines[l.ID]; !ok {
		return shop.OrderLine{}, &shared.NotFoundError{Entity: shop.EntityOrderLine, ID: l.ID}
	}
	if err := t.checkLine(l); err != nil {
		return shop.OrderLine{}, err
	}
	t.st.lines[l.ID] = l
	return l, nil
}

// checkLine validates the line, its references and the (order, product)
// uniqueness, ignoring the line itself.
func (t *tx) checkLine(l shop.OrderLine) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if _, ok := t.st.orders[l.OrderID]; !ok {
		return &shared.ReferentialIntegrityError{Entity: shop.EntityOrderLine, Field: "order_id", RefEntity: shop.EntityOrder, RefID: l.OrderID}
	}
	if _, ok := t.st.products[l.ProductID]; !ok {
		return &shared.ReferentialIntegrityError{Entity: shop.EntityOrderLine, Field: "product_id", RefEntity: shop.EntityProduct, RefID: l.ProductID}
	}
	for id, existing := range t.st.lines {
		if id != l.ID && existing.OrderID == l.OrderID && existing.ProductID == l.ProductID {
			return &shared.ConflictError{Entity: shop.EntityOrderLine, ID: id, Reason: "order already has a line for this product"}
		}
	}
	return nil
}

func (t *tx) DeleteOrderLine(_ context.Context, id int64) error {
	if _, ok := t.st.lines[id]; !ok {
		return &shared.NotFoundError{Entity: shop.EntityOrderLine, ID: id}
	}
	delete(t.st.lines, id)
	return nil
}
