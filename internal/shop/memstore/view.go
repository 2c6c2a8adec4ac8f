package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/shop24/shop24/internal/shared"
	"github.com/shop24/shop24/internal/shop"
)

type view struct {
	st *state
}

func (v view) GetCategory(_ context.Context, id int64) (shop.Category, error) {
	c, ok := v.st.categories[id]
	if !ok {
		return shop.Category{}, &shared.NotFoundError{Entity: shop.EntityCategory, ID: id}
	}
	return c, nil
}

func (v view) ListCategories(_ context.Context, opts shop.ListOptions) ([]shop.Category, error) {
	field, err := opts.ResolveSort(shop.EntityCategory, shop.CategorySortFields)
	if err != nil {
		return nil, err
	}
	items := collect(v.st.categories, func(c shop.Category) bool { return true }, func(c shop.Category) shop.Category { return c })
	sortItems(items, func(a, b shop.Category, _ bool) int {
		if field == "name" {
			return strings.Compare(a.Name, b.Name)
		}
		return 0
	}, func(c shop.Category) int64 { return c.ID }, opts.Desc)
	return items, nil
}

func (v view) GetCustomer(_ context.Context, id int64) (shop.Customer, error) {
	c, ok := v.st.customers[id]
	if !ok {
		return shop.Customer{}, &shared.NotFoundError{Entity: shop.EntityCustomer, ID: id}
	}
	return copyCustomer(c), nil
}

func (v view) ListCustomers(_ context.Context, opts shop.ListOptions) ([]shop.Customer, error) {
	field, err := opts.ResolveSort(shop.EntityCustomer, shop.CustomerSortFields)
	if err != nil {
		return nil, err
	}
	items := collect(v.st.customers, func(shop.Customer) bool { return true }, copyCustomer)
	sortItems(items, func(a, b shop.Customer, desc bool) int {
		switch field {
		case "first_name":
			return strings.Compare(a.FirstName, b.FirstName)
		case "last_name":
			return strings.Compare(a.LastName, b.LastName)
		case "email":
			return strings.Compare(a.Email, b.Email)
		case "city":
			return nullsLast(a.City, b.City, desc)
		case "state":
			return nullsLast(a.State, b.State, desc)
		}
		return 0
	}, func(c shop.Customer) int64 { return c.ID }, opts.Desc)
	return items, nil
}

func (v view) GetProduct(_ context.Context, id int64) (shop.Product, error) {
	p, ok := v.st.products[id]
	if !ok {
		return shop.Product{}, &shared.NotFoundError{Entity: shop.EntityProduct, ID: id}
	}
	return p, nil
}

func (v view) ListProducts(_ context.Context, opts shop.ListOptions) ([]shop.Product, error) {
	field, err := opts.ResolveSort(shop.EntityProduct, shop.ProductSortFields)
	if err != nil {
		return nil, err
	}
	items := collect(v.st.products, func(shop.Product) bool { return true }, func(p shop.Product) shop.Product { return p })
	sortItems(items, func(a, b shop.Product, _ bool) int {
		switch field {
		case "created_at":
			return a.CreatedAt.Compare(b.CreatedAt)
		case "name":
			return strings.Compare(a.Name, b.Name)
		case "cost":
			return a.Cost.Cmp(b.Cost)
		case "price":
			return a.Price.Cmp(b.Price)
		case "category_id":
			return cmp.Compare(a.CategoryID, b.CategoryID)
		}
		return 0
	}, func(p shop.Product) int64 { return p.ID }, opts.Desc)
	return items, nil
}

func (v view) GetOrder(_ context.Context, id int64) (shop.Order, error) {
	o, ok := v.st.orders[id]
	if !ok {
		return shop.Order{}, &shared.NotFoundError{Entity: shop.EntityOrder, ID: id}
	}
	return copyOrder(o), nil
}

func (v view) ListOrders(_ context.Context, filter shop.OrderFilter) ([]shop.Order, error) {
	field, err := filter.ResolveSort(shop.EntityOrder, shop.OrderSortFields)
	if err != nil {
		return nil, err
	}
	items := collect(v.st.orders, func(o shop.Order) bool {
		return filter.CustomerID == nil || o.CustomerID == *filter.CustomerID
	}, copyOrder)
	sortItems(items, func(a, b shop.Order, desc bool) int {
		switch field {
		case "shipment_priority":
			return nullsLast(a.ShipmentPriority, b.ShipmentPriority, desc)
		case "customer_id":
			return cmp.Compare(a.CustomerID, b.CustomerID)
		case "order_date":
			return a.OrderDate.Compare(b.OrderDate)
		}
		return 0
	}, func(o shop.Order) int64 { return o.ID }, filter.Desc)
	return items, nil
}

func (v view) GetOrderLine(_ context.Context, id int64) (shop.OrderLine, error) {
	l, ok := v.st.lines[id]
	if !ok {
		return shop.OrderLine{}, &shared.NotFoundError{Entity: shop.EntityOrderLine, ID: id}
	}
	return l, nil
}

func (v view) ListOrderLines(_ context.Context, filter shop.OrderLineFilter) ([]shop.OrderLine, error) {
	items := collect(v.st.lines, func(l shop.OrderLine) bool {
		if filter.OrderID != 0 && l.OrderID != filter.OrderID {
			return false
		}
		return filter.ProductID == 0 || l.ProductID == filter.ProductID
	}, func(l shop.OrderLine) shop.OrderLine { return l })
	slices.SortFunc(items, func(a, b shop.OrderLine) int { return cmp.Compare(a.ID, b.ID) })
	return items, nil
}

func (v view) SumQuantityByProduct(_ context.Context) (map[int64]int64, error) {
	totals := make(map[int64]int64)
	for _, l := range v.st.lines {
		totals[l.ProductID] += int64(l.Quantity)
	}
	return totals, nil
}

// collect returns a non-nil slice so empty listings encode as [].
func collect[T any](src map[int64]T, keep func(T) bool, out func(T) T) []T {
	items := make([]T, 0, len(src))
	for _, item := range src {
		if keep(item) {
			items = append(items, out(item))
		}
	}
	return items
}

// sortItems orders by the primary comparison, reversed when desc, and breaks
// ties by id ascending.
func sortItems[T any](items []T, primary func(a, b T, desc bool) int, id func(T) int64, desc bool) {
	slices.SortFunc(items, func(a, b T) int {
		c := primary(a, b, desc)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(id(a), id(b))
	})
}

// nullsLast keeps nil values after set ones in either direction. The result
// is pre-flipped for desc because sortItems negates it.
func nullsLast[V cmp.Ordered](a, b *V, desc bool) int {
	last := 1
	if desc {
		last = -1
	}
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return last
	case b == nil:
		return -last
	}
	return cmp.Compare(*a, *b)
}

func copyCustomer(c shop.Customer) shop.Customer {
	c.Phone = clonePtr(c.Phone)
	c.StreetAddr = clonePtr(c.StreetAddr)
	c.State = clonePtr(c.State)
	c.Zipcode = clonePtr(c.Zipcode)
	c.City = clonePtr(c.City)
	return c
}

func copyOrder(o shop.Order) shop.Order {
	o.ShipmentPriority = clonePtr(o.ShipmentPriority)
	return o
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
