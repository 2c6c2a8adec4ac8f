package shop

import "context"

// Reader exposes lookups and ordered listings over every entity.
type Reader interface {
	GetCategory(ctx context.Context, id int64) (Category, error)
	ListCategories(ctx context.Context, opts ListOptions) ([]Category, error)

	GetCustomer(ctx context.Context, id int64) (Customer, error)
	ListCustomers(ctx context.Context, opts ListOptions) ([]Customer, error)

	GetProduct(ctx context.Context, id int64) (Product, error)
	ListProducts(ctx context.Context, opts ListOptions) ([]Product, error)

	GetOrder(ctx context.Context, id int64) (Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error)

	GetOrderLine(ctx context.Context, id int64) (OrderLine, error)
	ListOrderLines(ctx context.Context, filter OrderLineFilter) ([]OrderLine, error)

	// SumQuantityByProduct returns the total ordered quantity per product.
	// Products without order lines are absent.
	SumQuantityByProduct(ctx context.Context) (map[int64]int64, error)
}

// Writer mutates entities. Implementations validate the entity, check foreign
// keys and enforce the delete policies before persisting.
type Writer interface {
	CreateCategory(ctx context.Context, category Category) (Category, error)
	UpdateCategory(ctx context.Context, category Category) (Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateCustomer(ctx context.Context, customer Customer) (Customer, error)
	UpdateCustomer(ctx context.Context, customer Customer) (Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, product Product) (Product, error)
	UpdateProduct(ctx context.Context, product Product) (Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	CreateOrder(ctx context.Context, order Order) (Order, error)
	UpdateOrder(ctx context.Context, order Order) (Order, error)
	// DeleteOrder removes the order together with its lines.
	DeleteOrder(ctx context.Context, id int64) error

	CreateOrderLine(ctx context.Context, line OrderLine) (OrderLine, error)
	UpdateOrderLine(ctx context.Context, line OrderLine) (OrderLine, error)
	DeleteOrderLine(ctx context.Context, id int64) error
}

// Tx is the handle passed to WithTx callbacks.
type Tx interface {
	Reader
	Writer
}

// Store is the entity store. Writes only happen through WithTx: the callback's
// changes are committed when it returns nil and discarded otherwise.
type Store interface {
	Reader
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// OrderFilter narrows and orders an order listing.
type OrderFilter struct {
	CustomerID *int64
	ListOptions
}

// OrderLineFilter narrows an order line listing. Zero values match all.
// Lines are always returned by id ascending.
type OrderLineFilter struct {
	OrderID   int64
	ProductID int64
}
