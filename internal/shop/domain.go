package shop

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Entity names used in errors and metrics labels.
const (
	EntityCategory  = "category"
	EntityCustomer  = "customer"
	EntityProduct   = "product"
	EntityOrder     = "order"
	EntityOrderLine = "order_line"
)

// Category groups products.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=200"`
}

// Customer places orders.
type Customer struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"first_name" validate:"required,max=50"`
	LastName   string  `json:"last_name" validate:"required,max=50"`
	Email      string  `json:"email" validate:"required,email,max=100"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	StreetAddr *string `json:"street_addr,omitempty" validate:"omitempty,max=100"`
	State      *string `json:"state,omitempty" validate:"omitempty,max=50"`
	Zipcode    *string `json:"zipcode,omitempty" validate:"omitempty,max=10"`
	City       *string `json:"city,omitempty" validate:"omitempty,max=100"`
}

// Product is a sellable item. Price is kept at or above the margin floor of Cost.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"required,max=2000"`
	Cost        decimal.Decimal `json:"cost"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"category_id" validate:"required,gt=0"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Order is the header of a customer purchase. A nil ShipmentPriority means
// the order has not been prioritised; lower values ship first.
type Order struct {
	ID               int64     `json:"id"`
	CustomerID       int64     `json:"customer_id" validate:"required,gt=0"`
	OrderDate        time.Time `json:"order_date"`
	ShipmentPriority *int      `json:"shipment_priority" validate:"omitempty,gte=0,lte=2147483647"`
}

// OrderLine links an order to a product with a quantity.
type OrderLine struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"order_id" validate:"required,gt=0"`
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"gt=0,lte=2147483647"`
}

// Normalize trims surrounding whitespace from the name.
func (c *Category) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
}

// Normalize trims text fields and drops blank optional fields.
func (c *Customer) Normalize() {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = trimOptional(c.Phone)
	c.StreetAddr = trimOptional(c.StreetAddr)
	c.State = trimOptional(c.State)
	c.Zipcode = trimOptional(c.Zipcode)
	c.City = trimOptional(c.City)
}

// Normalize trims text fields.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
