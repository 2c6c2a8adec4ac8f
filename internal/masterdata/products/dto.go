package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shop24/shop24/internal/shop"
)

type productRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Cost        *decimal.Decimal `json:"cost" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	CategoryID  int64            `json:"category_id" validate:"required,gt=0"`
}

func (r productRequest) input() Input {
	return Input{
		Name:        r.Name,
		Description: r.Description,
		Cost:        *r.Cost,
		Price:       *r.Price,
		CategoryID:  r.CategoryID,
	}
}

// productResponse renders money with two decimals.
type productResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cost        string    `json:"cost"`
	Price       string    `json:"price"`
	CategoryID  int64     `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(p shop.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Cost:        p.Cost.StringFixed(2),
		Price:       p.Price.StringFixed(2),
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
	}
}

type quoteResponse struct {
	Cost      string `json:"cost"`
	Requested string `json:"requested"`
	Floor     string `json:"floor"`
	Price     string `json:"price"`
}
