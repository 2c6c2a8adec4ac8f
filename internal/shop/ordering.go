package shop

import (
	"slices"
	"strings"

	"github.com/shop24/shop24/internal/shared"
)

// ListOptions selects the ordering of a listing. Ties are always broken by id
// ascending.
type ListOptions struct {
	OrderBy string
	Desc    bool
}

// Sort fields accepted per entity. The first entry is the default.
var (
	CategorySortFields = []string{"name", "id"}
	CustomerSortFields = []string{"last_name", "id", "first_name", "email", "city", "state"}
	ProductSortFields  = []string{"created_at", "id", "name", "cost", "price", "category_id"}
	OrderSortFields    = []string{"shipment_priority", "id", "customer_id", "order_date"}
)

// ResolveSort returns the field to order by, falling back to the entity
// default when none was requested.
func (o ListOptions) ResolveSort(entity string, allowed []string) (string, error) {
	field := strings.ToLower(strings.TrimSpace(o.OrderBy))
	if field == "" {
		return allowed[0], nil
	}
	if !slices.Contains(allowed, field) {
		return "", shared.NewValidationError(entity, "sort", "unsupported sort field "+field)
	}
	return field, nil
}
