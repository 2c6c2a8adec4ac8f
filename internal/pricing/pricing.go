// Package pricing enforces the margin floor on product prices.
package pricing

import "github.com/shopspring/decimal"

// Policy holds the minimum price-to-cost multiplier.
type Policy struct {
	Margin decimal.Decimal
}

// DefaultPolicy requires a price of at least 1.3 times cost.
var DefaultPolicy = Policy{Margin: decimal.RequireFromString("1.3")}

// Floor returns cost times the margin rounded half up to cents. decimal's
// Round rounds half away from zero, which is half up for non-negative costs.
func (p Policy) Floor(cost decimal.Decimal) decimal.Decimal {
	return cost.Mul(p.Margin).Round(2)
}

// Normalize raises requested to the floor when it falls below it and returns
// it unchanged otherwise.
func (p Policy) Normalize(cost, requested decimal.Decimal) decimal.Decimal {
	floor := p.Floor(cost)
	if requested.LessThan(floor) {
		return floor
	}
	return requested
}

// MarginFloor is DefaultPolicy.Floor.
func MarginFloor(cost decimal.Decimal) decimal.Decimal {
	return DefaultPolicy.Floor(cost)
}

// NormalizePrice is DefaultPolicy.Normalize.
func NormalizePrice(cost, requested decimal.Decimal) decimal.Decimal {
	return DefaultPolicy.Normalize(cost, requested)
}
