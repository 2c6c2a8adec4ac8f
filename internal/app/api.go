package app

import (
	"log/slog"

	"github.com/shop24/shop24/internal/masterdata/categories"
	"github.com/shop24/shop24/internal/masterdata/products"
	"github.com/shop24/shop24/internal/observability"
	"github.com/shop24/shop24/internal/pricing"
	"github.com/shop24/shop24/internal/sales/customers"
	salesmetrics "github.com/shop24/shop24/internal/sales/metrics"
	"github.com/shop24/shop24/internal/sales/orders"
	"github.com/shop24/shop24/internal/shop"
)

// Services groups the domain services sharing one store.
type Services struct {
	Categories *categories.Service
	Products   *products.Service
	Customers  *customers.Service
	Orders     *orders.Service
	Sales      *salesmetrics.Service
}

// NewServices wires every service to store. Product and order mutations bump
// cache; a nil cache disables report caching.
func NewServices(store shop.Store, cache *salesmetrics.Cache, logger *slog.Logger, metrics *observability.Metrics) *Services {
	var reports orders.ReportInvalidator
	if cache != nil {
		reports = cache
	}
	return &Services{
		Categories: categories.NewService(store, logger, metrics),
		Products:   products.NewService(store, pricing.DefaultPolicy, reports, logger, metrics),
		Customers:  customers.NewService(store, logger, metrics),
		Orders:     orders.NewService(store, reports, logger, metrics),
		Sales:      salesmetrics.NewService(store, cache, logger),
	}
}
