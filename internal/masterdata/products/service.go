package products

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/shop24/shop24/internal/observability"
	"github.com/shop24/shop24/internal/pricing"
	"github.com/shop24/shop24/internal/shop"
)

// ReportInvalidator drops cached reports derived from products and orders.
type ReportInvalidator interface {
	Bump(ctx context.Context) error
}

// Input carries the caller-supplied fields of a product.
type Input struct {
	Name        string
	Description string
	Cost        decimal.Decimal
	Price       decimal.Decimal
	CategoryID  int64
}

// Service manages products and applies the pricing policy on every write.
type Service struct {
	store   shop.Store
	policy  pricing.Policy
	reports ReportInvalidator
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService builds a Service. A zero policy means pricing.DefaultPolicy;
// reports, logger and metrics may be nil.
func NewService(store shop.Store, policy pricing.Policy, reports ReportInvalidator, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if policy.Margin.IsZero() {
		policy = pricing.DefaultPolicy
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, policy: policy, reports: reports, logger: logger, metrics: metrics}
}

// List returns products by creation time unless opts says otherwise.
func (s *Service) List(ctx context.Context, opts shop.ListOptions) ([]shop.Product, error) {
	return s.store.ListProducts(ctx, opts)
}

func (s *Service) Get(ctx context.Context, id int64) (shop.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// Quote reports the margin floor for cost and the price a product would be
// stored with.
func (s *Service) Quote(cost, requested decimal.Decimal) (floor, price decimal.Decimal, err error) {
	if err := shop.ValidateMoney(shop.EntityProduct, "cost", cost); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if err := shop.ValidateMoney(shop.EntityProduct, "price", requested); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return s.policy.Floor(cost), s.policy.Normalize(cost, requested), nil
}

// build validates the requested values, then raises the price to the margin
// floor of the new cost.
func (s *Service) build(ctx context.Context, id int64, in Input) (shop.Product, error) {
	product := shop.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Cost:        in.Cost,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
	}
	product.Normalize()
	if err := product.Validate(); err != nil {
		return shop.Product{}, err
	}
	product.Price = s.policy.Normalize(product.Cost, product.Price)
	if err := shop.ValidateMoney(shop.EntityProduct, "price", product.Price); err != nil {
		return shop.Product{}, err
	}
	if !product.Price.Equal(in.Price) {
		s.logger.DebugContext(ctx, "price raised to margin floor",
			slog.String("requested", in.Price.String()),
			slog.String("price", product.Price.String()))
	}
	return product, nil
}

func (s *Service) Create(ctx context.Context, in Input) (shop.Product, error) {
	product, err := s.build(ctx, 0, in)
	if err == nil {
		err = s.store.WithTx(ctx, func(ctx context.Context, tx shop.Tx) error {
			var err error
			product, err = tx.CreateProduct(ctx, product)
			return err
		})
	}
	s.metrics.ObserveOperation(shop.EntityProduct, "create", err)
	if err != nil {
		return shop.Product{}, err
	}
	s.logger.InfoContext(ctx, "product created", slog.Int64("product_id", product.ID))
	s.invalidate(ctx)
	return product, nil
}

// Update replaces every caller-supplied field. CreatedAt is kept.
func (s *Service) Update(ctx context.Context, id int64, in Input) (shop.Product, error) {
	product, err := s.build(ctx, id, in)
	if err == nil {
		err = s.store.WithTx(ctx, func(ctx context.Context, tx shop.Tx) error {
			var err error
			product, err = tx.UpdateProduct(ctx, product)
			return err
		})
	}
	s.metrics.ObserveOperation(shop.EntityProduct, "update", err)
	if err != nil {
		return shop.Product{}, err
	}
	s.invalidate(ctx)
	return product, nil
}

// Delete fails with a conflict while order lines reference the product.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(ctx context.Context, tx shop.Tx) error {
		return tx.DeleteProduct(ctx, id)
	})
	s.metrics.ObserveOperation(shop.EntityProduct, "delete", err)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "product deleted", slog.Int64("product_id", id))
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.reports == nil {
		return
	}
	if err := s.reports.Bump(ctx); err != nil {
		s.logger.WarnContext(ctx, "invalidate product report cache", slog.Any("error", err))
	}
}
