package categories

import (
	"context"
	"log/slog"

	"github.com/shop24/shop24/internal/observability"
	"github.com/shop24/shop24/internal/shop"
)

// Service manages product categories.
type Service struct {
	store   shop.Store
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService builds a Service. logger and metrics may be nil.
func NewService(store shop.Store, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, logger: logger, metrics: metrics}
}

// List returns categories ordered by name unless opts says otherwise.
func (s *Service) List(ctx context.Context, opts shop.ListOptions) ([]shop.Category, error) {
	return s.store.ListCategories(ctx, opts)
}

func (s *Service) Get(ctx context.Context, id int64) (shop.Category, error) {
	return s.store.GetCategory(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string) (shop.Category, error) {
	category := shop.Category{Name: name}
	category.Normalize()

	var created shop.Category
	err := s.store.WithTx(ctx, func(ctx context.Context, tx shop.Tx) error {
		var err error
		created, err = tx.CreateCategory(ctx, category)
		return err
	})
	s.metrics.ObserveOperation(shop.EntityCategory, "create", err)
	if err != nil {
		return shop.Category{}, err
	}
	s.logger.InfoContext(ctx, "category created", slog.Int64("category_id", created.ID))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, name string) (shop.Category, error) {
	category := shop.Category{ID: id, Name: name}
	category.Normalize()

	var updated shop.Category
	err := s.store.WithTx(ctx, func(ctx context.Context, tx shop.Tx) error {
		var err error
		updated, err = tx.UpdateCategory(ctx, category)
		return err
	})
	s.metrics.ObserveOperation(shop.EntityCategory, "update", err)
	if err != nil {
		return shop.Category{}, err
	}
	return updated, nil
}

// Delete fails with a conflict while products still reference the category.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(ctx context.Context, tx shop.Tx) error {
		return tx.DeleteCategory(ctx, id)
	})
	s.metrics.ObserveOperation(shop.EntityCategory, "delete", err)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "category deleted", slog.Int64("category_id", id))
	return nil
}
