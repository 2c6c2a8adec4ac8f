package customers

import (
	"context"
	"log/slog"

	"github.com/shop24/shop24/internal/observability"
	"github.com/shop24/shop24/internal/shop"
)

// Input carries the caller-supplied customer fields. Blank optional fields
// are stored as absent.
type Input struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	StreetAddr *string
	State      *string
	Zipcode    *string
	City       *string
}

func (in Input) customer(id int64) shop.Customer {
	c := shop.Customer{
		ID:         id,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		StreetAddr: in.StreetAddr,
		State:      in.State,
		Zipcode:    in.Zipcode,
		City:       in.City,
	}
	c.Normalize()
	return c
}

type Service struct {
	store   shop.Store
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewService(store shop.Store, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, logger: logger, metrics: metrics}
}

// List returns customers by last name unless opts says otherwise.
func (s *Service) List(ctx context.Context, opts shop.ListOptions) ([]shop.Customer, error) {
	return s.store.ListCustomers(ctx, opts)
}

func (s *Service) Get(ctx context.Context, id int64) (shop.Customer, error) {
	return s.store.GetCustomer(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (shop.Customer, error) {
	var created shop.Customer
	err := s.store.WithTx(ctx, func(ctx context.Context, tx shop.Tx) error {
		var err error
		created, err = tx.CreateCustomer(ctx, in.customer(0))
		return err
	})
	s.metrics.ObserveOperation(shop.EntityCustomer, "create", err)
	if err != nil {
		return shop.Customer{}, err
	}
	s.logger.InfoContext(ctx, "customer created", slog.Int64("customer_id", created.ID))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (shop.Customer, error) {
	var updated shop.Customer
	err := s.store.WithTx(ctx, func(ctx context.Context, tx shop.Tx) error {
		var err error
		updated, err = tx.UpdateCustomer(ctx, in.customer(id))
		return err
	})
	s.metrics.ObserveOperation(shop.EntityCustomer, "update", err)
	if err != nil {
		return shop.Customer{}, err
	}
	return updated, nil
}

// Delete fails with a conflict while the customer has orders.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(ctx context.Context, tx shop.Tx) error {
		return tx.DeleteCustomer(ctx, id)
	})
	s.metrics.ObserveOperation(shop.EntityCustomer, "delete", err)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "customer deleted", slog.Int64("customer_id", id))
	return nil
}
