package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shop24/shop24/internal/observability"
	"github.com/shop24/shop24/internal/shared"
	"github.com/shop24/shop24/internal/shop"
)

// ReportInvalidator drops cached reports derived from products and orders.
type ReportInvalidator interface {
	Bump(ctx context.Context) error
}

// Service manages orders and their lines. Each operation commits on its own;
// PlaceOrder creates an order with all its lines in one transaction.
type Service struct {
	store   shop.Store
	reports ReportInvalidator
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewService(store shop.Store, reports ReportInvalidator, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, reports: reports, logger: logger, metrics: metrics}
}

// LineRequest is one line of a PlaceOrderRequest.
type LineRequest struct {
	ProductID int64
	Quantity  int
}

// PlaceOrderRequest describes an order and its lines.
type PlaceOrderRequest struct {
	CustomerID       int64
	ShipmentPriority *int
	Lines            []LineRequest
}

// PlacedOrder is the result of PlaceOrder.
type PlacedOrder struct {
	Order shop.Order       `json:"order"`
	Lines []shop.OrderLine `json:"lines"`
}

// mutate runs fn in a transaction, records the outcome and invalidates the
// report cache after a successful commit.
func (s *Service) mutate(ctx context.Context, entity, op string, fn func(ctx context.Context, tx shop.Tx) error) error {
	err := s.store.WithTx(ctx, fn)
	s.metrics.ObserveOperation(entity, op, err)
	if err != nil {
		return err
	}
	if s.reports != nil {
		if err := s.reports.Bump(ctx); err != nil {
			s.logger.WarnContext(ctx, "invalidate product report cache", slog.Any("error", err))
		}
	}
	return nil
}

// CreateOrder fails with a referential integrity error when the customer
// does not exist.
func (s *Service) CreateOrder(ctx context.Context, customerID int64, shipmentPriority *int) (shop.Order, error) {
	var order shop.Order
	err := s.mutate(ctx, shop.EntityOrder, "create", func(ctx context.Context, tx shop.Tx) error {
		var err error
		order, err = tx.CreateOrder(ctx, shop.Order{CustomerID: customerID, ShipmentPriority: shipmentPriority})
		return err
	})
	if err != nil {
		return shop.Order{}, err
	}
	s.logger.InfoContext(ctx, "order created", slog.Int64("order_id", order.ID), slog.Int64("customer_id", customerID))
	return order, nil
}

// UpdateOrder replaces the customer and shipment priority of an order.
func (s *Service) UpdateOrder(ctx context.Context, orderID, customerID int64, shipmentPriority *int) (shop.Order, error) {
	var order shop.Order
	err := s.mutate(ctx, shop.EntityOrder, "update", func(ctx context.Context, tx shop.Tx) error {
		var err error
		order, err = tx.UpdateOrder(ctx, shop.Order{ID: orderID, CustomerID: customerID, ShipmentPriority: shipmentPriority})
		return err
	})
	if err != nil {
		return shop.Order{}, err
	}
	return order, nil
}

// DeleteOrder removes the order and its lines.
func (s *Service) DeleteOrder(ctx context.Context, orderID int64) error {
	err := s.mutate(ctx, shop.EntityOrder, "delete", func(ctx context.Context, tx shop.Tx) error {
		return tx.DeleteOrder(ctx, orderID)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "order deleted", slog.Int64("order_id", orderID))
	return nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (shop.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// List returns orders by shipment priority, unprioritised orders last,
// unless opts says otherwise.
func (s *Service) List(ctx context.Context, opts shop.ListOptions) ([]shop.Order, error) {
	return s.store.ListOrders(ctx, shop.OrderFilter{ListOptions: opts})
}

// OrderHistory returns the customer's orders by shipment priority. The
// customer is not looked up: an unknown id yields an empty slice.
func (s *Service) OrderHistory(ctx context.Context, customerID int64) ([]shop.Order, error) {
	return s.store.ListOrders(ctx, shop.OrderFilter{
		CustomerID:  &customerID,
		ListOptions: shop.ListOptions{OrderBy: "shipment_priority"},
	})
}

// AddOrderLine adds a product to an order. A second line for the same
// product is a conflict; use UpdateOrderLine to change the quantity.
func (s *Service) AddOrderLine(ctx context.Context, orderID, productID int64, quantity int) (shop.OrderLine, error) {
	var line shop.OrderLine
	err := s.mutate(ctx, shop.EntityOrderLine, "create", func(ctx context.Context, tx shop.Tx) error {
		var err error
		line, err = tx.CreateOrderLine(ctx, shop.OrderLine{OrderID: orderID, ProductID: productID, Quantity: quantity})
		return err
	})
	if err != nil {
		return shop.OrderLine{}, err
	}
	return line, nil
}

// UpdateOrderLine replaces the product and quantity of a line. The line
// stays on its order.
func (s *Service) UpdateOrderLine(ctx context.Context, lineID, productID int64, quantity int) (shop.OrderLine, error) {
	var line shop.OrderLine
	err := s.mutate(ctx, shop.EntityOrderLine, "update", func(ctx context.Context, tx shop.Tx) error {
		existing, err := tx.GetOrderLine(ctx, lineID)
		if err != nil {
			return err
		}
		line, err = tx.UpdateOrderLine(ctx, shop.OrderLine{
			ID:        lineID,
			OrderID:   existing.OrderID,
			ProductID: productID,
			Quantity:  quantity,
		})
		return err
	})
	if err != nil {
		return shop.OrderLine{}, err
	}
	return line, nil
}

func (s *Service) DeleteOrderLine(ctx context.Context, lineID int64) error {
	return s.mutate(ctx, shop.EntityOrderLine, "delete", func(ctx context.Context, tx shop.Tx) error {
		return tx.DeleteOrderLine(ctx, lineID)
	})
}

func (s *Service) GetOrderLine(ctx context.Context, id int64) (shop.OrderLine, error) {
	return s.store.GetOrderLine(ctx, id)
}

// ListOrderLines returns the order's lines by id. An order without lines
// yields an empty slice.
func (s *Service) ListOrderLines(ctx context.Context, orderID int64) ([]shop.OrderLine, error) {
	return s.store.ListOrderLines(ctx, shop.OrderLineFilter{OrderID: orderID})
}

// PlaceOrder creates the order and every line in one transaction. Any
// failure leaves nothing behind.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (PlacedOrder, error) {
	if len(req.Lines) == 0 {
		err := shared.NewValidationError(shop.EntityOrder, "lines", "at least one line is required")
		s.metrics.ObserveOperation(shop.EntityOrder, "place", err)
		return PlacedOrder{}, err
	}

	var placed PlacedOrder
	err := s.mutate(ctx, shop.EntityOrder, "place", func(ctx context.Context, tx shop.Tx) error {
		order, err := tx.CreateOrder(ctx, shop.Order{CustomerID: req.CustomerID, ShipmentPriority: req.ShipmentPriority})
		if err != nil {
			return err
		}
		lines := make([]shop.OrderLine, 0, len(req.Lines))
		for i, lr := range req.Lines {
			line, err := tx.CreateOrderLine(ctx, shop.OrderLine{OrderID: order.ID, ProductID: lr.ProductID, Quantity: lr.Quantity})
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			lines = append(lines, line)
		}
		placed = PlacedOrder{Order: order, Lines: lines}
		return nil
	})
	if err != nil {
		return PlacedOrder{}, err
	}
	s.logger.InfoContext(ctx, "order placed",
		slog.Int64("order_id", placed.Order.ID),
		slog.Int64("customer_id", req.CustomerID),
		slog.Int("lines", len(placed.Lines)))
	return placed, nil
}
