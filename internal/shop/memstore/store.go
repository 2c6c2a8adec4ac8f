// Package memstore is an in-memory shop.Store. Each transaction works on a
// copy of the committed state which replaces it only when the callback
// succeeds.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/shop24/shop24/internal/shop"
)

// Store keeps every entity in maps guarded by a single lock. Transactions
// are serialised.
type Store struct {
	mu   sync.RWMutex
	data *state
	seq  map[string]int64
	now  func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the time source used for created_at and order_date.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		data: newState(),
		seq:  make(map[string]int64),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ shop.Store = (*Store)(nil)

type state struct {
	categories map[int64]shop.Category
	customers  map[int64]shop.Customer
	products   map[int64]shop.Product
	orders     map[int64]shop.Order
	lines      map[int64]shop.OrderLine
}

func newState() *state {
	return &state{
		categories: make(map[int64]shop.Category),
		customers:  make(map[int64]shop.Customer),
		products:   make(map[int64]shop.Product),
		orders:     make(map[int64]shop.Order),
		lines:      make(map[int64]shop.OrderLine),
	}
}

// clone is shallow: stored values are never mutated in place and pointer
// fields are copied on the way in and out.
func (st *state) clone() *state {
	return &state{
		categories: maps.Clone(st.categories),
		customers:  maps.Clone(st.customers),
		products:   maps.Clone(st.products),
		orders:     maps.Clone(st.orders),
		lines:      maps.Clone(st.lines),
	}
}

// WithTx runs fn against a private copy of the data and commits it when fn
// returns nil. Ids handed out inside a rolled back transaction stay consumed.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx shop.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(ctx, &tx{view: view{st: work}, store: s}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *Store) nextID(entity string) int64 {
	s.seq[entity]++
	return s.seq[entity]
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// read returns a view of the committed state. The state is replaced on commit,
// never mutated, so the view stays consistent after the lock is released.
func (s *Store) read() view {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{st: s.data}
}

func (s *Store) GetCategory(ctx context.Context, id int64) (shop.Category, error) {
	return s.read().GetCategory(ctx, id)
}

func (s *Store) ListCategories(ctx context.Context, opts shop.ListOptions) ([]shop.Category, error) {
	return s.read().ListCategories(ctx, opts)
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (shop.Customer, error) {
	return s.read().GetCustomer(ctx, id)
}

func (s *Store) ListCustomers(ctx context.Context, opts shop.ListOptions) ([]shop.Customer, error) {
	return s.read().ListCustomers(ctx, opts)
}

func (s *Store) GetProduct(ctx context.Context, id int64) (shop.Product, error) {
	return s.read().GetProduct(ctx, id)
}

func (s *Store) ListProducts(ctx context.Context, opts shop.ListOptions) ([]shop.Product, error) {
	return s.read().ListProducts(ctx, opts)
}

func (s *Store) GetOrder(ctx context.Context, id int64) (shop.Order, error) {
	return s.read().GetOrder(ctx, id)
}

func (s *Store) ListOrders(ctx context.Context, filter shop.OrderFilter) ([]shop.Order, error) {
	return s.read().ListOrders(ctx, filter)
}

func (s *Store) GetOrderLine(ctx context.Context, id int64) (shop.OrderLine, error) {
	return s.read().GetOrderLine(ctx, id)
}

func (s *Store) ListOrderLines(ctx context.Context, filter shop.OrderLineFilter) ([]shop.OrderLine, error) {
	return s.read().ListOrderLines(ctx, filter)
}

func (s *Store) SumQuantityByProduct(ctx context.Context) (map[int64]int64, error) {
	return s.read().SumQuantityByProduct(ctx)
}
