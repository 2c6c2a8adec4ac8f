package metrics

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/shop24/shop24/internal/shop"
)

// ProductSales is one row of the product report.
type ProductSales struct {
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
	Quantity   int64  `json:"quantity"`
}

// Service derives sales figures from order lines. It never writes.
type Service struct {
	reader shop.Reader
	cache  *Cache
	logger *slog.Logger
}

func NewService(reader shop.Reader, cache *Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{reader: reader, cache: cache, logger: logger}
}

// AggregateQuantities returns the total ordered quantity per product id.
// Products that appear on no order line are absent from the map. The result
// is read fresh on every call.
func (s *Service) AggregateQuantities(ctx context.Context) (map[int64]int64, error) {
	totals, err := s.reader.SumQuantityByProduct(ctx)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = map[int64]int64{}
	}
	return totals, nil
}

// ProductReport lists every product with its ordered quantity, highest
// quantity first. Products without lines report zero.
func (s *Service) ProductReport(ctx context.Context) ([]ProductSales, error) {
	var (
		products []shop.Product
		totals   map[int64]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.reader.ListProducts(gctx, shop.ListOptions{OrderBy: "id"})
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.AggregateQuantities(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := make([]ProductSales, 0, len(products))
	for _, p := range products {
		report = append(report, ProductSales{
			ProductID:  p.ID,
			Name:       p.Name,
			CategoryID: p.CategoryID,
			Quantity:   totals[p.ID],
		})
	}
	sort.SliceStable(report, func(i, j int) bool {
		if report[i].Quantity != report[j].Quantity {
			return report[i].Quantity > report[j].Quantity
		}
		return report[i].ProductID < report[j].ProductID
	})
	return report, nil
}

// CachedReport serves ProductReport through the cache. Cache failures are
// logged and the report is computed directly.
func (s *Service) CachedReport(ctx context.Context) ([]ProductSales, error) {
	key, err := s.cache.BuildKey(ctx, "shop24", "report", "products")
	if err != nil {
		s.logger.WarnContext(ctx, "report cache unavailable", slog.Any("error", err))
		return s.ProductReport(ctx)
	}
	var report []ProductSales
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (any, error) {
		return s.ProductReport(ctx)
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		s.logger.WarnContext(ctx, "report cache fetch failed", slog.String("key", key), slog.Any("error", err))
		return s.ProductReport(ctx)
	}
	if report == nil {
		report = []ProductSales{}
	}
	return report, nil
}
