package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/shop24/shop24/internal/app"
	"github.com/shop24/shop24/internal/masterdata/products"
	"github.com/shop24/shop24/internal/sales/customers"
	"github.com/shop24/shop24/internal/shop"
)

type seedProduct struct {
	name, description, category string
	cost, price                 string
}

var (
	seedCategories = []string{"Tools", "Garden", "Kitchen"}

	seedCustomers = []customers.Input{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", City: strPtr("London")},
		{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", State: strPtr("NY"), Zipcode: strPtr("10001")},
		{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"},
	}

	// Some prices sit below the margin floor and are raised on create.
	seedProducts = []seedProduct{
		{"Claw Hammer", "16 oz steel claw hammer", "Tools", "8.50", "14.99"},
		{"Hand Saw", "20 inch crosscut saw", "Tools", "11.00", "12.00"},
		{"Garden Hose", "25 m reinforced hose", "Garden", "15.40", "29.90"},
		{"Pruning Shears", "Bypass pruner", "Garden", "6.25", "7.00"},
		{"Chef Knife", "8 inch stainless chef knife", "Kitchen", "21.00", "49.00"},
		{"Cutting Board", "Bamboo cutting board", "Kitchen", "4.10", "5.00"},
	}
)

func strPtr(s string) *string { return &s }

// SeedResult counts the records created by Seed.
type SeedResult struct {
	Categories int
	Customers  int
	Products   int
}

// Seed loads sample categories, customers and products through the domain
// services. It does nothing when any category already exists.
func Seed(ctx context.Context, svc *app.Services) (SeedResult, error) {
	var res SeedResult
	existing, err := svc.Categories.List(ctx, shop.ListOptions{})
	if err != nil {
		return res, err
	}
	if len(existing) > 0 {
		return res, nil
	}

	categoryIDs := make(map[string]int64, len(seedCategories))
	for _, name := range seedCategories {
		category, err := svc.Categories.Create(ctx, name)
		if err != nil {
			return res, fmt.Errorf("seed category %s: %w", name, err)
		}
		categoryIDs[name] = category.ID
		res.Categories++
	}
	for _, in := range seedCustomers {
		if _, err := svc.Customers.Create(ctx, in); err != nil {
			return res, fmt.Errorf("seed customer %s: %w", in.Email, err)
		}
		res.Customers++
	}
	for _, p := range seedProducts {
		if _, err := svc.Products.Create(ctx, products.Input{
			Name:        p.name,
			Description: p.description,
			Cost:        decimal.RequireFromString(p.cost),
			Price:       decimal.RequireFromString(p.price),
			CategoryID:  categoryIDs[p.category],
		}); err != nil {
			return res, fmt.Errorf("seed product %s: %w", p.name, err)
		}
		res.Products++
	}
	return res, nil
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "load sample catalogue and customer data",
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			store, closeStore, err := app.OpenStore(c.Context, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			res, err := Seed(c.Context, app.NewServices(store, nil, logger, nil))
			if err != nil {
				return err
			}
			if res == (SeedResult{}) {
				logger.Info("store already seeded")
				return nil
			}
			logger.Info("seed complete",
				slog.Int("categories", res.Categories),
				slog.Int("customers", res.Customers),
				slog.Int("products", res.Products))
			return nil
		},
	}
}
