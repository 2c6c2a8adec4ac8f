package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop24/shop24/internal/app"
	"github.com/shop24/shop24/internal/pricing"
	"github.com/shop24/shop24/internal/shop"
	"github.com/shop24/shop24/internal/shop/memstore"
	"github.com/shop24/shop24/jobs"
	_ "github.com/shop24/shop24/testing"
)

func TestCommandTree(t *testing.T) {
	cliApp := New()
	names := make([]string, 0, len(cliApp.Commands))
	for _, cmd := range cliApp.Commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"serve", "migrate", "seed", "jobs"}, names)
}

func TestMigrateDownRejectsNonPositiveSteps(t *testing.T) {
	cliApp := New()
	cliApp.Writer = &bytes.Buffer{}
	cliApp.ErrWriter = &bytes.Buffer{}

	err := cliApp.Run([]string{"shop24", "migrate", "down", "--steps", "0"})
	assert.ErrorContains(t, err, "steps must be positive")
}

func TestSeedLoadsSampleDataOnce(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := app.NewServices(store, nil, slog.New(slog.DiscardHandler), nil)

	res, err := Seed(ctx, svc)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Categories: 3, Customers: 3, Products: 6}, res)

	prods, err := store.ListProducts(ctx, shop.ListOptions{OrderBy: "id"})
	require.NoError(t, err)
	require.Len(t, prods, 6)
	for _, p := range prods {
		floor := pricing.MarginFloor(p.Cost)
		assert.True(t, p.Price.GreaterThanOrEqual(floor), "%s priced %s below floor %s", p.Name, p.Price, floor)
	}
	assert.Equal(t, "14.30", prods[1].Price.StringFixed(2))

	res, err = Seed(ctx, svc)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, res)
}

func TestJobsCLI(t *testing.T) {
	_, err := NewJobsCLI("")
	assert.Error(t, err)

	j := &JobsCLI{client: jobs.NewClient(asynq.RedisClientOpt{Addr: "127.0.0.1:0"})}
	t.Cleanup(func() { _ = j.client.Close() })
	_, err = j.Trigger(context.Background(), "mail:send")
	assert.ErrorContains(t, err, "unsupported job")

	_, err = j.InspectQueue()
	assert.ErrorContains(t, err, "inspector not configured")
}
