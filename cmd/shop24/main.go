package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shop24/shop24/cmd/shop24/commands"
	"github.com/shop24/shop24/internal/app"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.New().RunContext(ctx, os.Args); err != nil {
		slog.Default().Error("shop24", slog.Any("error", err))
		os.Exit(1)
	}
}
