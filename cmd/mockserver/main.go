package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/zanemountcastle/vibe-trading/internal/app"
	"github.com/zanemountcastle/vibe-trading/internal/server"
	"github.com/zanemountcastle/vibe-trading/internal/sim"
	"github.com/zanemountcastle/vibe-trading/internal/stream"
)

func main() {
	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize("configs/config.yaml"); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	cfg := bootstrap.Config
	port := resolvePort(os.Args[1:], cfg.Server.Port)

	// 2. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Wire router: fixtures + synthetic quotes + stream feed
	gen := sim.NewGenerator()
	feed := stream.NewFeed(gen, cfg.TickInterval(), cfg.PingInterval())
	router := server.NewRouter(bootstrap.Fixtures, gen, feed)
	srv := server.New(port, router)

	slog.InfoContext(ctx, "✨ ARB mock API operational. Press Ctrl+C to exit.", slog.Int("port", port))

	if err := srv.Run(ctx); err != nil {
		slog.Error("Server failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("👋 Shutting down gracefully...")
}

// resolvePort applies the optional positional port argument. A non-integer
// value keeps the configured default and tells the operator.
func resolvePort(args []string, fallback int) int {
	if len(args) == 0 {
		return fallback
	}
	port, err := strconv.Atoi(args[0])
	if err != nil {
		slog.Warn("Invalid port, using default",
			slog.String("arg", args[0]),
			slog.Int("default", fallback))
		return fallback
	}
	return port
}
