package app

import (
	"log/slog"

	"github.com/zanemountcastle/vibe-trading/internal/fixture"
	"github.com/zanemountcastle/vibe-trading/internal/infra"
)

// Bootstrap orchestrates the mock server startup sequence
type Bootstrap struct {
	Config   *infra.Config
	Fixtures *fixture.Store
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads configuration, installs the logger, and provisions the
// fixture tree before the listener starts.
func (b *Bootstrap) Initialize(configPath string) error {
	slog.Info("🚀 Bootstrapping ARB mock server...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Provision fixture tree (directories + default descriptors)
	store := fixture.NewStore(cfg.Server.FixtureRoot)
	if err := store.Provision(cfg.App.Name, cfg.App.Version); err != nil {
		return err
	}
	b.Fixtures = store
	slog.Info("✅ Fixture tree provisioned", slog.String("root", cfg.Server.FixtureRoot))

	return nil
}
