package fixture

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// endpointDirs are created on startup so the tree always has the platform's
// API shape, even before anyone populates it.
var endpointDirs = []string{
	"api/health",
	"api/market/symbols",
	"api/market/data",
	"api/strategy",
	"api/account/balance",
}

// Provision ensures the baseline directory layout and default fixtures
// exist under the store root. Existing files are never overwritten, so a
// user-populated tree passes through untouched.
func (s *Store) Provision(appName, appVersion string) error {
	for _, dir := range endpointDirs {
		if err := os.MkdirAll(s.abs(dir), 0755); err != nil {
			return fmt.Errorf("failed to create fixture dir %s: %w", dir, err)
		}
	}

	for rel, payload := range defaultFixtures(appName, appVersion) {
		created, err := s.seed(rel, payload)
		if err != nil {
			return err
		}
		if created {
			slog.Debug("Seeded fixture", slog.String("path", rel))
		}
	}

	return nil
}

// defaultFixtures are illustrative stand-ins for the platform's responses.
// The root descriptor schema (name, version, status, message, documentation)
// is the one fixed shape; the endpoint payloads are placeholders.
func defaultFixtures(appName, appVersion string) map[string]any {
	return map[string]any{
		"index.json": map[string]any{
			"name":          appName,
			"version":       appVersion,
			"status":        "simulation",
			"message":       "This is a simulation of the ARB Platform API. Responses are static fixtures or synthetic market data.",
			"documentation": "/api-docs",
		},
		"api/health/index.json": map[string]any{
			"status": "ok",
		},
		"api/market/symbols/index.json": map[string]any{
			"data": []string{"BTC-USD", "ETH-USD", "SOL-USD", "AAPL"},
		},
		"api/strategy/index.json": map[string]any{
			"data": []string{
				"Statistical Arbitrage",
				"Event Arbitrage",
				"Information Arbitrage",
				"Latency Arbitrage",
				"Day Trading",
			},
		},
		"api/account/balance/index.json": map[string]any{
			"data": map[string]float64{
				"USD": 100000,
				"BTC": 1.5,
				"ETH": 20,
			},
		},
	}
}

// seed writes a pretty-printed JSON fixture if no file exists at rel.
func (s *Store) seed(rel string, payload any) (bool, error) {
	path := s.abs(rel)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to encode fixture %s: %w", rel, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create fixture dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write fixture %s: %w", rel, err)
	}
	return true, nil
}
