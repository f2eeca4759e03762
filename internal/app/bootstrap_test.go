package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBootstrap_Initialize(t *testing.T) {
	t.Chdir(t.TempDir())

	b := NewBootstrap()
	if err := b.Initialize("configs/config.yaml"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if b.Config == nil {
		t.Fatal("Config should be loaded")
	}
	if b.Config.Server.Port != 8000 {
		t.Errorf("Expected default port 8000, got %d", b.Config.Server.Port)
	}

	if b.Fixtures == nil {
		t.Fatal("Fixture store should be ready")
	}
	if !b.Fixtures.Exists("index.json") {
		t.Error("Root descriptor should be provisioned")
	}
	if info, err := os.Stat(filepath.Join("api", "market", "data")); err != nil || !info.IsDir() {
		t.Error("api/market/data should be provisioned")
	}
}

func TestBootstrap_InitializeWithConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.MkdirAll("configs", 0755); err != nil {
		t.Fatal(err)
	}
	cfg := "server:\n  port: 8123\n  fixture_root: \"fixtures\"\n"
	if err := os.WriteFile(filepath.Join("configs", "config.yaml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	b := NewBootstrap()
	if err := b.Initialize("configs/config.yaml"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if b.Config.Server.Port != 8123 {
		t.Errorf("Expected port 8123, got %d", b.Config.Server.Port)
	}
	if b.Fixtures.Root() != "fixtures" {
		t.Errorf("Expected fixture root 'fixtures', got %q", b.Fixtures.Root())
	}
	if !b.Fixtures.Exists("index.json") {
		t.Error("Descriptor should be provisioned under the configured root")
	}
}
