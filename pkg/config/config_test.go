package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Checker.MaxDistance != 2 {
		t.Errorf("default max_distance = %d, want 2", cfg.Checker.MaxDistance)
	}
	if cfg.Checker.MaxSuggestions != 3 {
		t.Errorf("default max_suggestions = %d, want 3", cfg.Checker.MaxSuggestions)
	}
	if cfg.Server.MaxLimit != 64 {
		t.Errorf("default server max_limit = %d, want 64", cfg.Server.MaxLimit)
	}
	if cfg.Server.MaxDistanceLimit != 4 {
		t.Errorf("default server max_distance_limit = %d, want 4", cfg.Server.MaxDistanceLimit)
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if cfg.Checker.MaxDistance != 2 {
		t.Errorf("fresh config max_distance = %d, want default 2", cfg.Checker.MaxDistance)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("InitConfig did not create %s: %v", path, err)
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Checker.MaxDistance = 1
	cfg.Checker.MaxSuggestions = 8
	cfg.Dict.Path = "custom.txt"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Checker.MaxDistance != 1 || loaded.Checker.MaxSuggestions != 8 {
		t.Errorf("loaded checker config = %+v", loaded.Checker)
	}
	if loaded.Dict.Path != "custom.txt" {
		t.Errorf("loaded dict path = %s, want custom.txt", loaded.Dict.Path)
	}
}

func TestPartialParseRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	// valid [checker] section, the rest missing entirely
	content := "[checker]\nmax_distance = 1\nmax_suggestions = 5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Checker.MaxDistance != 1 || cfg.Checker.MaxSuggestions != 5 {
		t.Errorf("checker section not applied: %+v", cfg.Checker)
	}
	// untouched sections keep defaults
	if cfg.Server.MaxLimit != 64 {
		t.Errorf("server defaults lost: %+v", cfg.Server)
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	dist := 1
	budget := 5000
	if err := cfg.Update(path, &dist, nil, &budget); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Checker.MaxDistance != 1 {
		t.Errorf("updated max_distance = %d, want 1", loaded.Checker.MaxDistance)
	}
	if loaded.Checker.VisitBudget != 5000 {
		t.Errorf("updated visit_budget = %d, want 5000", loaded.Checker.VisitBudget)
	}
	if loaded.Checker.MaxSuggestions != 3 {
		t.Errorf("max_suggestions changed unexpectedly: %d", loaded.Checker.MaxSuggestions)
	}
}
