package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Port != 8484 {
		t.Errorf("default port should be 8484, got %d", cfg.Server.Port)
	}
	if cfg.Search.TopKCandidates != 50 {
		t.Errorf("default top-k should be 50, got %d", cfg.Search.TopKCandidates)
	}
	if cfg.Search.DenseWeight != 0.5 || cfg.Search.SparseWeight != 0.5 {
		t.Errorf("default weights should be 0.5/0.5, got %f/%f", cfg.Search.DenseWeight, cfg.Search.SparseWeight)
	}
	if cfg.Search.TimeoutMs != 220 {
		t.Errorf("default timeout should be 220ms, got %d", cfg.Search.TimeoutMs)
	}
	if cfg.Embedding.Provider != "mock" {
		t.Errorf("default provider should be mock, got %q", cfg.Embedding.Provider)
	}
}

func TestApplyDefaults_PreservesExplicit(t *testing.T) {
	cfg := &Config{}
	cfg.Search.DenseWeight = 0.7
	cfg.Search.SparseWeight = 0.3
	ApplyDefaults(cfg)
	if cfg.Search.DenseWeight != 0.7 || cfg.Search.SparseWeight != 0.3 {
		t.Errorf("explicit weights overwritten: %f/%f", cfg.Search.DenseWeight, cfg.Search.SparseWeight)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: 127.0.0.1
  port: 9999
storage:
  database_path: ./data/chunks.db
search:
  top_k_candidates: 25
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port should be 9999, got %d", cfg.Server.Port)
	}
	if cfg.Search.TopKCandidates != 25 {
		t.Errorf("top-k should be 25, got %d", cfg.Search.TopKCandidates)
	}
	want := filepath.Join(dir, "data/chunks.db")
	if cfg.Storage.DatabasePath != want {
		t.Errorf("database path should expand to %q, got %q", want, cfg.Storage.DatabasePath)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Server.Port = 1234
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 1234 {
		t.Errorf("port should survive round trip, got %d", loaded.Server.Port)
	}
}
