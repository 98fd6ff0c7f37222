package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rverma/filmi/pkg/evaluator"
)

func TestDefaultUsedWhenNoFilePresent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxIterations != evaluator.DefaultMaxIterations {
		t.Errorf("got %d, want default %d", cfg.MaxIterations, evaluator.DefaultMaxIterations)
	}
}

func TestProjectConfigOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".filmi.toml")
	if err := os.WriteFile(path, []byte("max_iterations = 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxIterations != 500 {
		t.Errorf("got %d, want 500", cfg.MaxIterations)
	}
}

func TestZeroOrNegativeMaxIterationsFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".filmi.toml")
	if err := os.WriteFile(path, []byte("max_iterations = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxIterations != evaluator.DefaultMaxIterations {
		t.Errorf("got %d, want default %d", cfg.MaxIterations, evaluator.DefaultMaxIterations)
	}
}
