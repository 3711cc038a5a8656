package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LLM.BatchSize != 3 {
		t.Errorf("expected BatchSize=3, got %d", cfg.LLM.BatchSize)
	}
	if cfg.LLM.MaxTokens != 4000 {
		t.Errorf("expected MaxTokens=4000, got %d", cfg.LLM.MaxTokens)
	}
	if cfg.Analysis.ChunkTokens != 3000 {
		t.Errorf("expected ChunkTokens=3000, got %d", cfg.Analysis.ChunkTokens)
	}
	if len(cfg.Analysis.Layers) != 4 {
		t.Errorf("expected 4 default layers, got %d", len(cfg.Analysis.Layers))
	}
	if cfg.Analysis.Layers[0].Name != "models" {
		t.Errorf("expected first layer 'models', got %s", cfg.Analysis.Layers[0].Name)
	}
	if exts := cfg.Analysis.Languages["python"]; len(exts) != 1 || exts[0] != ".py" {
		t.Errorf("unexpected python extensions: %v", exts)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "archlens.yaml")

	content := `
llm:
  model: gpt-4
  batch_size: 5
analysis:
  chunk_tokens: 1000
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LLM.Model != "gpt-4" {
		t.Errorf("expected model gpt-4, got %s", cfg.LLM.Model)
	}
	if cfg.LLM.BatchSize != 5 {
		t.Errorf("expected BatchSize=5, got %d", cfg.LLM.BatchSize)
	}
	if cfg.Analysis.ChunkTokens != 1000 {
		t.Errorf("expected ChunkTokens=1000, got %d", cfg.Analysis.ChunkTokens)
	}
	// Untouched sections keep defaults.
	if cfg.LLM.SystemPrompt == "" {
		t.Error("expected default system prompt to survive partial config")
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "archlens.yaml")

	content := `
cache:
  dir: /tmp/archlens-cache
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Cache.Dir != "/tmp/archlens-cache" {
		t.Errorf("expected cache dir override, got %s", cfg.Cache.Dir)
	}
}

func TestRunDBPath(t *testing.T) {
	path := RunDBPath("/home/user/project")
	expected := filepath.Join("/home/user/project", ".archlens", "runs.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}
