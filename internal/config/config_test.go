package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Memory.Capacity != 7 {
		t.Errorf("capacity = %d, want 7", cfg.Memory.Capacity)
	}
	if cfg.Memory.ArchiveEvictions {
		t.Error("archive_evictions should default to off")
	}
	if cfg.ListenAddr() != "127.0.0.1:37711" {
		t.Errorf("addr = %s, want 127.0.0.1:37711", cfg.ListenAddr())
	}
	if cfg.LLM.Provider != "claude-cli" {
		t.Errorf("provider = %s, want claude-cli", cfg.LLM.Provider)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	if cfg.Memory.Capacity != 7 {
		t.Errorf("capacity = %d, want default 7", cfg.Memory.Capacity)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 4000
memory:
  capacity: 12
  archive_evictions: true
llm:
  provider: ollama
  ollama_model: llama3.2
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.Server.Bind != "127.0.0.1" {
		t.Errorf("bind = %s, want default 127.0.0.1", cfg.Server.Bind)
	}
	if cfg.Memory.Capacity != 12 || !cfg.Memory.ArchiveEvictions {
		t.Errorf("memory = %+v", cfg.Memory)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("provider = %s, want ollama", cfg.LLM.Provider)
	}
}

func TestLoadRejectsBadCapacity(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("memory:\n  capacity: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for capacity 0")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != "anthropic" {
		t.Errorf("provider = %s, want anthropic", cfg.LLM.Provider)
	}
	if cfg.LLM.AnthropicKey != "sk-test" {
		t.Errorf("key = %s, want sk-test", cfg.LLM.AnthropicKey)
	}
}
