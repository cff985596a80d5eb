package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all salient configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Memory      MemoryConfig      `yaml:"memory"`
	Journal     JournalConfig     `yaml:"journal"`
	LLM         LLMConfig         `yaml:"llm"`
	Screenshots ScreenshotsConfig `yaml:"screenshots"`
	Usage       UsageConfig       `yaml:"usage"`
}

type ServerConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type MemoryConfig struct {
	// Capacity bounds the working-memory store. Must be >= 1.
	Capacity int `yaml:"capacity"`

	// ArchiveEvictions writes evicted decision/insight entries to the
	// journal. Off by default: eviction is normally notification-only.
	ArchiveEvictions bool `yaml:"archive_evictions"`
}

type JournalConfig struct {
	Path string `yaml:"path"` // resolved at runtime via journal.DefaultDBPath()
}

type LLMConfig struct {
	Provider     string `yaml:"provider"` // "claude-cli", "anthropic", "ollama"
	Model        string `yaml:"model"`
	OllamaURL    string `yaml:"ollama_url"`
	OllamaModel  string `yaml:"ollama_model"`
	AnthropicKey string `yaml:"anthropic_key"`
}

type ScreenshotsConfig struct {
	Dir string `yaml:"dir"` // defaults to ~/.salient/screenshots
}

type UsageConfig struct {
	// PatternThreshold is how many uses of one tool in a session count
	// as a pattern worth remembering.
	PatternThreshold int `yaml:"pattern_threshold"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37711,
		},
		Memory: MemoryConfig{
			Capacity: 7,
		},
		LLM: LLMConfig{
			Provider: "claude-cli",
			Model:    "haiku",
		},
		Usage: UsageConfig{
			PatternThreshold: 5,
		},
	}
}

// DefaultPath returns the default config location: ~/.salient/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".salient", "config.yaml"), nil
}

// Load reads the YAML config at path over the defaults. A missing file is
// not an error — defaults apply. Env vars override afterwards.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env overrides
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.Memory.Capacity < 1 {
		return cfg, fmt.Errorf("memory.capacity must be >= 1, got %d", cfg.Memory.Capacity)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		cfg.LLM.Provider = "anthropic"
		cfg.LLM.AnthropicKey = key
	}
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
