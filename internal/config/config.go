// Package config loads shopmind configuration from YAML with environment
// overrides. A missing config file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION TYPES
// =============================================================================

// Config is the full shopmind configuration.
type Config struct {
	Engine    EngineConfig    `yaml:"engine"`
	LLM       LLMConfig       `yaml:"llm"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Profile   ProfileConfig   `yaml:"profile"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// EngineConfig selects the response strategy.
type EngineConfig struct {
	// Mode is "deterministic" or "llm". The deterministic engine is always
	// constructed; "llm" layers the generative override on top of it.
	Mode string `yaml:"mode"`
}

// LLMConfig configures the optional generative hooks.
type LLMConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int32  `yaml:"max_tokens"`
}

// KnowledgeConfig selects the knowledge source.
type KnowledgeConfig struct {
	// Source is "builtin" or "file".
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
	// Watch reloads the knowledge file on change.
	Watch bool `yaml:"watch"`
}

// CatalogConfig selects the product search backend.
type CatalogConfig struct {
	// Backend is "graphql" or "sqlite".
	Backend string `yaml:"backend"`
	BaseURL string `yaml:"base_url"`
	DBPath  string `yaml:"db_path"`
}

// ProfileConfig selects the style profile store.
type ProfileConfig struct {
	// Backend is "memory", "sqlite", or "http".
	Backend string `yaml:"backend"`
	DBPath  string `yaml:"db_path"`
	BaseURL string `yaml:"base_url"`
}

// LoggingConfig configures the categorized file logger.
type LoggingConfig struct {
	Dir        string   `yaml:"dir"`
	DebugMode  bool     `yaml:"debug_mode"`
	Categories []string `yaml:"categories"`
	Level      string   `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Mode: "deterministic",
		},
		LLM: LLMConfig{
			Model:     "gemini-2.0-flash",
			MaxTokens: 500,
		},
		Knowledge: KnowledgeConfig{
			Source: "builtin",
		},
		Catalog: CatalogConfig{
			Backend: "graphql",
			BaseURL: "http://localhost:4000",
			DBPath:  ".shopmind/catalog.db",
		},
		Profile: ProfileConfig{
			Backend: "sqlite",
			DBPath:  ".shopmind/profiles.db",
			BaseURL: "http://localhost:4000",
		},
		Logging: LoggingConfig{
			Dir:   ".shopmind/logs",
			Level: "info",
		},
	}
}

// Load reads the config at path, applies defaults for missing fields, and
// then applies SHOPMIND_* environment overrides. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SHOPMIND_MODE"); v != "" {
		cfg.Engine.Mode = v
	}
	if v := os.Getenv("SHOPMIND_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("SHOPMIND_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("SHOPMIND_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil && n > 0 {
			cfg.LLM.MaxTokens = int32(n)
		}
	}
	if v := os.Getenv("SHOPMIND_KNOWLEDGE_PATH"); v != "" {
		cfg.Knowledge.Source = "file"
		cfg.Knowledge.Path = v
	}
	if v := os.Getenv("SHOPMIND_CATALOG_BACKEND"); v != "" {
		cfg.Catalog.Backend = v
	}
	if v := os.Getenv("SHOPMIND_BACKEND_URL"); v != "" {
		cfg.Catalog.BaseURL = v
		cfg.Profile.BaseURL = v
	}
	if v := os.Getenv("SHOPMIND_PROFILE_BACKEND"); v != "" {
		cfg.Profile.Backend = v
	}
	if v := os.Getenv("SHOPMIND_DEBUG"); v != "" {
		cfg.Logging.DebugMode = v == "1" || strings.EqualFold(v, "true")
	}
}

func (c *Config) validate() error {
	switch c.Engine.Mode {
	case "deterministic", "llm":
	default:
		return fmt.Errorf("config: unknown engine mode %q", c.Engine.Mode)
	}
	switch c.Knowledge.Source {
	case "builtin", "file":
	default:
		return fmt.Errorf("config: unknown knowledge source %q", c.Knowledge.Source)
	}
	if c.Knowledge.Source == "file" && c.Knowledge.Path == "" {
		return fmt.Errorf("config: knowledge source \"file\" requires a path")
	}
	switch c.Catalog.Backend {
	case "graphql", "sqlite":
	default:
		return fmt.Errorf("config: unknown catalog backend %q", c.Catalog.Backend)
	}
	switch c.Profile.Backend {
	case "memory", "sqlite", "http":
	default:
		return fmt.Errorf("config: unknown profile backend %q", c.Profile.Backend)
	}
	return nil
}
