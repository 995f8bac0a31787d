// Package config provides configuration loading and structs for the
// ShopSync server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "45s"
// or bare numbers meaning seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}
	if parsed, err := time.ParseDuration(s); err == nil {
		*d = Duration(parsed)
		return nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		*d = Duration(time.Duration(secs * float64(time.Second)))
		return nil
	}
	return fmt.Errorf("invalid duration %q", s)
}

// Std converts to the standard library type.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Scrape    ScrapeConfig    `yaml:"scrape"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Match     MatchConfig     `yaml:"match"`
	LLM       LLMConfig       `yaml:"llm"`
	Catalog   CatalogConfig   `yaml:"catalog"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// RateLimit is requests per second per client, enforced on the search
	// endpoint.
	RateLimit float64 `yaml:"rate_limit"`
}

// ScrapeConfig holds headless browser settings.
type ScrapeConfig struct {
	BrowserBin  string   `yaml:"browser_bin"`
	Headless    *bool    `yaml:"headless"`
	MaxResults  int      `yaml:"max_results"`
	PageTimeout Duration `yaml:"page_timeout"`
	// Disabled skips browser startup entirely; every search serves catalog
	// fallback data.
	Disabled bool `yaml:"disabled"`
}

// HeadlessOrDefault returns the headless flag; defaults to true when unset.
func (s *ScrapeConfig) HeadlessOrDefault() bool {
	if s.Headless != nil {
		return *s.Headless
	}
	return true
}

// EmbeddingConfig holds ONNX embedder settings.
type EmbeddingConfig struct {
	ModelPath       string `yaml:"model_path"`
	Dimensions      int    `yaml:"dimensions"`
	MaxTokens       int    `yaml:"max_tokens"`
	UseQuantization bool   `yaml:"use_quantization"`
	CacheSize       int    `yaml:"cache_size"`
}

// MatchConfig holds matching pipeline settings.
type MatchConfig struct {
	ScrapeTimeout  Duration `yaml:"scrape_timeout"`
	FallbackLimit  int      `yaml:"fallback_limit"`
	PersistTimeout Duration `yaml:"persist_timeout"`
}

// LLMConfig holds the external reasoning service settings. APIKey is read
// from the SHOPSYNC_LLM_API_KEY environment variable, never from the file.
type LLMConfig struct {
	BaseURL string   `yaml:"base_url"`
	Model   string   `yaml:"model"`
	Timeout Duration `yaml:"timeout"`
	APIKey  string   `yaml:"-"`
}

// CatalogConfig holds snapshot catalog settings.
type CatalogConfig struct {
	DataDir       string   `yaml:"data_dir"`
	SeedPath      string   `yaml:"seed_path"`
	PruneSchedule string   `yaml:"prune_schedule"`
	Retention     Duration `yaml:"retention"`
}

// Load reads and parses the config file at path, expands paths, applies
// defaults, and pulls secrets from the environment. Returns an error if the
// file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)
	cfg.Catalog.DataDir = expandPath(cfg.Catalog.DataDir, configDir)
	if cfg.Catalog.SeedPath != "" {
		cfg.Catalog.SeedPath = expandPath(cfg.Catalog.SeedPath, configDir)
	}
	cfg.LLM.APIKey = os.Getenv("SHOPSYNC_LLM_API_KEY")

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
