package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "debug: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Debug {
		t.Error("debug flag lost")
	}
	if cfg.Server.Port != 5002 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if cfg.Scrape.MaxResults != 50 {
		t.Errorf("default max_results = %d", cfg.Scrape.MaxResults)
	}
	if !cfg.Scrape.HeadlessOrDefault() {
		t.Error("headless must default to true")
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("default dimensions = %d", cfg.Embedding.Dimensions)
	}
	if cfg.Catalog.Retention.Std() != 7*24*time.Hour {
		t.Errorf("default retention = %v", cfg.Catalog.Retention.Std())
	}
	if cfg.LLM.Model == "" || cfg.LLM.BaseURL == "" {
		t.Error("llm defaults missing")
	}
}

func TestLoadParsesValues(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 0.0.0.0
  port: 8090
  rate_limit: 2.5
scrape:
  headless: false
  page_timeout: 20s
  disabled: true
match:
  scrape_timeout: 1m
catalog:
  retention: 48h
  prune_schedule: "@hourly"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8090 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Scrape.HeadlessOrDefault() {
		t.Error("explicit headless: false ignored")
	}
	if cfg.Scrape.PageTimeout.Std() != 20*time.Second {
		t.Errorf("page_timeout = %v", cfg.Scrape.PageTimeout.Std())
	}
	if !cfg.Scrape.Disabled {
		t.Error("disabled flag lost")
	}
	if cfg.Match.ScrapeTimeout.Std() != time.Minute {
		t.Errorf("scrape_timeout = %v", cfg.Match.ScrapeTimeout.Std())
	}
	if cfg.Catalog.Retention.Std() != 48*time.Hour {
		t.Errorf("retention = %v", cfg.Catalog.Retention.Std())
	}
	if cfg.Catalog.PruneSchedule != "@hourly" {
		t.Errorf("prune_schedule = %q", cfg.Catalog.PruneSchedule)
	}
}

func TestLoadReadsAPIKeyFromEnv(t *testing.T) {
	t.Setenv("SHOPSYNC_LLM_API_KEY", "nvapi-test")
	path := writeConfig(t, "debug: false\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "nvapi-test" {
		t.Errorf("api key = %q", cfg.LLM.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing config file must error")
	}
}

func TestDurationNumericSeconds(t *testing.T) {
	path := writeConfig(t, "scrape:\n  page_timeout: 30\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scrape.PageTimeout.Std() != 30*time.Second {
		t.Errorf("numeric page_timeout = %v", cfg.Scrape.PageTimeout.Std())
	}
}
