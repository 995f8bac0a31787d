package config

import (
	"time"

	"github.com/shopsync/shopsync/internal/llm"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5002
	}
	if cfg.Server.AllowedOrigins == nil {
		cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 1
	}
	if cfg.Scrape.MaxResults == 0 {
		cfg.Scrape.MaxResults = 50
	}
	if cfg.Scrape.PageTimeout == 0 {
		cfg.Scrape.PageTimeout = Duration(45 * time.Second)
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/shopsync/models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Match.ScrapeTimeout == 0 {
		cfg.Match.ScrapeTimeout = Duration(45 * time.Second)
	}
	if cfg.Match.FallbackLimit == 0 {
		cfg.Match.FallbackLimit = 20
	}
	if cfg.Match.PersistTimeout == 0 {
		cfg.Match.PersistTimeout = Duration(10 * time.Second)
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = llm.DefaultBaseURL
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = llm.DefaultModel
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = Duration(30 * time.Second)
	}
	if cfg.Catalog.DataDir == "" {
		cfg.Catalog.DataDir = "/usr/local/var/shopsync/data"
	}
	if cfg.Catalog.PruneSchedule == "" {
		cfg.Catalog.PruneSchedule = "@daily"
	}
	if cfg.Catalog.Retention == 0 {
		cfg.Catalog.Retention = Duration(7 * 24 * time.Hour)
	}
}
