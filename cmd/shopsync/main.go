// Package main is the ShopSync CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/shopsync/shopsync/internal/aggregate"
	"github.com/shopsync/shopsync/internal/catalog"
	"github.com/shopsync/shopsync/internal/chat"
	"github.com/shopsync/shopsync/internal/config"
	"github.com/shopsync/shopsync/internal/embedding"
	"github.com/shopsync/shopsync/internal/llm"
	"github.com/shopsync/shopsync/internal/match"
	"github.com/shopsync/shopsync/internal/models"
	"github.com/shopsync/shopsync/internal/scrape"
	"github.com/shopsync/shopsync/internal/server"
	"github.com/shopsync/shopsync/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/shopsync/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. A .env file in the current directory is loaded before the
// config so SHOPSYNC_LLM_API_KEY can live there.
func loadConfig(path string) (*config.Config, string, error) {
	_ = godotenv.Load()
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "chat":
		runChat()
	case "version", "--version", "-v":
		fmt.Printf("shopsync version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (scrape details, match decisions, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Catalog.SeedPath != "" {
		go func() {
			if err := components.Store.WatchSeed(watchCtx, cfg.Catalog.SeedPath); err != nil {
				logger.Warn("seed watch stopped", zap.Error(err))
			}
		}()
	}

	srv := server.NewServer(
		components.Service,
		components.Comparer,
		components.Assistant,
		&cfg.Server,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	components.Service.Flush()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:5002", "server URL")
	sort := fs.String("sort", models.SortRelevance, "sort order: relevance, price_asc, price_desc, or rating")
	strategy := fs.String("strategy", models.StrategyEmbedding, "match strategy: embedding, ai, or lexical")
	mock := fs.Bool("mock", false, "serve stored catalog data without scraping")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		fmt.Fprintln(os.Stderr, "Usage: shopsync search [flags] <query>")
		os.Exit(1)
	}

	response, err := searchViaHTTP(*serverURL, query, *sort, *strategy, *mock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if *outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(response)
		return
	}
	printSearchResults(response)
}

func searchViaHTTP(serverURL, query, sort, strategy string, mock bool) (*models.SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", sort)
	params.Set("strategy", strategy)
	if mock {
		params.Set("mock", "true")
	}
	resp, err := http.Get(serverURL + "/api/v1/search?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func printSearchResults(response *models.SearchResponse) {
	if response.IsFallback {
		fmt.Println("(showing stored catalog data)")
	}
	fmt.Printf("%d products for %q (%dms)\n\n", response.Count, response.Query, response.ElapsedMS)
	for _, p := range response.Products {
		fmt.Printf("%3d. %s\n", p.ID, p.Title)
		fmt.Printf("     Amazon: %s  Flipkart: %s", priceOrDash(p.AmazonPrice), priceOrDash(p.FlipkartPrice))
		if p.Rating != nil {
			fmt.Printf("  %.1f*", *p.Rating)
		}
		if p.HasComparison {
			fmt.Printf("  [matched %.0f%%]", p.MatchConfidence*100)
		}
		fmt.Println()
	}
}

func priceOrDash(price *float64) string {
	if price == nil {
		return "-"
	}
	return fmt.Sprintf("Rs.%.0f", *price)
}

func runChat() {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:5002", "server URL")
	_ = fs.Parse(os.Args[2:])

	message := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if message == "" {
		fmt.Fprintln(os.Stderr, "Usage: shopsync chat [flags] <message>")
		os.Exit(1)
	}

	body, _ := json.Marshal(models.ChatRequest{Message: message})
	resp, err := http.Post(*serverURL+"/api/v1/chat", "application/json", strings.NewReader(string(body)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Chat failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	var chatResp models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
		os.Exit(1)
	}
	if chatResp.Error != "" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", chatResp.Error)
		os.Exit(1)
	}
	fmt.Println(chatResp.Reply)
	if chatResp.Action == models.ActionSearch && chatResp.SearchQuery != "" {
		fmt.Printf("\n(suggested search: %q)\n", chatResp.SearchQuery)
	}
}

// Components holds initialized services.
type Components struct {
	Store     *catalog.Store
	Embedder  embedding.Embedder
	Scraper   *scrape.Scraper
	Service   *aggregate.Service
	Comparer  *aggregate.Comparer
	Assistant *chat.Assistant
	Cron      *cron.Cron
}

func (c *Components) Close() {
	if c.Cron != nil {
		c.Cron.Stop()
	}
	if c.Scraper != nil {
		_ = c.Scraper.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := catalog.Open(cfg.Catalog.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if cfg.Catalog.SeedPath != "" {
		if err := store.LoadSeed(context.Background(), cfg.Catalog.SeedPath); err != nil {
			logger.Warn("seed load failed", zap.String("path", cfg.Catalog.SeedPath), zap.Error(err))
		}
	}
	cronRunner, err := store.StartPruning(cfg.Catalog.PruneSchedule, cfg.Catalog.Retention.Std())
	if err != nil {
		logger.Warn("snapshot pruning disabled", zap.String("schedule", cfg.Catalog.PruneSchedule), zap.Error(err))
	}

	var embedder embedding.Embedder
	onnxEmbedder, err := embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		logger.Warn("embedding model unavailable, using hash embedder", zap.Error(err))
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
	} else {
		embedder = onnxEmbedder
	}

	var llmClient llm.Client
	if cfg.LLM.APIKey != "" {
		llmClient = llm.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL)
	} else {
		logger.Info("SHOPSYNC_LLM_API_KEY not set, model-backed features degrade to fallbacks")
	}

	scorers := map[models.Strategy]match.Scorer{
		models.StrategyLexical:   &match.LexicalScorer{},
		models.StrategyEmbedding: match.NewEmbeddingScorer(embedder),
	}
	if llmClient != nil {
		scorers[models.StrategyAI] = match.NewAIScorer(llmClient, cfg.LLM.Timeout.Std(), logger)
	}

	var scraper *scrape.Scraper
	var scraperIface aggregate.Scraper
	var detailer aggregate.Detailer
	if !cfg.Scrape.Disabled {
		scraper, err = scrape.New(scrape.Options{
			BrowserBin:  cfg.Scrape.BrowserBin,
			Headless:    cfg.Scrape.HeadlessOrDefault(),
			MaxResults:  cfg.Scrape.MaxResults,
			PageTimeout: cfg.Scrape.PageTimeout.Std(),
		}, logger)
		if err != nil {
			logger.Warn("browser unavailable, serving catalog fallback only", zap.Error(err))
			scraper = nil
		}
	}
	if scraper != nil {
		scraperIface = scraper
		detailer = scraper
	}

	service := aggregate.New(scraperIface, scorers, store, aggregate.Options{
		ScrapeTimeout:  cfg.Match.ScrapeTimeout.Std(),
		FallbackLimit:  cfg.Match.FallbackLimit,
		PersistTimeout: cfg.Match.PersistTimeout.Std(),
	}, logger)

	return &Components{
		Store:     store,
		Embedder:  embedder,
		Scraper:   scraper,
		Service:   service,
		Comparer:  aggregate.NewComparer(detailer, logger),
		Assistant: chat.New(llmClient, cfg.LLM.Timeout.Std(), logger),
		Cron:      cronRunner,
	}, nil
}

func printUsage() {
	fmt.Println(`shopsync - Amazon.in and Flipkart price comparison

Usage:
  shopsync server [flags]            Start the HTTP API server
  shopsync search [flags] <query>    Search products via a running server
  shopsync chat [flags] <message>    Ask the shopping assistant
  shopsync version                   Show version
  shopsync help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/shopsync/config.yaml)
  --debug            Enable debug logging (scrape details, match decisions, etc.)

Search Flags:
  --server string    Server URL (default: http://localhost:5002)
  --sort string      Sort order: relevance, price_asc, price_desc, rating
  --strategy string  Match strategy: embedding, ai, lexical
  --mock             Serve stored catalog data without scraping
  --output string    Output format: text or json (default: text)

Chat Flags:
  --server string    Server URL (default: http://localhost:5002)

Examples:
  shopsync server
  shopsync search iphone 15
  shopsync search --sort price_asc --strategy lexical "wireless earbuds"
  shopsync search --output json "gaming laptop"
  shopsync chat "best phone under 30000"`)
}
