// Package aggregate runs the search pipeline: scrape both marketplaces
// concurrently, pair their listings, sort, and persist the result. When both
// scrapes come back empty the stored catalog serves fallback data.
package aggregate

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shopsync/shopsync/internal/match"
	"github.com/shopsync/shopsync/internal/models"
)

// Scraper produces raw listings per marketplace. Scrape failures surface as
// empty slices, not errors.
type Scraper interface {
	Amazon(ctx context.Context, query string) []models.Listing
	Flipkart(ctx context.Context, query string) []models.Listing
}

// Fallback serves stored products when live scraping yields nothing, and
// receives successful results for later reuse.
type Fallback interface {
	Lookup(ctx context.Context, query string, limit int) ([]models.UnifiedProduct, error)
	SaveSnapshot(ctx context.Context, query string, products []models.UnifiedProduct) error
}

// Options bounds the pipeline.
type Options struct {
	// ScrapeTimeout caps each marketplace scrape.
	ScrapeTimeout time.Duration
	// FallbackLimit caps how many stored products a fallback response holds.
	FallbackLimit int
	// PersistTimeout caps the async snapshot write.
	PersistTimeout time.Duration
}

// Service owns one scraper and one scorer per strategy.
type Service struct {
	scraper  Scraper
	scorers  map[models.Strategy]match.Scorer
	fallback Fallback
	opts     Options
	logger   *zap.Logger

	// persistWG lets tests wait for the async snapshot write.
	persistWG sync.WaitGroup
}

// New assembles the pipeline. scorers must contain an entry for
// StrategyLexical; it is the floor every other strategy degrades to. A nil
// scraper pins the service to catalog fallback, used when no browser is
// available.
func New(scraper Scraper, scorers map[models.Strategy]match.Scorer, fallback Fallback, opts Options, logger *zap.Logger) *Service {
	if opts.ScrapeTimeout <= 0 {
		opts.ScrapeTimeout = 45 * time.Second
	}
	if opts.FallbackLimit <= 0 {
		opts.FallbackLimit = 20
	}
	if opts.PersistTimeout <= 0 {
		opts.PersistTimeout = 10 * time.Second
	}
	return &Service{
		scraper:  scraper,
		scorers:  scorers,
		fallback: fallback,
		opts:     opts,
		logger:   logger,
	}
}

// Search executes one aggregation request end to end.
func (s *Service) Search(ctx context.Context, q models.SearchQuery) models.SearchResponse {
	start := time.Now()

	if q.Mock || s.scraper == nil {
		return s.fallbackResponse(ctx, q, start)
	}

	amazon, flipkart := s.scrapeBoth(ctx, q.Query)
	if len(amazon) == 0 && len(flipkart) == 0 {
		s.logger.Warn("both scrapes empty, serving fallback", zap.String("query", q.Query))
		return s.fallbackResponse(ctx, q, start)
	}

	scorer, ok := s.scorers[q.Strategy]
	if !ok {
		scorer = s.scorers[models.StrategyLexical]
	}
	products := match.NewMatcher(scorer, s.logger).Match(ctx, amazon, flipkart)
	sortProducts(products, q.Sort)

	s.persistAsync(q.Query, products)

	return models.SearchResponse{
		Success:   true,
		Query:     q.Query,
		Count:     len(products),
		Products:  products,
		ElapsedMS: time.Since(start).Milliseconds(),
	}
}

// scrapeBoth runs both marketplace scrapes concurrently, each under its own
// timeout.
func (s *Service) scrapeBoth(ctx context.Context, query string) (amazon, flipkart []models.Listing) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		sctx, cancel := context.WithTimeout(ctx, s.opts.ScrapeTimeout)
		defer cancel()
		amazon = s.scraper.Amazon(sctx, query)
	}()
	go func() {
		defer wg.Done()
		sctx, cancel := context.WithTimeout(ctx, s.opts.ScrapeTimeout)
		defer cancel()
		flipkart = s.scraper.Flipkart(sctx, query)
	}()
	wg.Wait()
	s.logger.Info("scrapes finished",
		zap.String("query", query),
		zap.Int("amazon", len(amazon)),
		zap.Int("flipkart", len(flipkart)))
	return amazon, flipkart
}

func (s *Service) fallbackResponse(ctx context.Context, q models.SearchQuery, start time.Time) models.SearchResponse {
	products, err := s.fallback.Lookup(ctx, q.Query, s.opts.FallbackLimit)
	if err != nil {
		s.logger.Error("fallback lookup failed", zap.String("query", q.Query), zap.Error(err))
		products = nil
	}
	sortProducts(products, q.Sort)
	if products == nil {
		products = []models.UnifiedProduct{}
	}
	return models.SearchResponse{
		Success:    true,
		Query:      q.Query,
		Count:      len(products),
		IsFallback: true,
		Products:   products,
		ElapsedMS:  time.Since(start).Milliseconds(),
	}
}

// persistAsync snapshots a live result without blocking the response.
func (s *Service) persistAsync(query string, products []models.UnifiedProduct) {
	if len(products) == 0 {
		return
	}
	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.PersistTimeout)
		defer cancel()
		if err := s.fallback.SaveSnapshot(ctx, query, products); err != nil {
			s.logger.Warn("snapshot persist failed", zap.String("query", query), zap.Error(err))
		}
	}()
}

// Flush waits for pending snapshot writes. Used on shutdown and in tests.
func (s *Service) Flush() {
	s.persistWG.Wait()
}
