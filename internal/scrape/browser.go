// Package scrape collects product listings from Amazon and Flipkart search
// pages with a headless browser. Scrape failures degrade to empty result
// sets; callers decide whether to serve fallback data.
package scrape

import (
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"go.uber.org/zap"
)

// Options controls browser behavior and per-page limits.
type Options struct {
	// BrowserBin overrides browser auto-detection, e.g. the system Chromium
	// inside a container image.
	BrowserBin string
	Headless   bool
	// MaxResults caps how many result containers are parsed per page.
	MaxResults int
	// PageTimeout bounds a single search page visit end to end.
	PageTimeout time.Duration
}

// Scraper owns one shared browser process. Pages are cheap; the browser is
// not, so it is launched once and reused across requests.
type Scraper struct {
	browser *rod.Browser
	opts    Options
	logger  *zap.Logger
}

// New launches the browser and returns a ready scraper.
func New(opts Options, logger *zap.Logger) (*Scraper, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 50
	}
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = 45 * time.Second
	}

	l := launcher.New().
		Headless(opts.Headless).
		NoSandbox(true).
		Leakless(false)
	if opts.BrowserBin == "" {
		if _, err := os.Stat("/usr/bin/chromium-browser"); err == nil {
			opts.BrowserBin = "/usr/bin/chromium-browser"
		}
	}
	if opts.BrowserBin != "" {
		l = l.Bin(opts.BrowserBin)
		logger.Info("using configured browser binary", zap.String("bin", opts.BrowserBin))
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, err
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, err
	}
	logger.Info("browser launched", zap.String("control_url", controlURL))
	return &Scraper{browser: browser, opts: opts, logger: logger}, nil
}

// Close shuts the browser process down.
func (s *Scraper) Close() error {
	if s.browser != nil {
		return s.browser.Close()
	}
	return nil
}

// stealthJS masks the usual headless automation fingerprints before any site
// script runs.
const stealthJS = `
Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
Object.defineProperty(navigator, 'plugins', {get: () => [1, 2, 3, 4, 5]});
Object.defineProperty(navigator, 'languages', {get: () => ['en-US', 'en']});
Object.defineProperty(navigator, 'platform', {get: () => 'Win32'});
Object.defineProperty(navigator, 'userAgent', {
	get: () => 'Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36'
});
window.chrome = {runtime: {}};
`

// preparePage opens a fresh page with stealth overrides installed and
// navigates it. The caller must close the returned page.
func (s *Scraper) preparePage(url string) *rod.Page {
	page := s.browser.MustPage()
	page.MustEvalOnNewDocument(stealthJS)
	page.MustSetViewport(1920, 1080, 1.0, false)
	page.MustNavigate(url)
	page.MustWaitLoad()
	return page
}

// scrollThrough nudges lazy-loaded result grids into rendering.
func scrollThrough(page *rod.Page) {
	for i := 0; i < 2; i++ {
		page.MustEval(`() => window.scrollTo(0, document.body.scrollHeight)`)
		time.Sleep(500 * time.Millisecond)
	}
	page.MustEval(`() => window.scrollTo(0, 0)`)
	time.Sleep(500 * time.Millisecond)
}
