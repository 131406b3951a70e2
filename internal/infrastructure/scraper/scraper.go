// Package scraper collects sneaker listings from a retail site with headless
// Chrome and writes them as a JSON snapshot for later import.
package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	infraconfig "github.com/peeves/backend/internal/infrastructure/config"
)

const (
	defaultTimeout  = 90 * time.Second
	defaultMaxPages = 14
	scrollSteps     = 6
	scrollPause     = 500 * time.Millisecond
	imageEdgeSize   = "500"
)

// Entry is one scraped product card
type Entry struct {
	Name          string `json:"name"`
	Alt           string `json:"alt"`
	ImageURL      string `json:"image_url"`
	FinalPrice    string `json:"final_price"`
	OriginalPrice string `json:"original_price"`
}

// CatalogScraper drives a headless browser over a paginated product listing
type CatalogScraper struct {
	cfg         *infraconfig.ScraperConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewCatalogScraper creates a scraper and its Chrome allocator
func NewCatalogScraper(cfg *infraconfig.ScraperConfig, logger *zap.Logger) (*CatalogScraper, error) {
	if cfg == nil {
		return nil, errors.New("scraper configuration is required")
	}
	if cfg.ListingURL == "" {
		return nil, errors.New("scraper listing URL is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("no-sandbox", true),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &CatalogScraper{
		cfg:         cfg,
		logger:      logger,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}, nil
}

// Close releases the Chrome allocator
func (s *CatalogScraper) Close() error {
	if s.allocCancel != nil {
		s.allocCancel()
	}
	return nil
}

// Scrape walks the listing pages and returns the normalized entries.
// It stops early when a page yields no product cards.
func (s *CatalogScraper) Scrape(ctx context.Context) ([]Entry, error) {
	maxPages := s.cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	var entries []Entry
	for page := 1; page <= maxPages; page++ {
		pageEntries, err := s.scrapePage(ctx, pageURL(s.cfg.ListingURL, page))
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		if len(pageEntries) == 0 {
			s.logger.Info("listing exhausted", zap.Int("page", page))
			break
		}

		entries = append(entries, pageEntries...)
		s.logger.Info("page scraped",
			zap.Int("page", page),
			zap.Int("cards", len(pageEntries)),
		)
	}

	return normalizeEntries(entries), nil
}

// WriteSnapshot serializes the entries to the configured output file
func (s *CatalogScraper) WriteSnapshot(entries []Entry) error {
	path := s.cfg.OutputFile
	if path == "" {
		return errors.New("scraper output file is required")
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	s.logger.Info("snapshot written",
		zap.String("path", path),
		zap.Int("entries", len(entries)),
	)
	return nil
}

// extractCardsJS pulls the card fields out of the rendered listing
const extractCardsJS = `
Array.from(document.querySelectorAll('.ProductCard')).map(function(card) {
	var text = function(sel) {
		var el = card.querySelector(sel);
		return el ? el.textContent : '';
	};
	var img = card.querySelector('img');
	return {
		name: text('.ProductName-primary'),
		alt: text('.ProductName-alt'),
		final_price: text('.ProductPrice-final'),
		original_price: text('.ProductPrice-original'),
		image_url: img ? (img.currentSrc || img.src) : ''
	};
})`

func (s *CatalogScraper) scrapePage(ctx context.Context, pageURL string) ([]Entry, error) {
	timeout := s.cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tabCtx, tabCancel := chromedp.NewContext(s.allocCtx)
	defer tabCancel()

	// Propagate the deadline to the tab
	go func() {
		<-ctx.Done()
		tabCancel()
	}()

	s.blockImages(tabCtx)

	tasks := chromedp.Tasks{
		fetch.Enable(),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
	}
	// Listings lazy-load cards while scrolling
	for i := 0; i < scrollSteps; i++ {
		tasks = append(tasks,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(scrollPause),
		)
	}

	var entries []Entry
	tasks = append(tasks, chromedp.Evaluate(extractCardsJS, &entries))

	if err := chromedp.Run(tabCtx, tasks); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("scrape timed out after %v: %w", timeout, err)
		}
		return nil, err
	}

	return entries, nil
}

// blockImages fails every image request so pages load without media
func (s *CatalogScraper) blockImages(tabCtx context.Context) {
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		paused, ok := ev.(*fetch.EventRequestPaused)
		if !ok {
			return
		}
		go func() {
			c := chromedp.FromContext(tabCtx)
			execCtx := cdp.WithExecutor(tabCtx, c.Target)
			if paused.ResourceType == network.ResourceTypeImage {
				_ = fetch.FailRequest(paused.RequestID, network.ErrorReasonBlockedByClient).Do(execCtx)
				return
			}
			_ = fetch.ContinueRequest(paused.RequestID).Do(execCtx)
		}()
	})
}

// pageURL appends the pagination parameter for pages beyond the first
func pageURL(listingURL string, page int) string {
	if page <= 1 {
		return listingURL
	}
	return fmt.Sprintf("%s&currentPage=%d", listingURL, page)
}

// normalizeEntries trims fields, rewrites image sizes and drops cards that
// carry neither a name nor a price
func normalizeEntries(entries []Entry) []Entry {
	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		e.Alt = strings.TrimSpace(e.Alt)
		e.FinalPrice = strings.TrimSpace(e.FinalPrice)
		e.OriginalPrice = strings.TrimSpace(e.OriginalPrice)
		e.ImageURL = rewriteImageURL(strings.TrimSpace(e.ImageURL))

		if e.Name == "" && e.FinalPrice == "" {
			continue
		}
		result = append(result, e)
	}
	return result
}

// rewriteImageURL forces the CDN resize parameters to a uniform edge size
func rewriteImageURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	q := u.Query()
	changed := false
	for _, param := range []string{"wid", "hei"} {
		if q.Has(param) {
			q.Set(param, imageEdgeSize)
			changed = true
		}
	}
	if !changed {
		return raw
	}
	u.RawQuery = q.Encode()
	return u.String()
}
