package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/peeves/backend/internal/infrastructure/config"
	"github.com/peeves/backend/internal/infrastructure/logger"
	"github.com/peeves/backend/internal/infrastructure/scraper"
)

func main() {
	var (
		listingURL string
		output     string
		maxPages   int
	)

	flag.StringVar(&listingURL, "url", "", "Listing URL (default: from configuration)")
	flag.StringVar(&output, "output", "", "Snapshot output file (default: from configuration)")
	flag.IntVar(&maxPages, "max-pages", 0, "Maximum listing pages to walk (default: from configuration)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	scraperCfg := cfg.Scraper
	if listingURL != "" {
		scraperCfg.ListingURL = listingURL
	}
	if output != "" {
		scraperCfg.OutputFile = output
	}
	if maxPages > 0 {
		scraperCfg.MaxPages = maxPages
	}

	s, err := scraper.NewCatalogScraper(&scraperCfg, log)
	if err != nil {
		log.Fatal("Failed to create scraper", zap.Error(err))
	}
	defer func() {
		_ = s.Close()
	}()

	log.Info("Scrape started",
		zap.String("url", scraperCfg.ListingURL),
		zap.Int("max_pages", scraperCfg.MaxPages),
	)

	entries, err := s.Scrape(context.Background())
	if err != nil {
		log.Fatal("Scrape failed", zap.Error(err))
	}

	if err := s.WriteSnapshot(entries); err != nil {
		log.Fatal("Failed to write snapshot", zap.Error(err))
	}

	log.Info("Scrape finished", zap.Int("entries", len(entries)))
}
