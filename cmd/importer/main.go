package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	catalogapp "github.com/peeves/backend/internal/application/catalog"
	"github.com/peeves/backend/internal/application/importer"
	"github.com/peeves/backend/internal/infrastructure/config"
	"github.com/peeves/backend/internal/infrastructure/logger"
	"github.com/peeves/backend/internal/infrastructure/persistence"
	"github.com/peeves/backend/internal/infrastructure/storage"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

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

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	productRepo := persistence.NewGormProductRepository(db.DB)
	ctx := context.Background()

	switch command {
	case "csv":
		runCSVImport(ctx, args[1:], productRepo, log)
	case "migrate-sizes":
		runSizesMigration(ctx, args[1:], productRepo, log)
	case "raise-stock":
		runStockRaise(ctx, args[1:], productRepo, log)
	case "upload-images":
		runImageUpload(ctx, args[1:], cfg, productRepo, log)
	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func runCSVImport(ctx context.Context, args []string, productRepo *persistence.GormProductRepository, log *zap.Logger) {
	fs := flag.NewFlagSet("csv", flag.ExitOnError)
	file := fs.String("file", "", "Path to the semicolon-separated catalog feed")
	_ = fs.Parse(args)

	if *file == "" {
		log.Fatal("Feed file required. Usage: importer csv --file <path>")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal("Failed to open feed file", zap.Error(err))
	}
	defer f.Close()

	service := importer.NewCatalogImportService(productRepo, log)
	result, err := service.Import(ctx, f)
	if err != nil {
		log.Fatal("Import failed", zap.Error(err))
	}

	log.Info("Import finished",
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported", result.ImportedRows),
		zap.Int("error_rows", result.ErrorRows),
	)
	for _, rowErr := range result.Errors {
		log.Warn("Row rejected",
			zap.Int("line", rowErr.Line),
			zap.String("column", rowErr.Column),
			zap.String("reason", rowErr.Message),
		)
	}
	if result.IsTruncated {
		log.Warn("Error list truncated", zap.Int("total_errors", result.TotalErrors))
	}
}

func runSizesMigration(ctx context.Context, args []string, productRepo *persistence.GormProductRepository, log *zap.Logger) {
	fs := flag.NewFlagSet("migrate-sizes", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "Compute and log changes without saving")
	_ = fs.Parse(args)

	service := importer.NewSizesMigrationService(productRepo, log)
	result, err := service.Migrate(ctx, *dryRun)
	if err != nil {
		log.Fatal("Sizes migration failed", zap.Error(err))
	}

	log.Info("Sizes migration finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("migrated", result.Migrated),
		zap.Int("skipped", result.Skipped),
		zap.Bool("dry_run", *dryRun),
	)
}

func runStockRaise(ctx context.Context, args []string, productRepo *persistence.GormProductRepository, log *zap.Logger) {
	fs := flag.NewFlagSet("raise-stock", flag.ExitOnError)
	min := fs.Int("min", 1, "Minimum quantity added per size")
	max := fs.Int("max", 10, "Maximum quantity added per size")
	filter := fs.String("filter", "", "Only raise products whose name contains this substring")
	dryRun := fs.Bool("dry-run", false, "Compute and log changes without saving")
	_ = fs.Parse(args)

	service := importer.NewStockRaiseService(productRepo, log)
	result, err := service.Raise(ctx, importer.StockRaiseOptions{
		Min:    *min,
		Max:    *max,
		Filter: *filter,
		DryRun: *dryRun,
	})
	if err != nil {
		log.Fatal("Stock raise failed", zap.Error(err))
	}

	log.Info("Stock raise finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("raised", result.Raised),
		zap.Int("added", result.Added),
		zap.Bool("dry_run", *dryRun),
	)
}

func runImageUpload(ctx context.Context, args []string, cfg *config.Config, productRepo *persistence.GormProductRepository, log *zap.Logger) {
	fs := flag.NewFlagSet("upload-images", flag.ExitOnError)
	dir := fs.String("dir", "", "Directory of <productID>.png files to upload")
	_ = fs.Parse(args)

	if *dir == "" {
		log.Fatal("Image directory required. Usage: importer upload-images --dir <path>")
	}

	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiry(cfg.Storage.PresignExpiry),
	)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	if err := objectStorage.EnsureBucket(ctx); err != nil {
		log.Fatal("Failed to ensure storage bucket", zap.Error(err))
	}

	var storageService catalogapp.ObjectStorageService = objectStorage
	service := importer.NewImageUploadService(productRepo, storageService, log)
	result, err := service.UploadDirectory(ctx, *dir)
	if err != nil {
		log.Fatal("Image upload failed", zap.Error(err))
	}

	log.Info("Image upload finished",
		zap.Int("files", result.Files),
		zap.Int("uploaded", result.Uploaded),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
}

func printUsage() {
	fmt.Println(`Storefront Catalog Importer

Usage:
  importer <command> [flags]

Commands:
  csv            Import products from a semicolon-separated feed
                   --file <path>
  migrate-sizes  Spread legacy single-bucket stock over the size chart
                   --dry-run
  raise-stock    Add random stock to every size of matching products
                   --min <n> --max <n> --filter <substring> --dry-run
  upload-images  Upload <productID>.png files to object storage
                   --dir <path>

Examples:
  importer csv --file feed.csv
  importer migrate-sizes --dry-run
  importer raise-stock --min 5 --max 20 --filter jordan
  importer upload-images --dir ./images`)
}
