package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pcnportal/internal/blobstore"
	"pcnportal/internal/config"
	"pcnportal/internal/infrastructure"
	"pcnportal/internal/ingestion"
	"pcnportal/internal/storage"
)

func main() {
	fileName := flag.String("file", "", "bulk-ingest a single named workbook from the container")
	all := flag.Bool("all", false, "process every workbook currently in the container")
	flag.Parse()

	if *fileName == "" && !*all {
		fmt.Fprintln(os.Stderr, "usage: ingest -file <blob name> | ingest -all")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	db, err := storage.Connect(connectCtx, cfg.Database.DSN, cfg.Database.MaxConns, logger)
	cancel()
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.MigrateOnStart {
		if err := db.EnsureSchema(ctx); err != nil {
			logger.Error("Failed to ensure schema", "error", err)
			os.Exit(1)
		}
	}

	blobs, err := blobstore.NewAzureStore(ctx, cfg.Storage.ConnectionString, cfg.Storage.Container, infrastructure.WithComponent(logger, "blobstore"))
	if err != nil {
		logger.Error("Failed to initialize blob store", "error", err)
		os.Exit(1)
	}

	svc := ingestion.NewService(blobs, storage.NewPenaltyRepo(db), func(err error) bool {
		return errors.Is(err, storage.ErrNotFound)
	}, infrastructure.WithComponent(logger, "ingestion"))

	if *fileName != "" {
		result, err := svc.BulkIngest(ctx, *fileName)
		if err != nil {
			logger.Error("Ingest failed", "file", *fileName, "error", err)
			os.Exit(1)
		}
		printResult(*fileName, result.Processed, result.Errors)
		return
	}

	report, err := svc.ProcessNewFiles(ctx)
	if err != nil {
		logger.Error("Container sweep failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Processed %d workbook(s)\n", len(report.FilesProcessed))
	for _, fr := range report.Results {
		printResult(fr.File, fr.Processed, fr.Errors)
	}
}

func printResult(file string, processed int, rowErrors []string) {
	fmt.Printf("%s: %d row(s) ingested, %d error(s)\n", file, processed, len(rowErrors))
	for _, e := range rowErrors {
		fmt.Printf("  %s\n", e)
	}
}
