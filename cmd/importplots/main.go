// Command importplots bulk-adds plots to a saved project from an XLSX plot register.
// Usage: go run ./cmd/importplots -project 12 -file plots.xlsx
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"plotbook/internal/config"
	"plotbook/internal/importer"
	"plotbook/internal/logging"
	"plotbook/internal/repository/postgres"
	"plotbook/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	projectID := flag.Int64("project", 0, "project ID to add plots to")
	path := flag.String("file", "", "XLSX plot register")
	dryRun := flag.Bool("dry-run", false, "parse the sheet without saving")
	flag.Parse()

	if *projectID <= 0 || *path == "" {
		flag.Usage()
		return errors.New("-project and -file are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("open plot register: %w", err)
	}
	defer func() { _ = f.Close() }()

	plots, rowErrs, err := importer.ReadPlots(f)
	if err != nil {
		return err
	}
	for _, re := range rowErrs {
		logger.Warn("skipping row", zap.Int("row", re.Row), zap.String("reason", re.Err))
	}
	logger.Info("plot register read", zap.Int("plots", len(plots)), zap.Int("skipped", len(rowErrs)))
	if *dryRun {
		return nil
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	projectSvc := service.NewProjectService(postgres.NewProjectRepo(db), logger)

	ctx := context.Background()
	var added int
	for i := range plots {
		p := &plots[i]
		if _, err := projectSvc.AddPlot(ctx, *projectID, &p.Input); err != nil {
			logger.Warn("plot not added",
				zap.Int("row", p.Row),
				zap.String("plot_number", p.Input.PlotNumber),
				zap.Error(err))
			continue
		}
		added++
	}

	logger.Info("import finished",
		zap.Int64("project_id", *projectID),
		zap.Int("added", added),
		zap.Int("failed", len(plots)-added))
	return nil
}
