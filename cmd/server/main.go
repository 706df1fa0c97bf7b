package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"plotbook/internal/config"
	"plotbook/internal/email/noop"
	"plotbook/internal/email/ses"
	"plotbook/internal/export"
	"plotbook/internal/handler"
	"plotbook/internal/logging"
	"plotbook/internal/port"
	"plotbook/internal/repository/postgres"
	"plotbook/internal/router"
	"plotbook/internal/service"
	s3storage "plotbook/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	projectRepo := postgres.NewProjectRepo(db)

	// Initialize storage and email
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	emailSender, err := newEmailSender(&cfg.Email, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize services
	dealSvc := service.NewDealService(projectRepo, logger)
	projectSvc := service.NewProjectService(projectRepo, logger)
	plotSvc := service.NewPlotService(projectRepo, logger)
	reportSvc := service.NewReportService(projectRepo, dealSvc, s3Client, emailSender, service.ReportServiceConfig{
		Options: export.Options{
			CompanyName: cfg.Report.CompanyName,
			Currency:    cfg.Report.Currency,
		},
		Bucket:        cfg.S3.Bucket,
		KeyPrefix:     cfg.S3.KeyPrefix,
		PresignExpiry: cfg.S3.PresignExpiry,
	}, logger)

	// Setup router
	r := router.Setup(router.Handlers{
		Health:   handler.NewHealthHandler(db),
		Deal:     handler.NewDealHandler(dealSvc, reportSvc),
		Project:  handler.NewProjectHandler(projectSvc),
		Timeline: handler.NewTimelineHandler(plotSvc),
		Report:   handler.NewReportHandler(reportSvc),
	}, logger, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func newEmailSender(cfg *config.EmailConfig, logger *zap.Logger) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName)
	default:
		return noop.NewNoopSender(logger), nil
	}
}
