package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"tributo/internal/config"
	"tributo/internal/extractor"
	"tributo/internal/f29"
	"tributo/internal/handler"
	"tributo/internal/logger"
	"tributo/internal/payroll"
	"tributo/internal/port"
	"tributo/internal/repository/postgres"
	"tributo/internal/router"
	"tributo/internal/service"
	s3storage "tributo/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log, nil)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Extraction pipeline
	textExtractor, err := extractor.New(&cfg.Extractor, log)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}
	pipeline := f29.NewPipeline(f29.NewLoader(cfg.Upload.MaxBytes), textExtractor, log)

	// Archive collaborators, only when enabled
	var (
		db      *sqlx.DB
		repo    port.DeclarationRepository
		storage port.ObjectStorage
	)
	if cfg.Archive.Enabled {
		db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		repo = postgres.NewDeclarationRepo(db)

		storage, err = s3storage.NewS3Client(&cfg.S3, log)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	tolerance, err := payroll.ParseTolerance(cfg.Payroll.Tolerance)
	if err != nil {
		return fmt.Errorf("invalid payroll tolerance: %w", err)
	}

	// Initialize services
	declarationSvc := service.NewDeclarationService(pipeline, repo, storage, &cfg.S3, log)
	payrollSvc := service.NewPayrollService(payroll.NewReconciler(tolerance), log)

	// Initialize handlers
	declarationH := handler.NewDeclarationHandler(declarationSvc)
	payrollH := handler.NewPayrollHandler(payrollSvc)
	// A nil *sqlx.DB must not reach the Pinger interface as a typed nil.
	var pinger handler.Pinger
	if db != nil {
		pinger = db
	}
	healthH := handler.NewHealthHandler(pinger)

	r := router.Setup(cfg, log, declarationH, payrollH, healthH)

	return serve(cfg, r, log)
}

func serve(cfg *config.Config, h http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).
			Bool("archive", cfg.Archive.Enabled).
			Str("strategy", cfg.Extractor.Strategy).
			Msg("server starting")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
