package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/amaumene/gomediadex/internal/api"
	"github.com/amaumene/gomediadex/internal/config"
	"github.com/amaumene/gomediadex/internal/controllers"
	"github.com/amaumene/gomediadex/internal/probe"
	"github.com/amaumene/gomediadex/internal/scheduler"
	"github.com/amaumene/gomediadex/internal/services/rsc"
	"github.com/amaumene/gomediadex/internal/services/tmdb"
	"github.com/amaumene/gomediadex/internal/store"
	"github.com/amaumene/gomediadex/internal/telemetry"
	"github.com/amaumene/gomediadex/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "gomediadex",
		Short:   "Personal media catalog with remote metadata enrichment",
		Version: version,
	}
	rootCmd.AddCommand(newServeCmd(), newScanCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog server with periodic library scans",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan the library once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan()
		},
	}
}

// deps holds everything both commands need wired up
type deps struct {
	cfg        *config.Config
	store      *store.Store
	ingestCtrl *controllers.IngestController
	guessCtrl  *controllers.GuessController
	scanCtrl   *controllers.ScanController
	logger     *logrus.Logger
}

func setup() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting Gomediadex")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	st, err := store.Open(cfg.DatabaseFile, store.WithCastLimit(cfg.CastLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := st.EnsureSchema(); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}
	logger.Info("Database initialized")

	ignore, err := utils.LoadIgnoreList(cfg.IgnoreFile)
	if err != nil {
		logger.WithError(err).Warn("Failed to load ignore list, continuing without it")
		ignore = &utils.IgnoreList{}
	}

	tmdbClient := tmdb.NewClient(cfg, logger)
	logger.Info("Metadata client initialized")

	fetcher := rsc.NewFetcher(cfg.ImageDir, logger)

	ingestCtrl := controllers.NewIngestController(st, tmdbClient, fetcher, logger)
	guessCtrl := controllers.NewGuessController(tmdbClient, logger)
	scanCtrl := controllers.NewScanController(st, &probe.FFProbe{}, ignore, cfg.LibraryDir, logger)
	logger.Info("Controllers initialized")

	return &deps{
		cfg:        cfg,
		store:      st,
		ingestCtrl: ingestCtrl,
		guessCtrl:  guessCtrl,
		scanCtrl:   scanCtrl,
		logger:     logger,
	}, nil
}

func runServe() error {
	d, err := setup()
	if err != nil {
		return err
	}
	defer d.store.Close()

	shutdownTracing, err := telemetry.Setup(context.Background(), "gomediadex", version)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer shutdownTracing(context.Background())

	sched := scheduler.NewScheduler(d.scanCtrl, d.cfg.ScanSchedule, d.logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	server := api.NewServer(d.cfg, d.store, d.ingestCtrl, d.guessCtrl, d.scanCtrl, d.logger)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	d.logger.Info("Gomediadex is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		d.logger.WithField("signal", sig).Info("Received shutdown signal")
		if err := server.Shutdown(); err != nil {
			d.logger.WithError(err).Error("Error during server shutdown")
		}
	}

	d.logger.Info("Gomediadex stopped")
	return nil
}

func runScan() error {
	d, err := setup()
	if err != nil {
		return err
	}
	defer d.store.Close()

	added, err := d.scanCtrl.Scan(context.Background())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	fmt.Printf("Added %d videos\n", added)
	return nil
}
