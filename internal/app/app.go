// Package app wires configuration, clients, storage and services into the
// shared core used by cmd/sift-server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/sift/internal/clients/fundata"
	"github.com/bobmcallan/sift/internal/common"
	"github.com/bobmcallan/sift/internal/interfaces"
	"github.com/bobmcallan/sift/internal/services/report"
	"github.com/bobmcallan/sift/internal/services/screener"
	"github.com/bobmcallan/sift/internal/storage/runhist"
	"github.com/bobmcallan/sift/internal/storage/snapshotfs"
)

// App holds all initialized services, clients and storage.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Client          interfaces.FundamentalsClient
	SnapshotCache   interfaces.SnapshotCache
	RunHistory      interfaces.RunHistoryStore
	ScreenerService *screener.Service
	ReportService   *report.Service
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, the upstream client
// and the services. configPath may be empty, in which case SIFT_CONFIG and
// the binary directory are checked before falling back to config/sift.toml.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("SIFT_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "sift.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/sift.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage paths to the binary directory
	if config.Storage.SnapshotPath != "" && !filepath.IsAbs(config.Storage.SnapshotPath) {
		config.Storage.SnapshotPath = filepath.Join(binDir, config.Storage.SnapshotPath)
	}
	if config.Storage.RunsPath != "" && !filepath.IsAbs(config.Storage.RunsPath) {
		config.Storage.RunsPath = filepath.Join(binDir, config.Storage.RunsPath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	cache, err := snapshotfs.NewStore(logger, config.Storage.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot cache: %w", err)
	}

	history, err := runhist.NewStore(logger, config.Storage.RunsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize run history: %w", err)
	}

	if config.Clients.Fundata.APIKey == "" {
		logger.Warn().Msg("Fundata API key not configured - live fetches will fail")
	}

	client := fundata.NewClient(config.Clients.Fundata.APIKey,
		fundata.WithBaseURL(config.Clients.Fundata.BaseURL),
		fundata.WithLogger(logger),
		fundata.WithRateLimit(config.Clients.Fundata.RateLimit),
		fundata.WithTimeout(config.Clients.Fundata.GetTimeout()),
	)

	screenerService := screener.NewService(client, cache, history, config, logger)
	reportService := report.NewService(logger)

	a := &App{
		Config:          config,
		Logger:          logger,
		Client:          client,
		SnapshotCache:   cache,
		RunHistory:      history,
		ScreenerService: screenerService,
		ReportService:   reportService,
		StartupTime:     startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.RunHistory != nil {
		if err := a.RunHistory.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close run history store")
		}
		a.RunHistory = nil
	}
}
