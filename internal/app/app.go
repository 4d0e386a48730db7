// Package app wires configuration, storage, clients, and services together.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/horizon/internal/clients/gemini"
	"github.com/bobmcallan/horizon/internal/common"
	"github.com/bobmcallan/horizon/internal/interfaces"
	"github.com/bobmcallan/horizon/internal/services/forecast"
	"github.com/bobmcallan/horizon/internal/services/research"
	"github.com/bobmcallan/horizon/internal/storage/internaldb"
	"github.com/bobmcallan/horizon/internal/storage/userdb"
)

// App holds all initialized services, clients, and storage.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	InternalStore   interfaces.InternalStore
	UserStore       interfaces.UserDataStore
	ResearchClient  interfaces.ResearchClient
	ResearchService interfaces.ResearchService
	ForecastService interfaces.ForecastService
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

// NewApp initializes all services, clients, and storage.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Config resolution: provided path, HORIZON_CONFIG, binary dir, dev fallback.
	if configPath == "" {
		configPath = os.Getenv("HORIZON_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "horizon.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/horizon.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage paths to the binary directory.
	if !filepath.IsAbs(config.Storage.Internal.Path) {
		config.Storage.Internal.Path = filepath.Join(binDir, config.Storage.Internal.Path)
	}
	if !filepath.IsAbs(config.Storage.User.Path) {
		config.Storage.User.Path = filepath.Join(binDir, config.Storage.User.Path)
	}
	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(binDir, config.Logging.FilePath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	internalStore, err := internaldb.NewStore(logger, config.Storage.Internal.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize internal store: %w", err)
	}

	userStore, err := userdb.NewStore(logger, config.Storage.User.Path)
	if err != nil {
		internalStore.Close()
		return nil, fmt.Errorf("failed to initialize user store: %w", err)
	}

	ctx := context.Background()
	geminiKey, err := common.ResolveAPIKey(func(key string) (string, error) {
		return internalStore.GetSystemKV(ctx, key)
	}, "gemini_api_key", config.Clients.Gemini.APIKey)
	if err != nil {
		logger.Warn().Msg("Gemini API key not configured - forecast research will be unavailable")
	}

	var researchClient interfaces.ResearchClient
	if geminiKey != "" {
		client, err := gemini.NewClient(ctx, geminiKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			researchClient = client
		}
	}

	researchService := research.NewService(researchClient, logger)
	forecastService := forecast.NewService(researchService, userStore, logger)

	a := &App{
		Config:          config,
		Logger:          logger,
		InternalStore:   internalStore,
		UserStore:       userStore,
		ResearchClient:  researchClient,
		ResearchService: researchService,
		ForecastService: forecastService,
		StartupTime:     startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.UserStore != nil {
		a.UserStore.Close()
		a.UserStore = nil
	}
	if a.InternalStore != nil {
		a.InternalStore.Close()
		a.InternalStore = nil
	}
}
