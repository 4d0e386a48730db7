// Package userdb implements UserDataStore using BadgerHold.
// It stores per-user portfolio documents and forecast snapshots.
package userdb

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/horizon/internal/common"
	"github.com/bobmcallan/horizon/internal/interfaces"
	"github.com/bobmcallan/horizon/internal/models"
)

// Store implements interfaces.UserDataStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// forecastRecord wraps a forecast snapshot with its owning user for storage.
type forecastRecord struct {
	UserID   string
	Forecast models.ForecastResult
}

// NewStore creates a new UserDataStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create userdb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open userdb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("UserDB opened")
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) GetPortfolio(_ context.Context, userID string) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := s.db.Get(userID, &p); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("portfolio not found for user '%s'", userID)
		}
		return nil, fmt.Errorf("failed to get portfolio for user '%s': %w", userID, err)
	}
	return &p, nil
}

func (s *Store) SavePortfolio(_ context.Context, portfolio *models.Portfolio) error {
	if portfolio.UserID == "" {
		return fmt.Errorf("portfolio user id is required")
	}
	portfolio.ModifiedAt = time.Now()
	if err := s.db.Upsert(portfolio.UserID, portfolio); err != nil {
		return fmt.Errorf("failed to save portfolio for user '%s': %w", portfolio.UserID, err)
	}
	s.logger.Debug().
		Str("user_id", portfolio.UserID).
		Int("investments", len(portfolio.Investments)).
		Msg("Portfolio saved")
	return nil
}

func (s *Store) GetForecast(_ context.Context, userID string) (*models.ForecastResult, error) {
	var rec forecastRecord
	if err := s.db.Get(userID, &rec); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("no forecast found for user '%s'", userID)
		}
		return nil, fmt.Errorf("failed to get forecast for user '%s': %w", userID, err)
	}
	return &rec.Forecast, nil
}

func (s *Store) SaveForecast(_ context.Context, userID string, forecast *models.ForecastResult) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	rec := forecastRecord{UserID: userID, Forecast: *forecast}
	if err := s.db.Upsert(userID, &rec); err != nil {
		return fmt.Errorf("failed to save forecast for user '%s': %w", userID, err)
	}
	s.logger.Debug().
		Str("user_id", userID).
		Int("years", forecast.Years).
		Msg("Forecast snapshot saved")
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure Store implements UserDataStore
var _ interfaces.UserDataStore = (*Store)(nil)
