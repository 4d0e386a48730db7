// Package forecast coordinates forecast runs: request validation, concurrent
// assumption research, deterministic projection, and snapshot persistence.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bobmcallan/horizon/internal/common"
	"github.com/bobmcallan/horizon/internal/interfaces"
	"github.com/bobmcallan/horizon/internal/models"
)

// ErrInvalidRequest marks a forecast request rejected before any external
// call. Callers use errors.Is to separate caller mistakes from provider or
// storage failures.
var ErrInvalidRequest = errors.New("invalid forecast request")

// Service implements ForecastService
type Service struct {
	research interfaces.ResearchService
	storage  interfaces.UserDataStore
	logger   *common.Logger
}

// NewService creates a new forecast service
func NewService(research interfaces.ResearchService, storage interfaces.UserDataStore, logger *common.Logger) *Service {
	return &Service{
		research: research,
		storage:  storage,
		logger:   logger,
	}
}

// RunForecast executes one full forecast run for a portfolio. The request is
// validated before any external call; assumptions are researched concurrently,
// one request per investment; a single research failure fails the whole run.
func (s *Service) RunForecast(ctx context.Context, userID string, req models.ForecastRequest) (*models.ForecastResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	start := time.Now()
	s.logger.Info().
		Str("user_id", userID).
		Int("investments", len(req.Investments)).
		Int("years", req.Years).
		Msg("Starting forecast run")

	assumptions, err := s.gatherAssumptions(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := Calculate(req.Investments, assumptions, req.Years, req.Currency)
	if err != nil {
		return nil, fmt.Errorf("forecast calculation failed: %w", err)
	}

	if err := s.storage.SaveForecast(ctx, userID, result); err != nil {
		return nil, fmt.Errorf("failed to save forecast: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("investments", len(result.Investments)).
		Dur("elapsed", time.Since(start)).
		Msg("Forecast run complete")

	return result, nil
}

// gatherAssumptions fans out one research request per investment and collects
// the results in request order. Requests share no mutable state, so no
// locking beyond the WaitGroup is needed; the calculator re-associates
// assumptions by id regardless of order.
func (s *Service) gatherAssumptions(ctx context.Context, req models.ForecastRequest) ([]models.ReturnAssumption, error) {
	assumptions := make([]models.ReturnAssumption, len(req.Investments))
	errs := make([]error, len(req.Investments))

	var wg sync.WaitGroup
	for i, inv := range req.Investments {
		wg.Add(1)
		go func(i int, inv models.Investment) {
			defer wg.Done()
			assumption, err := s.research.GetAssumption(ctx, inv, req.Currency)
			if err != nil {
				errs[i] = err
				return
			}
			assumptions[i] = *assumption
		}(i, inv)
	}
	wg.Wait()

	// All-or-nothing: a forecast with some investments freshly researched and
	// others silently defaulted would be misleading.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return assumptions, nil
}

// LatestForecast returns the most recently persisted forecast snapshot.
func (s *Service) LatestForecast(ctx context.Context, userID string) (*models.ForecastResult, error) {
	return s.storage.GetForecast(ctx, userID)
}

// Ensure Service implements ForecastService
var _ interfaces.ForecastService = (*Service)(nil)
