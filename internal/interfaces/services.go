package interfaces

import (
	"context"

	"github.com/bobmcallan/horizon/internal/models"
)

// ResearchService obtains validated return assumptions from the research provider.
type ResearchService interface {
	// GetAssumption researches one investment and returns its sanitized
	// return assumption. Failures carry the investment name/id.
	GetAssumption(ctx context.Context, inv models.Investment, currency string) (*models.ReturnAssumption, error)
}

// ForecastService coordinates a full forecast run for a portfolio.
type ForecastService interface {
	// RunForecast validates the request, gathers assumptions for every
	// investment, computes the projection, persists the snapshot for the
	// user, and returns it. All-or-nothing: any single investment's
	// research failure fails the run.
	RunForecast(ctx context.Context, userID string, req models.ForecastRequest) (*models.ForecastResult, error)

	// LatestForecast returns the most recently persisted forecast snapshot
	// for the user.
	LatestForecast(ctx context.Context, userID string) (*models.ForecastResult, error)
}
