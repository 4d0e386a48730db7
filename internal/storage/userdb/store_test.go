package userdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/horizon/internal/common"
	"github.com/bobmcallan/horizon/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPortfolioRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	portfolio := &models.Portfolio{
		UserID:   "u-1",
		Settings: models.PortfolioSettings{Currency: "INR", Years: 15},
		Investments: []models.Investment{
			{
				ID:                    "inv-1",
				Type:                  models.InvestmentMutualFund,
				Name:                  "Index Fund",
				ContributionFrequency: models.FrequencyMonthly,
				ContributionAmount:    5000,
				SourceURL:             "https://fund.example/factsheet",
			},
		},
	}
	require.NoError(t, store.SavePortfolio(ctx, portfolio))
	assert.False(t, portfolio.ModifiedAt.IsZero())

	got, err := store.GetPortfolio(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "INR", got.Settings.Currency)
	assert.Equal(t, 15, got.Settings.Years)
	require.Len(t, got.Investments, 1)
	assert.Equal(t, "Index Fund", got.Investments[0].Name)
}

func TestGetPortfolioNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetPortfolio(context.Background(), "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSavePortfolioRequiresUserID(t *testing.T) {
	store := newTestStore(t)

	err := store.SavePortfolio(context.Background(), &models.Portfolio{})
	assert.Error(t, err)
}

func TestForecastRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	forecast := &models.ForecastResult{
		GeneratedAt: time.Now(),
		Currency:    "INR",
		Years:       2,
		Assumptions: []models.ReturnAssumption{{
			InvestmentID:    "inv-1",
			ConservativePct: 5,
			ExpectedPct:     10,
			AggressivePct:   15,
			Confidence:      models.ConfidenceHigh,
			Rationale:       "test",
		}},
		Portfolio: []models.YearlyProjection{
			{Year: 1, Conservative: 1050, Expected: 1100, Aggressive: 1150},
			{Year: 2, Conservative: 1102.5, Expected: 1210, Aggressive: 1322.5},
		},
	}
	require.NoError(t, store.SaveForecast(ctx, "u-1", forecast))

	got, err := store.GetForecast(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Years)
	require.Len(t, got.Portfolio, 2)
	assert.Equal(t, 1210.0, got.Portfolio[1].Expected)
	require.Len(t, got.Assumptions, 1)
	assert.Equal(t, models.ConfidenceHigh, got.Assumptions[0].Confidence)
}

func TestSaveForecastOverwritesLatest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &models.ForecastResult{GeneratedAt: time.Now().Add(-time.Hour), Years: 5}
	second := &models.ForecastResult{GeneratedAt: time.Now(), Years: 10}

	require.NoError(t, store.SaveForecast(ctx, "u-1", first))
	require.NoError(t, store.SaveForecast(ctx, "u-1", second))

	got, err := store.GetForecast(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Years)
}

func TestForecastIsolatedPerUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveForecast(ctx, "u-1", &models.ForecastResult{Years: 5}))

	_, err := store.GetForecast(ctx, "u-2")
	assert.Error(t, err)
}
