package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/horizon/internal/models"
)

func flatAssumption(id string, pct float64) models.ReturnAssumption {
	return models.ReturnAssumption{
		InvestmentID:    id,
		ConservativePct: pct,
		ExpectedPct:     pct,
		AggressivePct:   pct,
		Confidence:      models.ConfidenceMedium,
		Rationale:       "test",
	}
}

func TestProjectSeriesOneTime(t *testing.T) {
	inv := models.Investment{
		ID:                    "a",
		Name:                  "Lump Sum",
		Type:                  models.InvestmentFixedDeposit,
		ContributionFrequency: models.FrequencyOneTime,
		ContributionAmount:    500,
		InitialAmount:         1000,
	}

	values := projectSeries(inv, 10, 2)

	require.Len(t, values, 2)
	assert.Equal(t, 1650.00, values[0]) // (1000+500) * 1.10
	assert.Equal(t, 1815.00, values[1]) // 1650 * 1.10
}

func TestProjectSeriesMonthlyZeroRate(t *testing.T) {
	inv := models.Investment{
		ID:                    "b",
		Name:                  "SIP",
		Type:                  models.InvestmentMutualFund,
		ContributionFrequency: models.FrequencyMonthly,
		ContributionAmount:    100,
	}

	values := projectSeries(inv, 0, 3)

	assert.Equal(t, []float64{1200.00, 2400.00, 3600.00}, values)
}

func TestProjectSeriesYearly(t *testing.T) {
	inv := models.Investment{
		ID:                    "c",
		Name:                  "Annual Top-up",
		Type:                  models.InvestmentPPF,
		ContributionFrequency: models.FrequencyYearly,
		ContributionAmount:    1000,
	}

	values := projectSeries(inv, 10, 2)

	assert.Equal(t, 1000.00, values[0])
	assert.Equal(t, 2100.00, values[1]) // 1000*1.10 + 1000
}

func TestProjectSeriesCompoundsRecordedBalances(t *testing.T) {
	inv := models.Investment{
		ID:                    "d",
		Name:                  "Drift Check",
		Type:                  models.InvestmentStock,
		ContributionFrequency: models.FrequencyOneTime,
		InitialAmount:         100,
	}

	values := projectSeries(inv, 3.333, 2)

	// Year 2 compounds the recorded 103.33, not the full-precision 103.333.
	assert.Equal(t, 103.33, values[0])
	assert.Equal(t, 106.77, values[1])
}

func TestCalculatePortfolioAggregation(t *testing.T) {
	investments := []models.Investment{
		{
			ID: "a", Name: "Lump Sum", Type: models.InvestmentFixedDeposit,
			ContributionFrequency: models.FrequencyOneTime,
			ContributionAmount:    500, InitialAmount: 1000,
		},
		{
			ID: "b", Name: "SIP", Type: models.InvestmentMutualFund,
			ContributionFrequency: models.FrequencyMonthly,
			ContributionAmount:    100,
		},
	}
	assumptions := []models.ReturnAssumption{
		flatAssumption("a", 10),
		flatAssumption("b", 0),
	}

	result, err := Calculate(investments, assumptions, 2, "INR")
	require.NoError(t, err)

	require.Len(t, result.Investments, 2)
	require.Len(t, result.Portfolio, 2)

	assert.Equal(t, 1, result.Portfolio[0].Year)
	assert.Equal(t, 2850.00, result.Portfolio[0].Expected) // 1650 + 1200
	assert.Equal(t, 2850.00, result.Portfolio[0].Conservative)
	assert.Equal(t, 4215.00, result.Portfolio[1].Expected) // 1815 + 2400

	assert.Equal(t, "INR", result.Currency)
	assert.Equal(t, 2, result.Years)
	assert.False(t, result.GeneratedAt.IsZero())
	assert.Equal(t, assumptions, result.Assumptions)
}

func TestCalculateScenarioOrderingFlowsThrough(t *testing.T) {
	investments := []models.Investment{{
		ID: "a", Name: "Growth Fund", Type: models.InvestmentMutualFund,
		ContributionFrequency: models.FrequencyOneTime,
		InitialAmount:         1000,
	}}
	assumptions := []models.ReturnAssumption{{
		InvestmentID:    "a",
		ConservativePct: 4,
		ExpectedPct:     8,
		AggressivePct:   12,
	}}

	result, err := Calculate(investments, assumptions, 1, "USD")
	require.NoError(t, err)

	year1 := result.Investments[0].Years[0]
	assert.Equal(t, 1040.00, year1.Conservative)
	assert.Equal(t, 1080.00, year1.Expected)
	assert.Equal(t, 1120.00, year1.Aggressive)
}

func TestCalculateMissingAssumptionFails(t *testing.T) {
	investments := []models.Investment{
		{ID: "a", Name: "Fund A", Type: models.InvestmentMutualFund, ContributionFrequency: models.FrequencyMonthly, ContributionAmount: 100},
		{ID: "b", Name: "Fund B", Type: models.InvestmentMutualFund, ContributionFrequency: models.FrequencyMonthly, ContributionAmount: 100},
	}
	assumptions := []models.ReturnAssumption{flatAssumption("a", 10)}

	_, err := Calculate(investments, assumptions, 5, "INR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fund B")
	assert.Contains(t, err.Error(), "no return assumption")
}

func TestCalculateYearsBounds(t *testing.T) {
	investments := []models.Investment{{
		ID: "a", Name: "Fund A", Type: models.InvestmentMutualFund,
		ContributionFrequency: models.FrequencyMonthly, ContributionAmount: 100,
	}}
	assumptions := []models.ReturnAssumption{flatAssumption("a", 10)}

	_, err := Calculate(investments, assumptions, 0, "INR")
	assert.Error(t, err)

	_, err = Calculate(investments, assumptions, 51, "INR")
	assert.Error(t, err)

	result, err := Calculate(investments, assumptions, 50, "INR")
	require.NoError(t, err)
	assert.Len(t, result.Portfolio, 50)
}

func TestCalculateNegativeRate(t *testing.T) {
	investments := []models.Investment{{
		ID: "a", Name: "Falling Knife", Type: models.InvestmentCrypto,
		ContributionFrequency: models.FrequencyOneTime,
		InitialAmount:         1000,
	}}
	assumptions := []models.ReturnAssumption{flatAssumption("a", -50)}

	result, err := Calculate(investments, assumptions, 2, "USD")
	require.NoError(t, err)

	assert.Equal(t, 500.00, result.Investments[0].Years[0].Expected)
	assert.Equal(t, 250.00, result.Investments[0].Years[1].Expected)
}
