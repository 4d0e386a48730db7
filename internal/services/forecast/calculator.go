package forecast

import (
	"fmt"
	"time"

	"github.com/bobmcallan/horizon/internal/models"
)

// Calculate deterministically compounds every investment under each scenario
// rate and aggregates a portfolio-level yearly series. It performs no I/O and
// never mutates its inputs.
//
// Every investment must have exactly one assumption matched by id; a missing
// match is an orchestration bug and fails the whole calculation rather than
// zero-filling a row.
func Calculate(investments []models.Investment, assumptions []models.ReturnAssumption, years int, currency string) (*models.ForecastResult, error) {
	if years < models.MinForecastYears || years > models.MaxForecastYears {
		return nil, fmt.Errorf("years must be between %d and %d, got %d", models.MinForecastYears, models.MaxForecastYears, years)
	}

	byID := make(map[string]*models.ReturnAssumption, len(assumptions))
	for i := range assumptions {
		byID[assumptions[i].InvestmentID] = &assumptions[i]
	}

	perInvestment := make([]models.InvestmentProjection, 0, len(investments))
	portfolio := make([]models.YearlyProjection, years)
	for y := range portfolio {
		portfolio[y].Year = y + 1
	}

	for _, inv := range investments {
		assumption, ok := byID[inv.ID]
		if !ok {
			return nil, fmt.Errorf("no return assumption for investment '%s' (%s)", inv.Name, inv.ID)
		}

		conservative := projectSeries(inv, assumption.ConservativePct, years)
		expected := projectSeries(inv, assumption.ExpectedPct, years)
		aggressive := projectSeries(inv, assumption.AggressivePct, years)

		series := make([]models.YearlyProjection, years)
		for y := 0; y < years; y++ {
			series[y] = models.YearlyProjection{
				Year:         y + 1,
				Conservative: conservative[y],
				Expected:     expected[y],
				Aggressive:   aggressive[y],
			}
			portfolio[y].Conservative = models.Round2(portfolio[y].Conservative + conservative[y])
			portfolio[y].Expected = models.Round2(portfolio[y].Expected + expected[y])
			portfolio[y].Aggressive = models.Round2(portfolio[y].Aggressive + aggressive[y])
		}

		perInvestment = append(perInvestment, models.InvestmentProjection{
			InvestmentID: inv.ID,
			Name:         inv.Name,
			Years:        series,
		})
	}

	return &models.ForecastResult{
		GeneratedAt: time.Now(),
		Currency:    currency,
		Years:       years,
		Assumptions: assumptions,
		Investments: perInvestment,
		Portfolio:   portfolio,
	}, nil
}

// projectSeries compounds one investment under one scenario rate, returning
// the recorded balance for years 1..horizon. The recurrence is strictly
// sequential: each year's value depends on the prior year's recorded
// (2-decimal) balance, not a full-precision accumulator.
func projectSeries(inv models.Investment, ratePct float64, years int) []float64 {
	balance := inv.InitialAmount
	annualContribution := 0.0

	switch inv.ContributionFrequency {
	case models.FrequencyMonthly:
		annualContribution = inv.ContributionAmount * 12
	case models.FrequencyYearly:
		annualContribution = inv.ContributionAmount
	case models.FrequencyOneTime:
		// A one-time contribution is part of the starting balance, not a
		// recurring cash flow.
		balance += inv.ContributionAmount
	}

	values := make([]float64, years)
	for y := 0; y < years; y++ {
		balance = models.Round2(balance*(1+ratePct/100) + annualContribution)
		values[y] = balance
	}
	return values
}
