package models

import (
	"fmt"
	"strings"
	"time"
)

// Forecast horizon bounds, in whole years.
const (
	MinForecastYears = 1
	MaxForecastYears = 50
)

// ForecastRequest is the inbound contract for one forecast run.
type ForecastRequest struct {
	Years       int          `json:"years"`
	Currency    string       `json:"currency"`
	Investments []Investment `json:"investments"`
}

// Validate enforces the orchestrator's input contract before any external
// call is made. Violations are rejected, not coerced.
func (r *ForecastRequest) Validate() error {
	if r.Years < MinForecastYears || r.Years > MaxForecastYears {
		return fmt.Errorf("years must be between %d and %d, got %d", MinForecastYears, MaxForecastYears, r.Years)
	}
	if strings.TrimSpace(r.Currency) == "" {
		return fmt.Errorf("currency is required")
	}
	if len(r.Investments) == 0 {
		return fmt.Errorf("at least one investment is required")
	}

	seen := make(map[string]bool, len(r.Investments))
	funded := false
	for i := range r.Investments {
		inv := &r.Investments[i]
		if err := inv.Validate(); err != nil {
			return err
		}
		if seen[inv.ID] {
			return fmt.Errorf("duplicate investment id '%s'", inv.ID)
		}
		seen[inv.ID] = true
		if inv.HasFunds() {
			funded = true
		}
	}
	if !funded {
		return fmt.Errorf("every investment has zero initial and contribution amounts — nothing to project")
	}
	return nil
}

// YearlyProjection is one (year, conservative, expected, aggressive) tuple,
// for a single investment or for the portfolio total.
type YearlyProjection struct {
	Year         int     `json:"year"`
	Conservative float64 `json:"conservative"`
	Expected     float64 `json:"expected"`
	Aggressive   float64 `json:"aggressive"`
}

// InvestmentProjection is the year 1..horizon series for one investment.
type InvestmentProjection struct {
	InvestmentID string             `json:"investment_id"`
	Name         string             `json:"name"`
	Years        []YearlyProjection `json:"years"`
}

// ForecastResult is the immutable snapshot a forecast run produces.
type ForecastResult struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Currency    string                 `json:"currency"`
	Years       int                    `json:"years"`
	Assumptions []ReturnAssumption     `json:"assumptions"`
	Investments []InvestmentProjection `json:"investments"`
	Portfolio   []YearlyProjection     `json:"portfolio"`
}
