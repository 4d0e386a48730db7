package models

import "math"

// Bounds applied to every annual return rate. Anything the research provider
// reports outside this range is clamped, not rejected.
const (
	MinAnnualReturnPct = -80.0
	MaxAnnualReturnPct = 120.0
)

// MaxAssumptionSources caps the sanitized citation list per assumption.
const MaxAssumptionSources = 5

// Confidence is the research provider's self-assessed confidence label.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ValidConfidence reports whether c is a known confidence label.
func ValidConfidence(c Confidence) bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// SourceRef is one cited research source. URI is always populated; Title may
// fall back to the URL host when the provider returned a bare URL string.
type SourceRef struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// HistoricalReturns carries the trailing return signals the research provider
// reported, verbatim. Nil pointers mean the provider had no figure.
type HistoricalReturns struct {
	YTDPct            *float64 `json:"ytd_pct"`
	OneYearPct        *float64 `json:"one_year_pct"`
	ThreeYearCagrPct  *float64 `json:"three_year_cagr_pct"`
	FiveYearCagrPct   *float64 `json:"five_year_cagr_pct"`
	SinceInceptionPct *float64 `json:"since_inception_cagr_pct"`
	AsOf              string   `json:"as_of,omitempty"`
}

// ReturnAssumption is the validated, sanitized set of scenario rates plus
// supporting metadata for one investment, for one forecast run.
// Invariant: ConservativePct <= ExpectedPct <= AggressivePct, each within
// [MinAnnualReturnPct, MaxAnnualReturnPct].
type ReturnAssumption struct {
	InvestmentID    string            `json:"investment_id"`
	ConservativePct float64           `json:"conservative_pct"`
	ExpectedPct     float64           `json:"expected_pct"`
	AggressivePct   float64           `json:"aggressive_pct"`
	History         HistoricalReturns `json:"history"`
	Confidence      Confidence        `json:"confidence"`
	Rationale       string            `json:"rationale"`
	Sources         []SourceRef       `json:"sources"`
}

// Round2 rounds a value to 2 decimal places. All recorded monetary values and
// sanitized rates use this, so year-over-year compounding operates on the
// 2-decimal figures rather than full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
