package research

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResponseJSON = `{
  "expectedAnnualReturnPct": 11.5,
  "conservativeAnnualReturnPct": 7.0,
  "aggressiveAnnualReturnPct": 15.0,
  "ytdReturnPct": 6.1,
  "oneYearReturnPct": 14.2,
  "threeYearCagrPct": 12.8,
  "fiveYearCagrPct": 13.1,
  "sinceInceptionCagrPct": null,
  "historyAsOf": "2026-07-31",
  "confidence": "high",
  "rationale": "Large-cap index fund with a long consistent track record.",
  "sources": [
    {"title": "AMFI NAV history", "uri": "https://www.amfiindia.com/nav-history"},
    "https://www.valueresearchonline.com/funds/123"
  ]
}`

func TestParseResearchResponsePlainJSON(t *testing.T) {
	p, err := parseResearchResponse(validResponseJSON)
	require.NoError(t, err)

	assert.Equal(t, 11.5, *p.ExpectedAnnualReturnPct)
	assert.Equal(t, 7.0, *p.ConservativeAnnualReturnPct)
	assert.Equal(t, 15.0, *p.AggressiveAnnualReturnPct)
	assert.Nil(t, p.SinceInceptionCagrPct)
	assert.Equal(t, "high", p.Confidence)
	require.Len(t, p.Sources, 2)
}

func TestParseResearchResponseStripsCodeFences(t *testing.T) {
	wrapped := "```json\n" + validResponseJSON + "\n```"

	p, err := parseResearchResponse(wrapped)
	require.NoError(t, err)
	assert.Equal(t, 11.5, *p.ExpectedAnnualReturnPct)
}

func TestParseResearchResponseExtractsObjectFromProse(t *testing.T) {
	wrapped := "Here is the research you asked for:\n" + validResponseJSON + "\nLet me know if you need anything else."

	p, err := parseResearchResponse(wrapped)
	require.NoError(t, err)
	assert.Equal(t, "high", p.Confidence)
}

func TestParseResearchResponseNoJSON(t *testing.T) {
	_, err := parseResearchResponse("I could not find reliable data for this investment.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JSON object found")
}

func TestParseResearchResponseMissingRequiredRate(t *testing.T) {
	payload := `{
	  "conservativeAnnualReturnPct": 7.0,
	  "aggressiveAnnualReturnPct": 15.0,
	  "confidence": "high",
	  "rationale": "x",
	  "sources": []
	}`

	_, err := parseResearchResponse(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expectedAnnualReturnPct")
}

func TestParseResearchResponseRejectsInvalidConfidence(t *testing.T) {
	payload := `{
	  "expectedAnnualReturnPct": 10,
	  "conservativeAnnualReturnPct": 7,
	  "aggressiveAnnualReturnPct": 15,
	  "confidence": "certain",
	  "rationale": "x",
	  "sources": []
	}`

	_, err := parseResearchResponse(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confidence")
}

func TestParseResearchResponseRejectsWrongTypes(t *testing.T) {
	payload := `{
	  "expectedAnnualReturnPct": "ten",
	  "conservativeAnnualReturnPct": 7,
	  "aggressiveAnnualReturnPct": 15,
	  "confidence": "low",
	  "rationale": "x",
	  "sources": []
	}`

	_, err := parseResearchResponse(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON payload")
}

func TestParseResearchResponseRejectsEmptyRationale(t *testing.T) {
	payload := `{
	  "expectedAnnualReturnPct": 10,
	  "conservativeAnnualReturnPct": 7,
	  "aggressiveAnnualReturnPct": 15,
	  "confidence": "low",
	  "rationale": "   ",
	  "sources": []
	}`

	_, err := parseResearchResponse(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rationale")
}

func TestSourceEntryAcceptsBothShapes(t *testing.T) {
	p, err := parseResearchResponse(validResponseJSON)
	require.NoError(t, err)

	assert.Equal(t, "AMFI NAV history", p.Sources[0].Title)
	assert.Equal(t, "https://www.amfiindia.com/nav-history", p.Sources[0].URI)

	// Bare string coerced with host as title.
	assert.Equal(t, "www.valueresearchonline.com", p.Sources[1].Title)
	assert.Equal(t, "https://www.valueresearchonline.com/funds/123", p.Sources[1].URI)
}

func TestParseResearchResponseNumericEdgeValues(t *testing.T) {
	for _, v := range []float64{-999, 0, 500} {
		payload := fmt.Sprintf(`{
		  "expectedAnnualReturnPct": %g,
		  "conservativeAnnualReturnPct": %g,
		  "aggressiveAnnualReturnPct": %g,
		  "confidence": "low",
		  "rationale": "x",
		  "sources": []
		}`, v, v, v)

		p, err := parseResearchResponse(payload)
		require.NoError(t, err, "value %g should parse; clamping happens later", v)
		assert.Equal(t, v, *p.ExpectedAnnualReturnPct)
	}
}
