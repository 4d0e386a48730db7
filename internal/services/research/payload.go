package research

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/bobmcallan/horizon/internal/models"
)

// researchPayload is the expected JSON shape from the research provider.
// Required numeric fields are pointers so a missing field is distinguishable
// from zero; wrong types fail the unmarshal outright.
type researchPayload struct {
	ExpectedAnnualReturnPct     *float64      `json:"expectedAnnualReturnPct"`
	ConservativeAnnualReturnPct *float64      `json:"conservativeAnnualReturnPct"`
	AggressiveAnnualReturnPct   *float64      `json:"aggressiveAnnualReturnPct"`
	YTDReturnPct                *float64      `json:"ytdReturnPct"`
	OneYearReturnPct            *float64      `json:"oneYearReturnPct"`
	ThreeYearCagrPct            *float64      `json:"threeYearCagrPct"`
	FiveYearCagrPct             *float64      `json:"fiveYearCagrPct"`
	SinceInceptionCagrPct       *float64      `json:"sinceInceptionCagrPct"`
	HistoryAsOf                 *string       `json:"historyAsOf"`
	Confidence                  string        `json:"confidence"`
	Rationale                   string        `json:"rationale"`
	Sources                     []sourceEntry `json:"sources"`
}

// sourceEntry accepts either a bare URL string or a {title, uri} object.
// The canonical shape downstream is models.SourceRef; bare strings are
// coerced with the URL host as the title.
type sourceEntry struct {
	Title string
	URI   string
}

func (e *sourceEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.URI = s
		if u, err := url.Parse(s); err == nil && u.Host != "" {
			e.Title = u.Host
		} else {
			e.Title = s
		}
		return nil
	}

	var obj struct {
		Title string `json:"title"`
		URI   string `json:"uri"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("source entry must be a URL string or a {title, uri} object")
	}
	e.Title = obj.Title
	e.URI = obj.URI
	return nil
}

// validate enforces the hard structural boundary: any failure rejects the
// whole payload, there is no per-field repair.
func (p *researchPayload) validate() error {
	if p.ExpectedAnnualReturnPct == nil {
		return fmt.Errorf("missing expectedAnnualReturnPct")
	}
	if p.ConservativeAnnualReturnPct == nil {
		return fmt.Errorf("missing conservativeAnnualReturnPct")
	}
	if p.AggressiveAnnualReturnPct == nil {
		return fmt.Errorf("missing aggressiveAnnualReturnPct")
	}
	if !models.ValidConfidence(models.Confidence(p.Confidence)) {
		return fmt.Errorf("confidence '%s' is not one of low/medium/high", p.Confidence)
	}
	if strings.TrimSpace(p.Rationale) == "" {
		return fmt.Errorf("missing rationale")
	}
	return nil
}

// parseResearchResponse extracts and decodes the JSON payload from the
// provider's free-text response. Markdown code fences and any prose around
// the outermost JSON object are stripped before decoding.
func parseResearchResponse(response string) (*researchPayload, error) {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	// Narrow to the outermost object if the model wrapped it in prose.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	cleaned = cleaned[start : end+1]

	var payload researchPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}
	if err := payload.validate(); err != nil {
		return nil, err
	}
	return &payload, nil
}
