package research

import (
	"net/url"
	"sort"
	"strings"

	"github.com/bobmcallan/horizon/internal/models"
)

// Weights for blending the provider's forward-looking expected rate with the
// backward-looking history anchor. The model's own estimate is trusted more,
// but historical data corrects for overconfidence and hallucination.
const (
	modelWeight   = 0.55
	historyWeight = 0.45
)

// oneYearDiscount down-weights the 1-year trailing return inside the history
// anchor: a single trailing year is a noisier, shorter-horizon signal than a
// multi-year CAGR.
const oneYearDiscount = 0.6

// groundingRedirectHost is the research provider's own search-redirect domain.
// URLs on it are grounding-citation artifacts, not real sources.
const groundingRedirectHost = "vertexaisearch.cloud.google.com"

// groundingRedirectMarker flags redirect-style paths from any host.
const groundingRedirectMarker = "/grounding-api-redirect"

// sanitizeRate clamps an annual return percentage to the plausible range and
// rounds to 2 decimals.
func sanitizeRate(pct float64) float64 {
	if pct < models.MinAnnualReturnPct {
		pct = models.MinAnnualReturnPct
	}
	if pct > models.MaxAnnualReturnPct {
		pct = models.MaxAnnualReturnPct
	}
	return models.Round2(pct)
}

// historyAnchor computes the blended average of available multi-year return
// signals. Returns (0, false) when no signal is present.
func historyAnchor(p *researchPayload) (float64, bool) {
	var sum float64
	var n int

	if p.ThreeYearCagrPct != nil {
		sum += *p.ThreeYearCagrPct
		n++
	}
	if p.FiveYearCagrPct != nil {
		sum += *p.FiveYearCagrPct
		n++
	}
	if p.SinceInceptionCagrPct != nil {
		sum += *p.SinceInceptionCagrPct
		n++
	}
	if p.OneYearReturnPct != nil {
		sum += *p.OneYearReturnPct * oneYearDiscount
		n++
	}

	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// normalizeAssumption turns a validated research payload into a trustworthy
// ReturnAssumption for the given investment. Rates are sanitized, the expected
// rate is anchored against history, scenario ordering is enforced by sorting,
// and cited sources are filtered and capped.
func normalizeAssumption(inv models.Investment, p *researchPayload) *models.ReturnAssumption {
	conservative := sanitizeRate(*p.ConservativeAnnualReturnPct)
	expected := sanitizeRate(*p.ExpectedAnnualReturnPct)
	aggressive := sanitizeRate(*p.AggressiveAnnualReturnPct)

	if anchor, ok := historyAnchor(p); ok {
		expected = sanitizeRate(modelWeight*expected + historyWeight*anchor)
	}

	// The lowest rate becomes conservative, the highest aggressive, no matter
	// how the model labeled them. This makes the ordering invariant
	// unconditional.
	rates := []float64{conservative, expected, aggressive}
	sort.Float64s(rates)

	asOf := ""
	if p.HistoryAsOf != nil {
		asOf = *p.HistoryAsOf
	}

	return &models.ReturnAssumption{
		InvestmentID:    inv.ID,
		ConservativePct: rates[0],
		ExpectedPct:     rates[1],
		AggressivePct:   rates[2],
		History: models.HistoricalReturns{
			YTDPct:            p.YTDReturnPct,
			OneYearPct:        p.OneYearReturnPct,
			ThreeYearCagrPct:  p.ThreeYearCagrPct,
			FiveYearCagrPct:   p.FiveYearCagrPct,
			SinceInceptionPct: p.SinceInceptionCagrPct,
			AsOf:              asOf,
		},
		Confidence: models.Confidence(p.Confidence),
		Rationale:  p.Rationale,
		Sources:    sanitizeSources(inv.SourceURL, p.Sources),
	}
}

// sanitizeSources normalizes, filters, dedups, and caps the citation list.
// The investment's own user-supplied source URL, when present, leads the list.
func sanitizeSources(userSourceURL string, entries []sourceEntry) []models.SourceRef {
	candidates := make([]sourceEntry, 0, len(entries)+1)
	if strings.TrimSpace(userSourceURL) != "" {
		candidates = append(candidates, sourceEntry{Title: "User-provided source", URI: userSourceURL})
	}
	candidates = append(candidates, entries...)

	seen := make(map[string]bool, len(candidates))
	result := make([]models.SourceRef, 0, models.MaxAssumptionSources)

	for _, e := range candidates {
		normalized, ok := normalizeSourceURL(e.URI)
		if !ok {
			continue
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true

		title := strings.TrimSpace(e.Title)
		if title == "" {
			if u, err := url.Parse(normalized); err == nil && u.Host != "" {
				title = u.Host
			} else {
				title = normalized
			}
		}

		result = append(result, models.SourceRef{Title: title, URI: normalized})
		if len(result) >= models.MaxAssumptionSources {
			break
		}
	}

	return result
}

// normalizeSourceURL strips fragments and rejects unparseable URLs and
// grounding-redirect artifacts.
func normalizeSourceURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}

	if strings.EqualFold(u.Host, groundingRedirectHost) {
		return "", false
	}
	if strings.Contains(u.Path, groundingRedirectMarker) {
		return "", false
	}

	u.Fragment = ""
	return u.String(), true
}
