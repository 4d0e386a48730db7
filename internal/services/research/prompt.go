package research

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/horizon/internal/models"
)

// buildResearchPrompt creates the research request for one investment. The
// provider is instructed to return a single JSON object and nothing else;
// parseResearchResponse strips any formatting noise it adds anyway.
func buildResearchPrompt(inv models.Investment, currency string) string {
	var sb strings.Builder

	sb.WriteString("You are an investment research analyst. Research realistic annual return expectations for the following holding:\n\n")
	sb.WriteString(fmt.Sprintf("- Type: %s\n", inv.Type))
	sb.WriteString(fmt.Sprintf("- Name: %s\n", inv.Name))
	sb.WriteString(fmt.Sprintf("- Currency: %s\n", currency))
	sb.WriteString(fmt.Sprintf("- Ticker: %s\n", orNA(inv.Ticker)))
	sb.WriteString(fmt.Sprintf("- Institution: %s\n", orNA(inv.Institution)))
	sb.WriteString(fmt.Sprintf("- Source URL: %s\n", orNA(inv.SourceURL)))

	if inv.SourceURL != "" {
		sb.WriteString("\nUse the source URL above as the primary evidence for this holding. Search for additional corroborating sources.\n")
	} else {
		sb.WriteString("\nNo source URL was supplied — search independently for authoritative data on this holding.\n")
	}

	sb.WriteString(`
Return ONLY valid JSON with exactly these fields:
{
  "expectedAnnualReturnPct": 0.0,
  "conservativeAnnualReturnPct": 0.0,
  "aggressiveAnnualReturnPct": 0.0,
  "ytdReturnPct": null,
  "oneYearReturnPct": null,
  "threeYearCagrPct": null,
  "fiveYearCagrPct": null,
  "sinceInceptionCagrPct": null,
  "historyAsOf": null,
  "confidence": "low|medium|high",
  "rationale": "string",
  "sources": [{"title": "string", "uri": "https://..."}]
}

Rules:
- All return figures are nominal annual percentages
- conservative <= expected <= aggressive must hold
- Keep the rationale under 220 characters
- Cite 2-5 direct sources with their real publisher URLs, never search redirect links`)

	if inv.Type.IsSecurityLike() {
		sb.WriteString("\n- Populate ytdReturnPct, oneYearReturnPct, threeYearCagrPct, fiveYearCagrPct, and sinceInceptionCagrPct from published performance data where available, with historyAsOf set to the data date")
	} else {
		sb.WriteString("\n- Historical return fields may be null where the instrument has no published performance series")
	}

	sb.WriteString("\n- Return ONLY the JSON object, no markdown code fences, no explanation")

	return sb.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "n/a"
	}
	return s
}
