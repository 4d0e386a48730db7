// Package research obtains and sanitizes per-investment return assumptions
// from the external generative research provider.
package research

import (
	"context"
	"fmt"

	"github.com/bobmcallan/horizon/internal/common"
	"github.com/bobmcallan/horizon/internal/interfaces"
	"github.com/bobmcallan/horizon/internal/models"
)

// Service implements ResearchService
type Service struct {
	client interfaces.ResearchClient
	logger *common.Logger
}

// NewService creates a new research service
func NewService(client interfaces.ResearchClient, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// GetAssumption researches one investment and returns its sanitized return
// assumption. Any failure — transport, unparseable response, or payload
// validation — is fatal for this investment and is not retried here; retry
// policy belongs to the caller.
func (s *Service) GetAssumption(ctx context.Context, inv models.Investment, currency string) (*models.ReturnAssumption, error) {
	if s.client == nil {
		return nil, fmt.Errorf("research for investment '%s' (%s) failed: research provider not configured", inv.Name, inv.ID)
	}

	s.logger.Debug().
		Str("investment", inv.Name).
		Str("type", string(inv.Type)).
		Msg("Requesting return research")

	prompt := buildResearchPrompt(inv, currency)

	response, err := s.client.GenerateGrounded(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("research for investment '%s' (%s) failed: %w", inv.Name, inv.ID, err)
	}

	payload, err := parseResearchResponse(response)
	if err != nil {
		return nil, fmt.Errorf("research response for investment '%s' (%s) rejected: %w", inv.Name, inv.ID, err)
	}

	assumption := normalizeAssumption(inv, payload)

	s.logger.Info().
		Str("investment", inv.Name).
		Float64("conservative", assumption.ConservativePct).
		Float64("expected", assumption.ExpectedPct).
		Float64("aggressive", assumption.AggressivePct).
		Str("confidence", string(assumption.Confidence)).
		Int("sources", len(assumption.Sources)).
		Msg("Return assumption computed")

	return assumption, nil
}

// Ensure Service implements ResearchService
var _ interfaces.ResearchService = (*Service)(nil)
