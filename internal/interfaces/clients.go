// Package interfaces defines service contracts for Horizon
package interfaces

import "context"

// ResearchClient provides access to the external generative research provider.
// Responses are free text that is expected to contain a JSON payload; callers
// own extraction and validation.
type ResearchClient interface {
	// GenerateGrounded generates content with web-search grounding enabled
	GenerateGrounded(ctx context.Context, prompt string) (string, error)
}
