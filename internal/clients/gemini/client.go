// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/bobmcallan/horizon/internal/common"
	"github.com/bobmcallan/horizon/internal/interfaces"
)

const (
	DefaultModel     = "gemini-2.0-flash"
	DefaultRateLimit = 5 // requests per second
)

// Client implements the ResearchClient interface
type Client struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	logger  *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithRateLimit sets the request rate limit (requests per second)
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client:  genaiClient,
		model:   DefaultModel,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GenerateGrounded generates content with the Google Search grounding tool
// enabled, so the model can cite live web sources.
func (c *Client) GenerateGrounded(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
	return c.generate(ctx, prompt, config)
}

func (c *Client) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}

	c.logger.Debug().Str("model", c.model).Int("prompt_len", len(prompt)).Msg("Generating content")

	contents := genai.Text(prompt)
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(result)
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// Ensure Client implements ResearchClient
var _ interfaces.ResearchClient = (*Client)(nil)
