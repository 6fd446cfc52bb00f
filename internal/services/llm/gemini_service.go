package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/interfaces"
)

// GeminiService implements interfaces.TextGenerator using the Google Gemini
// API. Calls are rate limited and bounded by the configured timeout.
type GeminiService struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	client  *genai.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// Compile-time assertion
var _ interfaces.TextGenerator = (*GeminiService)(nil)

// NewGeminiService creates a new Gemini text generation service.
//
// Initialization resolves the API key from configuration, applies model and
// timeout defaults, and builds the genai client. A missing API key is an
// error; callers that want deterministic narrative generation should not
// construct a generator at all.
func NewGeminiService(config *common.GeminiConfig, logger arbor.ILogger) (*GeminiService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set via MEMORIA_GEMINI_API_KEY, GEMINI_API_KEY, or gemini.api_key in config)")
	}

	if config.Model == "" {
		config.Model = "gemini-3-flash-preview"
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	rateLimit, err := time.ParseDuration(config.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit duration '%s': %w", config.RateLimit, err)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &GeminiService{
		config:  config,
		logger:  logger,
		client:  client,
		limiter: rate.NewLimiter(rate.Every(rateLimit), 1),
		timeout: timeout,
	}

	logger.Info().
		Str("model", config.Model).
		Dur("timeout", timeout).
		Str("rate_limit", config.RateLimit).
		Msg("Gemini text generation service initialized")

	return service, nil
}

// GenerateText produces a completion for the given prompt.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait failed: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Debug().
		Int("prompt_length", len(prompt)).
		Msg("Starting Gemini text generation")

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(s.config.Temperature),
	}
	if s.config.MaxTokens > 0 {
		config.MaxOutputTokens = int32(s.config.MaxTokens)
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := s.client.Models.GenerateContent(timeoutCtx, s.config.Model, contents, config)
	if err != nil {
		s.logger.Error().Err(err).Msg("Gemini text generation failed")
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	var response strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
			if response.Len() > 0 {
				break
			}
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from Gemini")
	}

	s.logger.Debug().
		Int("response_length", response.Len()).
		Dur("duration", time.Since(startTime)).
		Msg("Gemini text generation complete")

	return response.String(), nil
}

// HealthCheck exercises the model with a minimal probe.
func (s *GeminiService) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("genai client is not initialized")
	}

	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	response, err := s.GenerateText(probeCtx, "ping")
	if err != nil {
		return fmt.Errorf("Gemini probe failed: %w", err)
	}
	if strings.TrimSpace(response) == "" {
		return fmt.Errorf("Gemini probe returned empty response")
	}

	return nil
}

// ProviderName identifies the backing provider.
func (s *GeminiService) ProviderName() string {
	return "gemini"
}

// Close releases resources and performs cleanup operations.
func (s *GeminiService) Close() error {
	s.logger.Debug().Msg("Closing Gemini text generation service")
	// genai.Client doesn't require explicit cleanup
	s.client = nil
	return nil
}
