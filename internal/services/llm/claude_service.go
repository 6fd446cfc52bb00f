package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/interfaces"
)

// ClaudeService implements interfaces.TextGenerator using the Anthropic
// Claude API.
type ClaudeService struct {
	config    *common.ClaudeConfig
	logger    arbor.ILogger
	client    anthropic.Client
	limiter   *rate.Limiter
	timeout   time.Duration
	maxTokens int
}

// Compile-time assertion
var _ interfaces.TextGenerator = (*ClaudeService)(nil)

// NewClaudeService creates a new Claude text generation service.
func NewClaudeService(config *common.ClaudeConfig, logger arbor.ILogger) (*ClaudeService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (set via ANTHROPIC_API_KEY, MEMORIA_CLAUDE_API_KEY, or claude.api_key in config)")
	}

	if config.Model == "" {
		config.Model = "claude-haiku-3-5-20241022"
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	rateLimit, err := time.ParseDuration(config.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit duration '%s': %w", config.RateLimit, err)
	}

	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	client := anthropic.NewClient(
		option.WithAPIKey(config.APIKey),
	)

	service := &ClaudeService{
		config:    config,
		logger:    logger,
		client:    client,
		limiter:   rate.NewLimiter(rate.Every(rateLimit), 1),
		timeout:   timeout,
		maxTokens: maxTokens,
	}

	logger.Info().
		Str("model", config.Model).
		Dur("timeout", timeout).
		Int("max_tokens", maxTokens).
		Msg("Claude text generation service initialized")

	return service, nil
}

// GenerateText produces a completion for the given prompt.
func (s *ClaudeService) GenerateText(ctx context.Context, prompt string) (string, error) {
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
		Msg("Starting Claude text generation")

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.config.Model),
		MaxTokens: int64(s.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if s.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(s.config.Temperature))
	}

	resp, err := s.client.Messages.New(timeoutCtx, params)
	if err != nil {
		s.logger.Error().Err(err).Msg("Claude text generation failed")
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from Claude")
	}

	s.logger.Debug().
		Int("response_length", response.Len()).
		Dur("duration", time.Since(startTime)).
		Msg("Claude text generation complete")

	return response.String(), nil
}

// HealthCheck exercises the model with a minimal probe.
func (s *ClaudeService) HealthCheck(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	response, err := s.GenerateText(probeCtx, "ping")
	if err != nil {
		return fmt.Errorf("Claude probe failed: %w", err)
	}
	if strings.TrimSpace(response) == "" {
		return fmt.Errorf("Claude probe returned empty response")
	}

	return nil
}

// ProviderName identifies the backing provider.
func (s *ClaudeService) ProviderName() string {
	return "claude"
}

// Close releases resources and performs cleanup operations.
func (s *ClaudeService) Close() error {
	s.logger.Debug().Msg("Closing Claude text generation service")
	// Claude client doesn't require explicit cleanup
	return nil
}
