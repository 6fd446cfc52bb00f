package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/interfaces"
)

// NewTextGenerator creates the text generation backend selected by
// configuration. A nil generator (with nil error) means no provider is
// configured: the caller should route narrative generation through the
// deterministic path rather than treat this as a failure.
func NewTextGenerator(cfg *common.Config, logger arbor.ILogger) (interfaces.TextGenerator, error) {
	provider := cfg.LLM.DefaultProvider
	if provider == "" {
		provider = common.LLMProviderGemini
	}

	switch provider {
	case common.LLMProviderNone:
		logger.Info().Msg("AI narrative generation disabled by configuration")
		return nil, nil

	case common.LLMProviderGemini:
		if cfg.Gemini.APIKey == "" {
			logger.Warn().Msg("No Gemini API key configured, narrative generation will use deterministic templates")
			return nil, nil
		}
		return NewGeminiService(&cfg.Gemini, logger)

	case common.LLMProviderClaude:
		if cfg.Claude.APIKey == "" {
			logger.Warn().Msg("No Anthropic API key configured, narrative generation will use deterministic templates")
			return nil, nil
		}
		return NewClaudeService(&cfg.Claude, logger)

	default:
		return nil, fmt.Errorf("unsupported LLM provider '%s': must be 'gemini', 'claude' or 'none'", provider)
	}
}
