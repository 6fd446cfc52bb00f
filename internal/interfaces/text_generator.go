package interfaces

import (
	"context"
)

// TextGenerator defines the interface for AI text generation used by the
// narrative synthesizer. Implementations may use cloud APIs (Gemini, Claude);
// a nil TextGenerator selects the deterministic narrative path.
type TextGenerator interface {
	// GenerateText produces a completion for the given prompt.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - prompt: Full prompt text including any instructions
	//
	// Returns:
	//   - string: Generated text
	//   - error: Error if generation fails
	GenerateText(ctx context.Context, prompt string) (string, error)

	// HealthCheck verifies the provider is operational and can handle
	// requests. For cloud services this checks API connectivity and
	// authentication.
	HealthCheck(ctx context.Context) error

	// ProviderName returns a short identifier for the backing provider,
	// e.g. "gemini" or "claude".
	ProviderName() string

	// Close releases resources and performs cleanup operations.
	Close() error
}
