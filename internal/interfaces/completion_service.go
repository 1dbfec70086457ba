package interfaces

import "context"

// CompletionService abstracts a structured-completion AI provider.
// Implementations exist for Gemini (default) and Claude, plus a disabled
// provider whose calls always fail so the deterministic fallback paths
// carry the whole system.
//
// All methods respect context cancellation and apply the provider's own
// request timeout and rate limit internally.
type CompletionService interface {
	// Complete sends a single prompt and returns the raw text response.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - system: Optional system instruction, may be empty
	//   - prompt: User prompt text
	//
	// Returns:
	//   - string: Raw model output
	//   - error: Provider, timeout, or cancellation error
	Complete(ctx context.Context, system, prompt string) (string, error)

	// ProviderName returns a short provider label for logging ("gemini",
	// "claude", "disabled").
	ProviderName() string

	// HealthCheck verifies the provider is reachable with a minimal probe.
	HealthCheck(ctx context.Context) error

	// Close releases provider resources.
	Close() error
}
