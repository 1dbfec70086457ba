package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/interfaces"
)

// NewCompletionService creates the completion service selected by
// llm.provider.
//
// Parameters:
//   - config: Full application configuration
//   - logger: Logger instance
//
// Returns:
//   - interfaces.CompletionService: Provider-specific implementation
//   - error: Unknown provider or provider initialization failure
func NewCompletionService(config *common.Config, logger arbor.ILogger) (interfaces.CompletionService, error) {
	switch config.LLM.Provider {
	case "gemini":
		return NewGeminiService(&config.Gemini, logger)
	case "claude":
		return NewClaudeService(&config.Claude, logger)
	case "disabled":
		logger.Warn().Msg("Completion provider disabled, running on deterministic fallbacks only")
		return NewDisabledService(), nil
	default:
		return nil, fmt.Errorf("unknown completion provider: %s", config.LLM.Provider)
	}
}
