package llm

import (
	"context"

	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
)

// DisabledService is a completion service whose calls always fail. With
// it installed the assistant runs entirely on the deterministic fallback
// paths, which keeps the system usable without any API credentials.
type DisabledService struct{}

var _ interfaces.CompletionService = (*DisabledService)(nil)

// NewDisabledService creates the no-op provider.
func NewDisabledService() *DisabledService {
	return &DisabledService{}
}

func (s *DisabledService) Complete(ctx context.Context, system, prompt string) (string, error) {
	return "", models.ErrCompletionDisabled
}

func (s *DisabledService) ProviderName() string {
	return "disabled"
}

func (s *DisabledService) HealthCheck(ctx context.Context) error {
	return models.ErrCompletionDisabled
}

func (s *DisabledService) Close() error {
	return nil
}
