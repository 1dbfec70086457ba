package assistant

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
	"github.com/ternarybob/cognicart/internal/services/catalog"
	"github.com/ternarybob/cognicart/internal/services/llm"
)

// scriptedCompletion replays canned responses in call order. With no
// responses left, or with Err set, every call fails. Safe for the
// concurrent calls the enrichment fan-out makes.
type scriptedCompletion struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Calls     int
}

var _ interfaces.CompletionService = (*scriptedCompletion)(nil)

func (s *scriptedCompletion) Complete(ctx context.Context, system, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Responses) == 0 {
		return "", context.DeadlineExceeded
	}
	response := s.Responses[0]
	s.Responses = s.Responses[1:]
	return response, nil
}

func (s *scriptedCompletion) ProviderName() string { return "scripted" }

func (s *scriptedCompletion) HealthCheck(ctx context.Context) error { return s.Err }

func (s *scriptedCompletion) Close() error { return nil }

// newFallbackService builds an assistant over the seed catalog with the
// completion provider disabled, so every AI boundary takes its
// deterministic fallback.
func newFallbackService(t *testing.T) *Service {
	t.Helper()
	return newScriptedService(t, llm.NewDisabledService())
}

func newScriptedService(t *testing.T, completion interfaces.CompletionService) *Service {
	t.Helper()
	config := common.DefaultConfig()
	logger := arbor.NewLogger()
	provider, err := catalog.NewMemoryCatalog(&config.Catalog, catalog.NewMemoryCache(), logger, nil)
	require.NoError(t, err)
	return NewService(config, completion, provider, logger)
}

// panickyDetailCatalog simulates a catalog fault during detail fetch.
type panickyDetailCatalog struct {
	interfaces.CatalogProvider
}

func (c *panickyDetailCatalog) GetDetails(ctx context.Context, id string) (*models.Product, error) {
	panic("detail synthesis failed")
}

// slowDetailCatalog blocks detail fetches until the caller's deadline
// expires.
type slowDetailCatalog struct {
	interfaces.CatalogProvider
}

func (c *slowDetailCatalog) GetDetails(ctx context.Context, id string) (*models.Product, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
