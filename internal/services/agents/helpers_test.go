package agents

import (
	"context"
	"errors"

	"github.com/ternarybob/cognicart/internal/interfaces"
)

// stubCompletion is a scripted completion service for tests. With Err
// set every call fails; otherwise Response is returned verbatim.
type stubCompletion struct {
	Response string
	Err      error
	Calls    int
}

var _ interfaces.CompletionService = (*stubCompletion)(nil)

var errStubDown = errors.New("completion unavailable")

func (s *stubCompletion) Complete(ctx context.Context, system, prompt string) (string, error) {
	s.Calls++
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}

func (s *stubCompletion) ProviderName() string { return "stub" }

func (s *stubCompletion) HealthCheck(ctx context.Context) error { return s.Err }

func (s *stubCompletion) Close() error { return nil }

// slowCompletion never answers; it blocks until the caller's deadline
// expires and returns the context error.
type slowCompletion struct{}

var _ interfaces.CompletionService = (*slowCompletion)(nil)

func (s *slowCompletion) Complete(ctx context.Context, system, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (s *slowCompletion) ProviderName() string { return "slow" }

func (s *slowCompletion) HealthCheck(ctx context.Context) error { return nil }

func (s *slowCompletion) Close() error { return nil }
