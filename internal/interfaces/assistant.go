package interfaces

import (
	"context"

	"github.com/ternarybob/cognicart/internal/models"
)

// Assistant is the conversational entry point. Every operation returns
// the uniform Result envelope; a non-nil error is returned only for
// input validation failures, before any pipeline work has started.
// Failures inside the pipeline are folded into an error-kind Result.
type Assistant interface {
	// Search runs the full recommendation pipeline for a free-text query.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - query: Free-text shopping query
	//   - history: Prior conversation turns, oldest first, may be nil
	//
	// Returns:
	//   - *models.Result: Recommendations, no_products_found, or error kind
	//   - error: models.ErrEmptyQuery for a blank query
	Search(ctx context.Context, query string, history []models.ChatTurn) (*models.Result, error)

	// SearchStream runs Search while emitting ordered progress events.
	// The returned channel is closed after the terminal event, whose
	// Stage is "complete" and whose Result carries the full payload.
	SearchStream(ctx context.Context, query string, history []models.ChatTurn) (<-chan models.ProgressEvent, error)

	// Compare analyzes two or more products side by side.
	//
	// Returns models.ErrInsufficientProducts when fewer than two of the
	// given ids resolve to catalog products.
	Compare(ctx context.Context, ids []string, aspects []string) (*models.Result, error)

	// Details returns the deep-dive payload for one product. A missing
	// product is fatal for this operation and yields an error-kind Result.
	Details(ctx context.Context, id string, focusAreas []string) (*models.Result, error)

	// FollowUp classifies a follow-up message against the prior result
	// and dispatches to the matching flow.
	FollowUp(ctx context.Context, text string, prior *models.Result) (*models.Result, error)
}
