package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductClone(t *testing.T) {
	original := Product{
		ID: "p1", Title: "Original",
		Features:       []string{"a", "b"},
		Reviews:        []Review{{ID: "r1", Rating: 5}},
		Specifications: map[string]string{"k": "v"},
		Pros:           []string{"pro"},
		Cons:           []string{"con"},
	}

	clone := original.Clone()
	clone.Features[0] = "changed"
	clone.Reviews[0].Rating = 1
	clone.Specifications["k"] = "changed"
	clone.Pros[0] = "changed"

	assert.Equal(t, "a", original.Features[0])
	assert.Equal(t, 5.0, original.Reviews[0].Rating)
	assert.Equal(t, "v", original.Specifications["k"])
	assert.Equal(t, "pro", original.Pros[0])
}

func TestRequirementNormalize(t *testing.T) {
	min, max := 50000.0, 30000.0
	req := Requirement{
		Budget:    Budget{Min: &min, Max: &max},
		Urgency:   Urgency("tomorrow"),
		Sentiment: Sentiment("ecstatic"),
	}

	req.Normalize()

	require.NotNil(t, req.Budget.Min)
	require.NotNil(t, req.Budget.Max)
	assert.Equal(t, 30000.0, *req.Budget.Min)
	assert.Equal(t, 50000.0, *req.Budget.Max)
	assert.Equal(t, UrgencyFlexible, req.Urgency)
	assert.Equal(t, SentimentNeutral, req.Sentiment)
}

func TestRequirementBudgetMax(t *testing.T) {
	var req Requirement
	assert.Zero(t, req.BudgetMax())

	max := 25000.0
	req.Budget.Max = &max
	assert.Equal(t, 25000.0, req.BudgetMax())
}

func TestErrorResult(t *testing.T) {
	result := ErrorResult("something broke", ErrProductNotFound)
	assert.Equal(t, KindError, result.Kind)
	assert.Equal(t, "something broke", result.Message)
	assert.Equal(t, ErrProductNotFound.Error(), result.Err)

	quiet := ErrorResult("no cause", nil)
	assert.Empty(t, quiet.Err)
}

func TestSentimentBreakdownSum(t *testing.T) {
	b := SentimentBreakdown{Positive: 60, Neutral: 25, Negative: 15}
	assert.Equal(t, 100, b.Sum())
}
