package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/models"
)

func newTestRanker(svc *stubCompletion) *Ranker {
	cfg := common.DefaultConfig()
	return NewRanker(svc, &cfg.Ranking, arbor.NewLogger())
}

func floatPtr(v float64) *float64 { return &v }

func TestRankerFilter(t *testing.T) {
	ranker := newTestRanker(&stubCompletion{Err: errStubDown})
	products := []models.Product{
		{ID: "in_budget", Price: 35000, Rating: 4.0, Brand: "Alpha"},
		{ID: "over_budget", Price: 55000, Rating: 4.5, Brand: "Alpha"},
		{ID: "under_min", Price: 5000, Rating: 4.2, Brand: "Beta"},
		{ID: "low_rating", Price: 30000, Rating: 3.0, Brand: "Alpha"},
		{ID: "other_brand", Price: 32000, Rating: 4.1, Brand: "Gamma"},
	}
	req := &models.Requirement{
		Budget:           models.Budget{Min: floatPtr(10000), Max: floatPtr(40000)},
		BrandPreferences: []string{"Alpha"},
	}

	out := ranker.Filter(products, req)
	ids := make([]string, 0, len(out))
	for _, p := range out {
		ids = append(ids, p.ID)
	}
	// Budget and rating are hard constraints, brand preference is not.
	assert.Equal(t, []string{"in_budget", "other_brand"}, ids)
}

func TestRankerFilterNoConstraints(t *testing.T) {
	ranker := newTestRanker(&stubCompletion{Err: errStubDown})
	products := []models.Product{
		{ID: "a", Price: 100, Rating: 4.0},
		{ID: "b", Price: 200, Rating: 3.6},
	}
	out := ranker.Filter(products, &models.Requirement{})
	assert.Len(t, out, 2)
}

func TestRankerFallbackScore(t *testing.T) {
	ranker := newTestRanker(&stubCompletion{Err: errStubDown})

	tests := []struct {
		name    string
		product models.Product
		want    float64
	}{
		{
			name:    "typical product",
			product: models.Product{Rating: 4.5, ReviewCount: 2000},
			want:    4.5*0.7 + 2.0*0.3,
		},
		{
			name:    "review volume capped",
			product: models.Product{Rating: 4.0, ReviewCount: 100000},
			want:    4.0*0.7 + 5.0*0.3,
		},
		{
			name:    "no reviews",
			product: models.Product{Rating: 3.8, ReviewCount: 0},
			want:    3.8 * 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ranker.FallbackScore(&tt.product), 0.0001)
		})
	}
}

func TestRankerFallbackOrderStable(t *testing.T) {
	ranker := newTestRanker(&stubCompletion{Err: errStubDown})
	products := []models.Product{
		{ID: "first_tie", Rating: 4.0, ReviewCount: 1000},
		{ID: "second_tie", Rating: 4.0, ReviewCount: 1000},
		{ID: "best", Rating: 4.8, ReviewCount: 5000},
	}

	out := ranker.FallbackOrder(products)
	require.Len(t, out, 3)
	assert.Equal(t, "best", out[0].ID)
	assert.Equal(t, "first_tie", out[1].ID)
	assert.Equal(t, "second_tie", out[2].ID)
}

func TestRankerRankWithAI(t *testing.T) {
	svc := &stubCompletion{Response: `{"ranked_indices": [2, 0, 1]}`}
	ranker := newTestRanker(svc)
	products := []models.Product{
		{ID: "a", Rating: 4.0},
		{ID: "b", Rating: 4.1},
		{ID: "c", Rating: 4.2},
	}

	out := ranker.Rank(context.Background(), products, &models.Requirement{ProductType: "laptop"})
	require.Len(t, out, 3)
	assert.Equal(t, "c", out[0].ID)
	assert.Equal(t, "a", out[1].ID)
	assert.Equal(t, "b", out[2].ID)
}

func TestRankerRankInvalidIndices(t *testing.T) {
	// Out-of-range and duplicate indices are skipped; the omitted
	// product is appended by fallback score.
	svc := &stubCompletion{Response: `{"ranked_indices": [1, 9, 1, -3]}`}
	ranker := newTestRanker(svc)
	products := []models.Product{
		{ID: "a", Rating: 3.6, ReviewCount: 10},
		{ID: "b", Rating: 4.0, ReviewCount: 100},
		{ID: "c", Rating: 4.9, ReviewCount: 9000},
	}

	out := ranker.Rank(context.Background(), products, &models.Requirement{})
	require.Len(t, out, 3)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, "c", out[1].ID)
	assert.Equal(t, "a", out[2].ID)
}

func TestRankerRankFallsBackOnError(t *testing.T) {
	ranker := newTestRanker(&stubCompletion{Err: errStubDown})
	products := []models.Product{
		{ID: "weak", Rating: 3.6, ReviewCount: 50},
		{ID: "strong", Rating: 4.7, ReviewCount: 8000},
	}

	out := ranker.Rank(context.Background(), products, &models.Requirement{})
	require.Len(t, out, 2)
	assert.Equal(t, "strong", out[0].ID)
}

func TestRankerRankTimeoutFallsBack(t *testing.T) {
	// A provider that never answers within the bounded wait must not
	// stall ranking; the deterministic order applies.
	cfg := common.DefaultConfig()
	cfg.Ranking.RankTimeout = "20ms"
	ranker := NewRanker(&slowCompletion{}, &cfg.Ranking, arbor.NewLogger())

	products := []models.Product{
		{ID: "weak", Rating: 3.6, ReviewCount: 50},
		{ID: "strong", Rating: 4.7, ReviewCount: 8000},
	}
	out := ranker.Rank(context.Background(), products, &models.Requirement{})
	require.Len(t, out, 2)
	assert.Equal(t, "strong", out[0].ID)
	assert.Equal(t, "weak", out[1].ID)
}

func TestRankerRankFallsBackOnGarbage(t *testing.T) {
	svc := &stubCompletion{Response: "I think the best product is the laptop."}
	ranker := newTestRanker(svc)
	products := []models.Product{
		{ID: "weak", Rating: 3.6, ReviewCount: 50},
		{ID: "strong", Rating: 4.7, ReviewCount: 8000},
	}

	out := ranker.Rank(context.Background(), products, &models.Requirement{})
	require.Len(t, out, 2)
	assert.Equal(t, "strong", out[0].ID)
}

func TestRankerRankSingleProductSkipsAI(t *testing.T) {
	svc := &stubCompletion{Response: `{"ranked_indices": [0]}`}
	ranker := newTestRanker(svc)
	products := []models.Product{{ID: "only", Rating: 4.0}}

	out := ranker.Rank(context.Background(), products, &models.Requirement{})
	require.Len(t, out, 1)
	assert.Equal(t, "only", out[0].ID)
	assert.Zero(t, svc.Calls)
}

func TestRankerRankTruncatesToTopN(t *testing.T) {
	cfg := common.DefaultConfig()
	cfg.Ranking.TopN = 2
	ranker := NewRanker(&stubCompletion{Err: errStubDown}, &cfg.Ranking, arbor.NewLogger())

	products := []models.Product{
		{ID: "a", Rating: 4.0}, {ID: "b", Rating: 4.1},
		{ID: "c", Rating: 4.2}, {ID: "d", Rating: 4.3},
	}
	out := ranker.Rank(context.Background(), products, &models.Requirement{})
	assert.Len(t, out, 2)
}
