package agents

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
	"github.com/ternarybob/cognicart/internal/services/llm"
)

// Ranker filters search candidates against a requirement and orders the
// survivors. AI ranking works on index projections of the candidates; a
// malformed or late response falls back to a deterministic score so the
// pipeline never stalls on ranking.
type Ranker struct {
	svc    interfaces.CompletionService
	config *common.RankingConfig
	logger arbor.ILogger
}

// NewRanker creates a product ranker.
func NewRanker(svc interfaces.CompletionService, config *common.RankingConfig, logger arbor.ILogger) *Ranker {
	return &Ranker{svc: svc, config: config, logger: logger}
}

// Filter drops candidates that violate hard constraints: price outside
// the budget window or rating below the quality floor. A brand mismatch
// is a soft preference and never filters.
func (r *Ranker) Filter(products []models.Product, req *models.Requirement) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if req.Budget.Max != nil && p.Price > *req.Budget.Max {
			continue
		}
		if req.Budget.Min != nil && p.Price < *req.Budget.Min {
			continue
		}
		if p.Rating < r.config.MinRating {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Rank orders products best-first and truncates to the configured list
// length. The AI call runs under a bounded wait; on any failure the
// deterministic fallback order is used immediately, without retry.
func (r *Ranker) Rank(ctx context.Context, products []models.Product, req *models.Requirement) []models.Product {
	topN := r.config.TopN
	if topN <= 0 {
		topN = 6
	}

	if len(products) <= 1 {
		return truncate(products, topN)
	}

	indices, err := r.rankWithAI(ctx, products, req)
	if err != nil {
		r.logger.Warn().Err(err).Msg("AI ranking failed, using deterministic fallback order")
		return truncate(r.FallbackOrder(products), topN)
	}

	ordered := r.applyRanking(products, indices)
	return truncate(ordered, topN)
}

func (r *Ranker) rankWithAI(ctx context.Context, products []models.Product, req *models.Requirement) ([]int, error) {
	timeout := common.ParseDurationOr(r.config.RankTimeout, 10*time.Second)
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var digest strings.Builder
	for i, p := range products {
		fmt.Fprintf(&digest, "%d. %s | Brand: %s | Price: %.0f %s | Rating: %.1f (%d reviews)\n",
			i, p.Title, p.Brand, p.Price, p.Currency, p.Rating, p.ReviewCount)
	}

	prompt := fmt.Sprintf(`Rank these products for a shopper who wants: %s.
Use case: %q. Priority features: %s. Preferred brands: %s.

Products (by index):
%s
Respond with a JSON object: {"ranked_indices": [best_index, next_index, ...]}
Include every index exactly once. Output JSON only, no markdown fences.`,
		req.ProductType, req.UseCase,
		strings.Join(req.PriorityFeatures, ", "),
		strings.Join(req.BrandPreferences, ", "),
		digest.String())

	var payload struct {
		RankedIndices []int `json:"ranked_indices"`
	}
	if err := llm.CompleteJSON(timeoutCtx, r.svc, "You are a product ranking assistant. Output JSON only.", prompt, &payload); err != nil {
		return nil, err
	}
	if len(payload.RankedIndices) == 0 {
		return nil, fmt.Errorf("ranking returned no indices")
	}
	return payload.RankedIndices, nil
}

// applyRanking maps validated indices back onto products. Out-of-range
// and duplicate indices are skipped; omitted products are appended in
// fallback-score order so nothing is lost.
func (r *Ranker) applyRanking(products []models.Product, indices []int) []models.Product {
	ordered := make([]models.Product, 0, len(products))
	used := make(map[int]bool, len(products))
	for _, idx := range indices {
		if idx < 0 || idx >= len(products) || used[idx] {
			continue
		}
		used[idx] = true
		ordered = append(ordered, products[idx])
	}

	if len(ordered) < len(products) {
		missing := make([]models.Product, 0, len(products)-len(ordered))
		for i, p := range products {
			if !used[i] {
				missing = append(missing, p)
			}
		}
		ordered = append(ordered, r.FallbackOrder(missing)...)
	}
	return ordered
}

// FallbackOrder sorts products by the deterministic quality score,
// highest first. The sort is stable, so equal scores keep their input
// order.
func (r *Ranker) FallbackOrder(products []models.Product) []models.Product {
	out := append([]models.Product(nil), products...)
	sort.SliceStable(out, func(i, j int) bool {
		return r.FallbackScore(&out[i]) > r.FallbackScore(&out[j])
	})
	return out
}

// FallbackScore blends the star rating with capped review volume.
func (r *Ranker) FallbackScore(p *models.Product) float64 {
	reviewScore := math.Min(float64(p.ReviewCount)/r.config.ReviewScale, r.config.ReviewScoreCap)
	return p.Rating*r.config.RatingWeight + reviewScore*r.config.ReviewWeight
}

func truncate(products []models.Product, n int) []models.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}
