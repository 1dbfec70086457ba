package assistant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/models"
	"github.com/ternarybob/cognicart/internal/services/agents"
)

// enrichmentOutcome carries one product's enrichment back to the
// collector. Failures never travel as panics across the fan-in; a
// failed product arrives already degraded to its placeholder.
type enrichmentOutcome struct {
	index   int
	product models.EnhancedProduct
}

// enrichProducts runs detail fetch, review analysis, and deal analysis
// for each product concurrently and reassembles the batch in rank order.
func (s *Service) enrichProducts(ctx context.Context, products []models.Product, emit func(stage, message string, payload any)) []models.EnhancedProduct {
	outcomes := make(chan enrichmentOutcome, len(products))
	var wg sync.WaitGroup

	for i, p := range products {
		wg.Add(1)
		go func(index int, product models.Product) {
			defer wg.Done()
			outcomes <- enrichmentOutcome{index: index, product: s.enrichOne(ctx, product)}
		}(i, p)
		emit(models.StageAnalyzing, fmt.Sprintf("Analyzing %s", p.Title), nil)
	}

	wg.Wait()
	close(outcomes)

	results := make([]models.EnhancedProduct, len(products))
	for outcome := range outcomes {
		results[outcome.index] = outcome.product
	}
	return results
}

// enrichOne enhances a single product. The detail fetch runs under a
// bounded wait and degrades to the listing-level product on expiry; the
// analyzers carry their own fallbacks. A panic degrades the whole
// product to its placeholder instead of poisoning the batch.
func (s *Service) enrichOne(ctx context.Context, product models.Product) (out models.EnhancedProduct) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn().Str("product_id", product.ID).Str("panic", fmt.Sprint(r)).Msg("Enrichment degraded to placeholder")
			out = s.placeholderEnrichment(product)
		}
	}()

	timeout := common.ParseDurationOr(s.config.EnhanceTimeout, 8*time.Second)
	detailCtx, cancel := context.WithTimeout(ctx, timeout)
	detailed, err := s.catalog.GetDetails(detailCtx, product.ID)
	cancel()
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", product.ID).Msg("Detail fetch failed, enriching listing-level product")
		clone := product.Clone()
		detailed = &clone
	}

	analysis := s.reviews.Analyze(ctx, *detailed)
	deal := s.deals.Analyze(ctx, *detailed)

	return models.EnhancedProduct{
		Product:        *detailed,
		ReviewAnalysis: &analysis,
		DealAnalysis:   deal,
	}
}

// placeholderEnrichment is the degraded form of a product whose
// enrichment failed: neutral review analysis and the rule-based deal
// assessment.
func (s *Service) placeholderEnrichment(product models.Product) models.EnhancedProduct {
	analysis := agents.NeutralReviewAnalysis()
	analysis.Statistics = agents.ComputeReviewStatistics(product.Reviews)
	return models.EnhancedProduct{
		Product:        product,
		ReviewAnalysis: &analysis,
		DealAnalysis:   s.deals.FallbackAnalysis(product),
	}
}
