package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
	"github.com/ternarybob/cognicart/internal/services/agents"
)

// Service coordinates the agents into the conversational entry points.
// Input validation errors are returned as Go errors before any work
// starts; every failure after that point is folded into an error-kind
// Result by the recovery boundary.
type Service struct {
	interpreter *agents.Interpreter
	ranker      *agents.Ranker
	reviews     *agents.ReviewAnalyzer
	deals       *agents.DealAnalyzer
	catalog     interfaces.CatalogProvider
	completion  interfaces.CompletionService
	config      *common.AssistantConfig
	catalogCfg  *common.CatalogConfig
	logger      arbor.ILogger
}

var _ interfaces.Assistant = (*Service)(nil)

// NewService creates the assistant coordinator.
//
// Parameters:
//   - config: Full application configuration
//   - completion: Completion service shared by all agents
//   - provider: Catalog provider
//   - logger: Logger instance
func NewService(config *common.Config, completion interfaces.CompletionService, provider interfaces.CatalogProvider, logger arbor.ILogger) *Service {
	return &Service{
		interpreter: agents.NewInterpreter(completion, logger),
		ranker:      agents.NewRanker(completion, &config.Ranking, logger),
		reviews:     agents.NewReviewAnalyzer(completion, logger),
		deals:       agents.NewDealAnalyzer(completion, logger),
		catalog:     provider,
		completion:  completion,
		config:      &config.Assistant,
		catalogCfg:  &config.Catalog,
		logger:      logger,
	}
}

// recoverToResult converts an escaped panic into the uniform error
// envelope. Installed at every operation boundary.
func (s *Service) recoverToResult(result **models.Result) {
	if r := recover(); r != nil {
		s.logger.Error().Str("panic", fmt.Sprint(r)).Msg("Assistant operation panicked")
		*result = models.ErrorResult(
			"Something went wrong while processing your request. Please try again.",
			fmt.Errorf("internal failure: %v", r),
		)
	}
}

// Search runs the full recommendation pipeline for a free-text query.
func (s *Service) Search(ctx context.Context, query string, history []models.ChatTurn) (*models.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.ErrEmptyQuery
	}
	return s.searchPipeline(ctx, query, history, nil), nil
}

// SearchStream runs the same pipeline while emitting ordered progress
// events. The channel is closed after the terminal "complete" event.
func (s *Service) SearchStream(ctx context.Context, query string, history []models.ChatTurn) (<-chan models.ProgressEvent, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.ErrEmptyQuery
	}

	events := make(chan models.ProgressEvent, 16)
	emit := func(stage, message string, payload any) {
		select {
		case events <- models.ProgressEvent{Stage: stage, Message: message, Payload: payload}:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(events)
		result := s.searchPipeline(ctx, query, history, emit)
		select {
		case events <- models.ProgressEvent{Stage: models.StageComplete, Message: "Done", Result: result}:
		case <-ctx.Done():
		}
	}()

	return events, nil
}

// searchPipeline is the shared body of Search and SearchStream. emit is
// nil for the non-streaming variant.
func (s *Service) searchPipeline(ctx context.Context, query string, history []models.ChatTurn, emit func(stage, message string, payload any)) (result *models.Result) {
	defer s.recoverToResult(&result)
	if emit == nil {
		emit = func(string, string, any) {}
	}

	emit(models.StageInterpreting, "Understanding your requirements", nil)
	req := s.interpreter.Parse(ctx, query)

	emit(models.StageSearching, fmt.Sprintf("Searching for %s", req.ProductType), nil)
	candidates, err := s.catalog.Search(ctx, buildSearchQuery(&req), s.catalogCfg.MaxResults)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("Catalog search failed")
		return models.ErrorResult("Product search is unavailable right now. Please try again.", err)
	}
	if len(candidates) == 0 {
		return s.noProductsResult(ctx, &req)
	}

	filtered := s.ranker.Filter(candidates, &req)
	if len(filtered) == 0 {
		return s.noProductsResult(ctx, &req)
	}

	ranked := s.ranker.Rank(ctx, filtered, &req)
	emit(models.StageFound, fmt.Sprintf("Found %d matching products", len(ranked)), map[string]int{"count": len(ranked)})

	top := s.config.EnrichCount
	if top <= 0 {
		top = 3
	}
	if top > len(ranked) {
		top = len(ranked)
	}

	enriched := s.enrichProducts(ctx, ranked[:top], emit)

	emit(models.StageSynthesizing, "Putting together recommendations", nil)
	response := s.summarize(ctx, query, &req, enriched)

	return &models.Result{
		Kind:               models.KindRecommendations,
		Response:           response,
		Products:           enriched,
		AdditionalProducts: ranked[top:],
		TotalFound:         len(ranked),
		Requirement:        &req,
	}
}

func (s *Service) noProductsResult(ctx context.Context, req *models.Requirement) *models.Result {
	suggestions := refinementSuggestions(req)
	if questions := s.interpreter.SuggestClarifications(ctx, req); len(questions) > 0 {
		suggestions = append(suggestions, questions...)
	}
	return &models.Result{
		Kind:        models.KindNoProducts,
		Message:     fmt.Sprintf("No products matched your requirements for %s.", req.ProductType),
		Requirement: req,
		Suggestions: suggestions,
	}
}

// Compare analyzes two or more products side by side. The review and
// deal comparisons run concurrently; either one failing degrades its
// section to empty rather than aborting the comparison.
func (s *Service) Compare(ctx context.Context, ids []string, aspects []string) (result *models.Result, err error) {
	// The recovery boundary covers id resolution too; a catalog fault
	// while resolving must surface as an error-kind Result, not a crash.
	defer s.recoverToResult(&result)

	resolved := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			continue
		}
		product, err := s.catalog.GetDetails(ctx, id)
		if err != nil {
			s.logger.Warn().Str("product_id", id).Msg("Comparison product not found, skipping")
			continue
		}
		resolved = append(resolved, *product)
	}
	if len(resolved) < 2 {
		return nil, models.ErrInsufficientProducts
	}

	var (
		wg        sync.WaitGroup
		reviewCmp models.ReviewComparison
		dealCmp   models.DealComparison
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Warn().Str("panic", fmt.Sprint(r)).Msg("Review comparison degraded")
			}
		}()
		reviewCmp = s.reviews.Compare(ctx, resolved)
	}()
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Warn().Str("panic", fmt.Sprint(r)).Msg("Deal comparison degraded")
			}
		}()
		dealCmp = s.buildDealComparison(ctx, resolved)
	}()
	wg.Wait()

	return &models.Result{
		Kind:             models.KindComparison,
		Response:         s.comparisonNarrative(ctx, resolved, aspects, &reviewCmp, &dealCmp),
		ReviewComparison: &reviewCmp,
		DealComparison:   &dealCmp,
	}, nil
}

func (s *Service) buildDealComparison(ctx context.Context, products []models.Product) models.DealComparison {
	cmp := models.DealComparison{
		Entries: make([]models.DealComparisonEntry, 0, len(products)),
	}
	bestScore := -1.0
	lowestPrice := -1.0
	for _, p := range products {
		analysis := s.deals.Analyze(ctx, p)
		cmp.Entries = append(cmp.Entries, models.DealComparisonEntry{
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Analysis:  analysis,
		})
		if analysis != nil && analysis.DealScore > bestScore {
			bestScore = analysis.DealScore
			cmp.BestOverallValue = p.Title
		}
		if p.Price > 0 && (lowestPrice < 0 || p.Price < lowestPrice) {
			lowestPrice = p.Price
			cmp.BestBudgetOption = p.Title
		}
	}
	if cmp.BestOverallValue != "" {
		cmp.Recommendation = fmt.Sprintf("%s offers the best overall value; %s is the budget pick.",
			cmp.BestOverallValue, cmp.BestBudgetOption)
	}
	return cmp
}

// Details returns the deep-dive payload for one product. Unlike search
// enrichment, a missing product is fatal here.
func (s *Service) Details(ctx context.Context, id string, focusAreas []string) (result *models.Result, err error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.ErrEmptyProductID
	}

	defer s.recoverToResult(&result)

	product, lookupErr := s.catalog.GetDetails(ctx, id)
	if lookupErr != nil {
		return models.ErrorResult(fmt.Sprintf("Product %s was not found.", id), lookupErr), nil
	}

	var (
		wg       sync.WaitGroup
		analysis models.ReviewAnalysis
		deal     *models.DealAnalysis
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		analysis = s.reviews.Analyze(ctx, *product)
	}()
	go func() {
		defer wg.Done()
		deal = s.deals.Analyze(ctx, *product)
	}()
	wg.Wait()

	return &models.Result{
		Kind:           models.KindDetails,
		Response:       s.detailNarrative(ctx, product, focusAreas, &analysis, deal),
		Product:        product,
		ReviewAnalysis: &analysis,
		DealAnalysis:   deal,
	}, nil
}

// FollowUp classifies a follow-up message against the prior result and
// dispatches to the matching flow.
func (s *Service) FollowUp(ctx context.Context, text string, prior *models.Result) (result *models.Result, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.ErrEmptyQuery
	}

	defer s.recoverToResult(&result)

	intent := s.classifyIntent(ctx, text, prior)

	if intent.Confidence == models.ConfidenceLow {
		return s.contextualReply(ctx, text, prior, intent.Intent), nil
	}

	switch intent.Intent {
	case models.IntentCompareProducts:
		ids := priorProductIDs(prior, 3)
		cmp, cmpErr := s.Compare(ctx, ids, nil)
		if cmpErr != nil {
			return s.contextualReply(ctx, text, prior, intent.Intent), nil
		}
		cmp.Intent = intent.Intent
		return cmp, nil

	case models.IntentGetDetails:
		id := matchPriorProduct(prior, text, intent.Entities)
		if id == "" {
			return s.contextualReply(ctx, text, prior, intent.Intent), nil
		}
		details, detErr := s.Details(ctx, id, intent.Entities)
		if detErr != nil {
			return s.contextualReply(ctx, text, prior, intent.Intent), nil
		}
		details.Intent = intent.Intent
		return details, nil

	case models.IntentFindAlternatives:
		ids := priorProductIDs(prior, 1)
		if len(ids) == 0 {
			return s.contextualReply(ctx, text, prior, intent.Intent), nil
		}
		alternatives, altErr := s.catalog.SimilarProducts(ctx, ids[0], 5)
		if altErr != nil || len(alternatives) == 0 {
			return s.contextualReply(ctx, text, prior, intent.Intent), nil
		}
		return &models.Result{
			Kind:               models.KindFollowUp,
			Intent:             intent.Intent,
			Response:           fmt.Sprintf("Here are %d alternatives you might consider.", len(alternatives)),
			AdditionalProducts: alternatives,
		}, nil

	case models.IntentAskAboutDeals:
		if prior == nil || len(prior.Products) == 0 {
			return s.contextualReply(ctx, text, prior, intent.Intent), nil
		}
		summary := s.deals.Summarize(ctx, prior.Products)
		return &models.Result{
			Kind:        models.KindFollowUp,
			Intent:      intent.Intent,
			Response:    summary.Narrative,
			DealSummary: summary,
		}, nil

	default:
		return s.contextualReply(ctx, text, prior, intent.Intent), nil
	}
}

func priorProductIDs(prior *models.Result, limit int) []string {
	if prior == nil {
		return nil
	}
	ids := make([]string, 0, limit)
	for _, p := range prior.Products {
		if len(ids) >= limit {
			break
		}
		ids = append(ids, p.ID)
	}
	return ids
}

// matchPriorProduct finds the prior product the user is referring to by
// matching entities or message words against product titles.
func matchPriorProduct(prior *models.Result, text string, entities []string) string {
	if prior == nil {
		return ""
	}
	needles := make([]string, 0, len(entities)+1)
	for _, e := range entities {
		needles = append(needles, strings.ToLower(e))
	}
	needles = append(needles, strings.ToLower(text))

	for _, p := range prior.Products {
		title := strings.ToLower(p.Title)
		brand := strings.ToLower(p.Brand)
		for _, needle := range needles {
			if needle == "" {
				continue
			}
			if strings.Contains(title, needle) || (brand != "" && strings.Contains(needle, brand)) {
				return p.ID
			}
		}
	}
	if len(prior.Products) > 0 {
		return prior.Products[0].ID
	}
	return ""
}
