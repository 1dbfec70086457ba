package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/cognicart/internal/models"
	"github.com/ternarybob/cognicart/internal/services/llm"
)

const assistantSystem = "You are a friendly shopping assistant. Keep responses short and concrete."

// buildSearchQuery projects a requirement onto a catalog search string:
// preferred brand, product type, and up to two required features.
func buildSearchQuery(req *models.Requirement) string {
	parts := make([]string, 0, 4)
	if len(req.BrandPreferences) > 0 {
		parts = append(parts, req.BrandPreferences[0])
	}
	if req.ProductType != "" {
		parts = append(parts, req.ProductType)
	}
	for i, feature := range req.FeaturesRequired {
		if i >= 2 {
			break
		}
		parts = append(parts, feature)
	}
	return strings.Join(parts, " ")
}

// summarize writes the natural-language response for a recommendation
// batch, with a deterministic template as fallback.
func (s *Service) summarize(ctx context.Context, query string, req *models.Requirement, products []models.EnhancedProduct) string {
	var digest strings.Builder
	for i, p := range products {
		fmt.Fprintf(&digest, "%d. %s at %.0f %s, rated %.1f", i+1, p.Title, p.Price, p.Currency, p.Rating)
		if p.ReviewAnalysis != nil {
			fmt.Fprintf(&digest, ", reviews %s", p.ReviewAnalysis.OverallSentiment)
		}
		if p.DealAnalysis != nil {
			fmt.Fprintf(&digest, ", %s", strings.ReplaceAll(p.DealAnalysis.DealType, "_", " "))
		}
		digest.WriteString("\n")
	}

	prompt := fmt.Sprintf(`The shopper asked: %q

Top recommendations:
%s
Write two or three sentences presenting these options and what stands out about the top pick. Plain text, no lists.`, query, digest.String())

	response, err := s.completion.Complete(ctx, assistantSystem, prompt)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Summary generation failed, using template response")
		return templateSummary(req, products)
	}
	return strings.TrimSpace(response)
}

func templateSummary(req *models.Requirement, products []models.EnhancedProduct) string {
	if len(products) == 0 {
		return fmt.Sprintf("I could not find any %s matching your requirements.", req.ProductType)
	}
	top := products[0]
	summary := fmt.Sprintf("I found %d good %s options. Top pick: %s at %.0f %s with a %.1f star rating",
		len(products), req.ProductType, top.Title, top.Price, top.Currency, top.Rating)
	if top.DealAnalysis != nil && top.DealAnalysis.DealType != models.DealAverageValue {
		summary += fmt.Sprintf(" (%s)", strings.ReplaceAll(top.DealAnalysis.DealType, "_", " "))
	}
	return summary + "."
}

// refinementSuggestions proposes deterministic ways to widen a search
// that found nothing.
func refinementSuggestions(req *models.Requirement) []string {
	suggestions := []string{"Try more general search terms."}
	if req.Budget.Max != nil {
		suggestions = append(suggestions, fmt.Sprintf("Consider raising your budget above %.0f.", *req.Budget.Max))
	}
	if len(req.BrandPreferences) > 0 {
		suggestions = append(suggestions, "Try searching without a brand preference.")
	}
	if len(req.FeaturesRequired) > 2 {
		suggestions = append(suggestions, "Drop one or two required features.")
	}
	return suggestions
}

// comparisonNarrative writes the comparison response, falling back to a
// deterministic template built from the comparison picks.
func (s *Service) comparisonNarrative(ctx context.Context, products []models.Product, aspects []string, reviewCmp *models.ReviewComparison, dealCmp *models.DealComparison) string {
	var digest strings.Builder
	for _, e := range reviewCmp.Entries {
		fmt.Fprintf(&digest, "%s: reviews %s (%d%% positive)\n", e.Title, e.Analysis.OverallSentiment, e.Analysis.Breakdown.Positive)
	}
	for _, e := range dealCmp.Entries {
		if e.Analysis != nil {
			fmt.Fprintf(&digest, "%s: deal score %.0f, %s\n", e.Title, e.Analysis.DealScore, strings.ReplaceAll(e.Analysis.DealType, "_", " "))
		}
	}

	focus := ""
	if len(aspects) > 0 {
		focus = fmt.Sprintf(" Focus on: %s.", strings.Join(aspects, ", "))
	}
	prompt := fmt.Sprintf(`Compare these products for a shopper.%s

%s
Write two or three sentences with a clear recommendation. Plain text.`, focus, digest.String())

	response, err := s.completion.Complete(ctx, assistantSystem, prompt)
	if err != nil {
		if dealCmp.Recommendation != "" {
			return dealCmp.Recommendation
		}
		titles := make([]string, 0, len(products))
		for _, p := range products {
			titles = append(titles, p.Title)
		}
		return fmt.Sprintf("Here is a side-by-side comparison of %s.", strings.Join(titles, " and "))
	}
	return strings.TrimSpace(response)
}

// detailNarrative writes the deep-dive response for one product.
func (s *Service) detailNarrative(ctx context.Context, product *models.Product, focusAreas []string, analysis *models.ReviewAnalysis, deal *models.DealAnalysis) string {
	focus := ""
	if len(focusAreas) > 0 {
		focus = fmt.Sprintf(" The shopper cares most about: %s.", strings.Join(focusAreas, ", "))
	}
	dealLine := ""
	if deal != nil {
		dealLine = fmt.Sprintf("Deal score %.0f/100 (%s). ", deal.DealScore, strings.ReplaceAll(deal.DealType, "_", " "))
	}
	prompt := fmt.Sprintf(`Describe this product for a shopper.%s

%s at %.0f %s, rated %.1f by %d customers.
Review sentiment: %s. %s
Summary of reviews: %s

Write two or three sentences. Plain text.`,
		focus, product.Title, product.Price, product.Currency, product.Rating, product.ReviewCount,
		analysis.OverallSentiment, dealLine, analysis.Summary)

	response, err := s.completion.Complete(ctx, assistantSystem, prompt)
	if err != nil {
		return fmt.Sprintf("%s sells for %.0f %s and holds a %.1f star rating across %d reviews. %s",
			product.Title, product.Price, product.Currency, product.Rating, product.ReviewCount, analysis.Summary)
	}
	return strings.TrimSpace(response)
}

// classifyIntent labels a follow-up message. Any failure yields the
// clarify intent at low confidence, which routes to the contextual
// reply.
func (s *Service) classifyIntent(ctx context.Context, text string, prior *models.Result) models.FollowUpIntent {
	var priorContext strings.Builder
	if prior != nil {
		for _, p := range prior.Products {
			fmt.Fprintf(&priorContext, "- %s (%s)\n", p.Title, p.ID)
		}
	}

	prompt := fmt.Sprintf(`The shopper previously saw these products:
%s
Their follow-up message: %q

Classify the intent as one of: compare_products, get_details, find_alternatives, clarify_requirements, ask_about_deals.
Respond with a JSON object:
{"intent": "...", "entities": ["product names or aspects mentioned"], "requires_new_search": false, "confidence": "high, medium, or low"}`,
		priorContext.String(), text)

	var intent models.FollowUpIntent
	if err := llm.CompleteJSON(ctx, s.completion, assistantSystem+" Output JSON only, no markdown fences.", prompt, &intent); err != nil {
		s.logger.Debug().Err(err).Msg("Intent classification failed")
		return models.FollowUpIntent{Intent: models.IntentClarifyRequirements, Confidence: models.ConfidenceLow}
	}

	switch intent.Intent {
	case models.IntentCompareProducts, models.IntentGetDetails, models.IntentFindAlternatives,
		models.IntentClarifyRequirements, models.IntentAskAboutDeals:
	default:
		intent.Intent = models.IntentClarifyRequirements
		intent.Confidence = models.ConfidenceLow
	}
	switch intent.Confidence {
	case models.ConfidenceHigh, models.ConfidenceMedium, models.ConfidenceLow:
	default:
		intent.Confidence = models.ConfidenceMedium
	}
	return intent
}

// contextualReply is the generic follow-up answer used when no specific
// flow applies.
func (s *Service) contextualReply(ctx context.Context, text string, prior *models.Result, intent string) *models.Result {
	var priorContext strings.Builder
	if prior != nil && prior.Response != "" {
		fmt.Fprintf(&priorContext, "Previous answer: %s\n", prior.Response)
	}
	prompt := fmt.Sprintf(`%sThe shopper now says: %q

Answer helpfully in one or two sentences. If their request is unclear, ask one clarifying question. Plain text.`,
		priorContext.String(), text)

	response, err := s.completion.Complete(ctx, assistantSystem, prompt)
	if err != nil {
		response = "Could you tell me a bit more about what you are looking for? For example a product type, budget, or brand."
	}

	return &models.Result{
		Kind:     models.KindFollowUp,
		Intent:   intent,
		Response: strings.TrimSpace(response),
	}
}
