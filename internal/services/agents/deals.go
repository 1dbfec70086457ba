package agents

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
	"github.com/ternarybob/cognicart/internal/services/llm"
)

// DealAnalyzer assesses whether a product's price represents good
// value. The AI assessment feeds a deterministic score; when the AI is
// unavailable a rule-based assessment takes its place, so Analyze never
// returns an error.
type DealAnalyzer struct {
	svc    interfaces.CompletionService
	logger arbor.ILogger
}

// NewDealAnalyzer creates a deal analyzer.
func NewDealAnalyzer(svc interfaces.CompletionService, logger arbor.ILogger) *DealAnalyzer {
	return &DealAnalyzer{svc: svc, logger: logger}
}

const dealSystem = "You are a pricing analyst for consumer products. Output JSON only, no markdown fences."

type dealPayload struct {
	ValueRating          int      `json:"value_rating"`
	ValueAssessment      string   `json:"value_assessment"`
	MarketPosition       string   `json:"market_position"`
	DealIndicators       []string `json:"deal_indicators"`
	ComparablePriceRange string   `json:"comparable_price_range"`
	Recommendation       string   `json:"recommendation"`
}

// Analyze produces the deal analysis for one product. Returns nil for
// products without a usable price.
func (a *DealAnalyzer) Analyze(ctx context.Context, product models.Product) *models.DealAnalysis {
	if product.Price <= 0 {
		return nil
	}

	payload, err := a.assessWithAI(ctx, product)
	if err != nil {
		a.logger.Warn().Err(err).Str("product_id", product.ID).Msg("AI deal assessment failed, using rule-based fallback")
		payload = fallbackAssessment(product)
	}

	if payload.ValueRating < 0 {
		payload.ValueRating = 0
	}
	if payload.ValueRating > 10 {
		payload.ValueRating = 10
	}

	analysis := &models.DealAnalysis{
		DealScore:       dealScore(product, payload.ValueRating),
		DealType:        dealType(payload.ValueRating, payload.Recommendation),
		MarketPosition:  payload.MarketPosition,
		ValueRating:     payload.ValueRating,
		ValueAssessment: payload.ValueAssessment,
		DealIndicators:  payload.DealIndicators,
		Savings:         estimateSavings(payload.ComparablePriceRange, product.Price),
		Recommendation:  payload.Recommendation,
	}
	return analysis
}

func (a *DealAnalyzer) assessWithAI(ctx context.Context, product models.Product) (dealPayload, error) {
	prompt := fmt.Sprintf(`Assess the value of this product at its current price.

Product: %s
Brand: %s
Price: %.0f %s
Rating: %.1f stars from %d reviews
Features: %s

Respond with a JSON object:
{
  "value_rating": 0-10,
  "value_assessment": "one sentence",
  "market_position": "budget, mid-range, or premium for its category",
  "deal_indicators": [],
  "comparable_price_range": "typical market range, e.g. ₹15,000 - ₹20,000",
  "recommendation": "strong_buy, good_buy, consider, or wait"
}`,
		product.Title, product.Brand, product.Price, product.Currency,
		product.Rating, product.ReviewCount, strings.Join(product.Features, ", "))

	var payload dealPayload
	if err := llm.CompleteJSON(ctx, a.svc, dealSystem, prompt, &payload); err != nil {
		return dealPayload{}, err
	}
	if payload.ValueRating == 0 && payload.ValueAssessment == "" {
		return dealPayload{}, fmt.Errorf("deal assessment returned no content")
	}
	return payload, nil
}

// fallbackAssessment derives a value rating from the listing signals
// alone: price band for market position, rating and review volume for
// value bumps.
func fallbackAssessment(product models.Product) dealPayload {
	position := "premium segment"
	switch {
	case product.Price < 5000:
		position = "budget segment"
	case product.Price < 20000:
		position = "mid-range"
	case product.Price < 50000:
		position = "upper mid-range"
	}

	valueRating := 5
	if product.Rating >= 4.3 {
		valueRating += 2
	} else if product.Rating >= 4.0 {
		valueRating++
	}
	if product.ReviewCount >= 10000 {
		valueRating++
	}

	recommendation := "consider"
	if valueRating >= 7 {
		recommendation = "good_buy"
	}

	indicators := []string{fmt.Sprintf("%.1f star rating across %d reviews", product.Rating, product.ReviewCount)}

	return dealPayload{
		ValueRating:     valueRating,
		ValueAssessment: fmt.Sprintf("Standard pricing for the %s.", position),
		MarketPosition:  position,
		DealIndicators:  indicators,
		Recommendation:  recommendation,
	}
}

// dealScore starts at a neutral 50 and adds capped contributions from
// the rating, review volume, and value rating. Always within [0, 100].
func dealScore(product models.Product, valueRating int) float64 {
	score := 50.0
	score += math.Min(product.Rating*5, 25)
	score += math.Min(float64(product.ReviewCount)/100, 15)
	score += float64(valueRating)
	return math.Max(0, math.Min(100, score))
}

func dealType(valueRating int, recommendation string) string {
	rec := strings.ToLower(strings.TrimSpace(recommendation))
	switch {
	case valueRating >= 8 || rec == "strong_buy":
		return models.DealExcellentValue
	case valueRating >= 7 || rec == "good_buy":
		return models.DealGoodValue
	case valueRating >= 6:
		return models.DealFairValue
	default:
		return models.DealAverageValue
	}
}

// Currency-prefixed amounts like "₹15,000", "Rs. 20000", "INR 8,999".
var amountRegex = regexp.MustCompile(`(?i)(?:₹|rs\.?|inr)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

// estimateSavings parses the comparable price range and positions the
// current price against its midpoint. Any parse failure degrades to a
// zero-savings estimate with the market price pinned to the current
// price.
func estimateSavings(rangeText string, currentPrice float64) models.SavingsEstimate {
	zero := models.SavingsEstimate{
		EstimatedMarketPrice: currentPrice,
		CurrentPrice:         currentPrice,
	}

	matches := amountRegex.FindAllStringSubmatch(rangeText, -1)
	if len(matches) < 2 {
		return zero
	}
	low, err1 := strconv.ParseFloat(strings.ReplaceAll(matches[0][1], ",", ""), 64)
	high, err2 := strconv.ParseFloat(strings.ReplaceAll(matches[1][1], ",", ""), 64)
	if err1 != nil || err2 != nil || low <= 0 || high <= 0 {
		return zero
	}

	market := (low + high) / 2
	savings := market - currentPrice
	if savings <= 0 {
		return zero
	}

	return models.SavingsEstimate{
		EstimatedMarketPrice: market,
		CurrentPrice:         currentPrice,
		EstimatedSavings:     savings,
		SavingsPercentage:    math.Round(savings/market*1000) / 10,
	}
}

// FallbackAnalysis builds the deal analysis from the rule-based
// assessment alone. Used when a product's enrichment must degrade to a
// placeholder without touching the AI.
func (a *DealAnalyzer) FallbackAnalysis(product models.Product) *models.DealAnalysis {
	if product.Price <= 0 {
		return nil
	}
	payload := fallbackAssessment(product)
	return &models.DealAnalysis{
		DealScore:       dealScore(product, payload.ValueRating),
		DealType:        dealType(payload.ValueRating, payload.Recommendation),
		MarketPosition:  payload.MarketPosition,
		ValueRating:     payload.ValueRating,
		ValueAssessment: payload.ValueAssessment,
		DealIndicators:  payload.DealIndicators,
		Savings:         estimateSavings("", product.Price),
		Recommendation:  payload.Recommendation,
	}
}

// Summarize aggregates the deal outlook across an enriched batch. The
// narrative comes from the AI with a deterministic fallback.
func (a *DealAnalyzer) Summarize(ctx context.Context, products []models.EnhancedProduct) *models.DealSummary {
	summary := &models.DealSummary{}
	var total float64
	for _, p := range products {
		if p.DealAnalysis == nil {
			continue
		}
		summary.TotalAnalyzed++
		total += p.DealAnalysis.DealScore
		switch p.DealAnalysis.DealType {
		case models.DealExcellentValue:
			summary.ExcellentDeals++
			summary.Highlights = append(summary.Highlights, p.Title)
		case models.DealGoodValue:
			summary.GoodDeals++
		}
	}
	if summary.TotalAnalyzed > 0 {
		summary.AverageScore = math.Round(total/float64(summary.TotalAnalyzed)*10) / 10
	}

	prompt := fmt.Sprintf(`Write one short paragraph summarizing the deal outlook: %d products analyzed, %d excellent deals, %d good deals, average deal score %.1f out of 100.
Respond with a JSON object: {"narrative": "..."}`,
		summary.TotalAnalyzed, summary.ExcellentDeals, summary.GoodDeals, summary.AverageScore)

	var payload struct {
		Narrative string `json:"narrative"`
	}
	if err := llm.CompleteJSON(ctx, a.svc, dealSystem, prompt, &payload); err != nil {
		summary.Narrative = fmt.Sprintf("%d of %d products stand out as strong value; average deal score %.1f.",
			summary.ExcellentDeals+summary.GoodDeals, summary.TotalAnalyzed, summary.AverageScore)
		return summary
	}
	summary.Narrative = payload.Narrative
	return summary
}

// PriceAlerts flags products against a budget limit. Pure computation,
// no AI involved.
func PriceAlerts(products []models.Product, budgetLimit float64) []models.PriceAlert {
	if budgetLimit <= 0 {
		return nil
	}
	var alerts []models.PriceAlert
	for _, p := range products {
		switch {
		case p.Price > budgetLimit:
			alerts = append(alerts, models.PriceAlert{
				ProductID: p.ID,
				Title:     p.Title,
				Price:     p.Price,
				Message:   fmt.Sprintf("Priced %.0f above your %.0f budget.", p.Price-budgetLimit, budgetLimit),
				Severity:  "warning",
			})
		case p.Price > budgetLimit*0.9:
			alerts = append(alerts, models.PriceAlert{
				ProductID: p.ID,
				Title:     p.Title,
				Price:     p.Price,
				Message:   "Close to your budget limit.",
				Severity:  "info",
			})
		}
	}
	return alerts
}
