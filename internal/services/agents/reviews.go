package agents

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
	"github.com/ternarybob/cognicart/internal/services/llm"
)

// ReviewAnalyzer distills a product's review set into sentiment,
// themes, and red flags. The AI path reads a compact review digest;
// any failure falls back to a pure ratings computation. Statistics are
// always derived directly from the raw reviews, never from the AI.
type ReviewAnalyzer struct {
	svc    interfaces.CompletionService
	logger arbor.ILogger
}

// NewReviewAnalyzer creates a review analyzer.
func NewReviewAnalyzer(svc interfaces.CompletionService, logger arbor.ILogger) *ReviewAnalyzer {
	return &ReviewAnalyzer{svc: svc, logger: logger}
}

const reviewSystem = "You are a product review analyst. Output JSON only, no markdown fences."

type reviewPayload struct {
	OverallSentiment string `json:"overall_sentiment"`
	Breakdown        struct {
		Positive int `json:"positive"`
		Neutral  int `json:"neutral"`
		Negative int `json:"negative"`
	} `json:"sentiment_breakdown"`
	KeyThemes  []string `json:"key_themes"`
	Pros       []string `json:"pros"`
	Cons       []string `json:"cons"`
	RedFlags   []string `json:"red_flags"`
	Summary    string   `json:"summary"`
	Confidence string   `json:"confidence"`
}

// Analyze produces the review analysis for one product. It never
// returns an error; a product with no reviews gets the fixed neutral
// default and an AI failure gets the ratings-derived fallback.
func (a *ReviewAnalyzer) Analyze(ctx context.Context, product models.Product) models.ReviewAnalysis {
	stats := ComputeReviewStatistics(product.Reviews)

	if len(product.Reviews) == 0 {
		analysis := NeutralReviewAnalysis()
		analysis.Statistics = stats
		return analysis
	}

	analysis, err := a.analyzeWithAI(ctx, product)
	if err != nil {
		a.logger.Warn().Err(err).Str("product_id", product.ID).Msg("AI review analysis failed, using ratings fallback")
		analysis = fallbackFromRatings(product.Reviews)
	}
	analysis.Statistics = stats
	return analysis
}

func (a *ReviewAnalyzer) analyzeWithAI(ctx context.Context, product models.Product) (models.ReviewAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze these customer reviews for %q.

%s
Respond with a JSON object:
{
  "overall_sentiment": "positive, neutral, negative, or mixed",
  "sentiment_breakdown": {"positive": 0, "neutral": 0, "negative": 0},
  "key_themes": [],
  "pros": [],
  "cons": [],
  "red_flags": [],
  "summary": "one or two sentences",
  "confidence": "high, medium, or low"
}
The three breakdown values are percentages and must sum to 100.`,
		product.Title, reviewDigest(product.Reviews))

	var payload reviewPayload
	if err := llm.CompleteJSON(ctx, a.svc, reviewSystem, prompt, &payload); err != nil {
		return models.ReviewAnalysis{}, err
	}

	breakdown := models.SentimentBreakdown{
		Positive: payload.Breakdown.Positive,
		Neutral:  payload.Breakdown.Neutral,
		Negative: payload.Breakdown.Negative,
	}
	normalized, ok := normalizeBreakdown(breakdown)
	if !ok {
		return models.ReviewAnalysis{}, fmt.Errorf("sentiment breakdown is unusable: %+v", breakdown)
	}

	analysis := models.ReviewAnalysis{
		OverallSentiment: models.Sentiment(payload.OverallSentiment),
		Breakdown:        normalized,
		KeyThemes:        payload.KeyThemes,
		Pros:             payload.Pros,
		Cons:             payload.Cons,
		RedFlags:         payload.RedFlags,
		Summary:          payload.Summary,
		Confidence:       payload.Confidence,
	}
	switch analysis.OverallSentiment {
	case models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative, models.SentimentMixed:
	default:
		analysis.OverallSentiment = sentimentFromBreakdown(normalized)
	}
	switch analysis.Confidence {
	case models.ConfidenceHigh, models.ConfidenceMedium, models.ConfidenceLow:
	default:
		analysis.Confidence = models.ConfidenceMedium
	}
	return analysis, nil
}

// reviewDigest renders reviews one per line, text truncated to keep the
// prompt bounded.
func reviewDigest(reviews []models.Review) string {
	var sb strings.Builder
	for _, r := range reviews {
		fmt.Fprintf(&sb, "Rating: %.1f/5", r.Rating)
		if r.Title != "" {
			fmt.Fprintf(&sb, " | Title: %s", r.Title)
		}
		text := truncateText(r.Text, 300)
		if text != "" {
			fmt.Fprintf(&sb, " | Review: %s", text)
		}
		if r.Verified {
			sb.WriteString(" | Verified Purchase")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// truncateText cuts text to at most max bytes without splitting a
// UTF-8 rune at the boundary.
func truncateText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// NeutralReviewAnalysis is the fixed default for products with no
// reviews.
func NeutralReviewAnalysis() models.ReviewAnalysis {
	return models.ReviewAnalysis{
		OverallSentiment: models.SentimentNeutral,
		Breakdown:        models.SentimentBreakdown{Positive: 50, Neutral: 30, Negative: 20},
		Summary:          "No reviews available for this product yet.",
		Confidence:       models.ConfidenceLow,
	}
}

// fallbackFromRatings derives the analysis purely from star ratings:
// 4 and up counts positive, 2 and below negative, the rest neutral.
func fallbackFromRatings(reviews []models.Review) models.ReviewAnalysis {
	var positive, negative int
	for _, r := range reviews {
		switch {
		case r.Rating >= 4:
			positive++
		case r.Rating <= 2:
			negative++
		}
	}
	total := len(reviews)
	neutral := total - positive - negative

	posPct := int(math.Round(float64(positive) / float64(total) * 100))
	negPct := int(math.Round(float64(negative) / float64(total) * 100))
	neuPct := 100 - posPct - negPct

	breakdown := models.SentimentBreakdown{Positive: posPct, Neutral: neuPct, Negative: negPct}

	sentiment := models.SentimentNeutral
	if positive > neutral && positive > negative {
		sentiment = models.SentimentPositive
	} else if negative > positive && negative > neutral {
		sentiment = models.SentimentNegative
	}

	return models.ReviewAnalysis{
		OverallSentiment: sentiment,
		Breakdown:        breakdown,
		Summary:          fmt.Sprintf("Based on %d ratings: %d positive, %d neutral, %d negative.", total, positive, neutral, negative),
		Confidence:       models.ConfidenceMedium,
	}
}

// normalizeBreakdown repairs a breakdown whose values do not sum to 100.
// Returns false when the values are unusable (all zero or negative).
func normalizeBreakdown(b models.SentimentBreakdown) (models.SentimentBreakdown, bool) {
	if b.Positive < 0 || b.Neutral < 0 || b.Negative < 0 {
		return b, false
	}
	sum := b.Sum()
	if sum <= 0 {
		return b, false
	}
	if sum >= 99 && sum <= 101 {
		return b, true
	}
	pos := int(math.Round(float64(b.Positive) / float64(sum) * 100))
	neg := int(math.Round(float64(b.Negative) / float64(sum) * 100))
	return models.SentimentBreakdown{Positive: pos, Neutral: 100 - pos - neg, Negative: neg}, true
}

func sentimentFromBreakdown(b models.SentimentBreakdown) models.Sentiment {
	if b.Positive > b.Neutral && b.Positive > b.Negative {
		return models.SentimentPositive
	}
	if b.Negative > b.Positive && b.Negative > b.Neutral {
		return models.SentimentNegative
	}
	return models.SentimentNeutral
}

// ComputeReviewStatistics derives aggregate statistics from the raw
// review set.
func ComputeReviewStatistics(reviews []models.Review) models.ReviewStatistics {
	stats := models.ReviewStatistics{
		TotalReviews:       len(reviews),
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return stats
	}

	var sum float64
	var verified int
	for _, r := range reviews {
		sum += r.Rating
		bucket := int(math.Round(r.Rating))
		if bucket < 1 {
			bucket = 1
		}
		if bucket > 5 {
			bucket = 5
		}
		stats.RatingDistribution[bucket]++
		if r.Verified {
			verified++
		}
	}
	stats.AverageRating = math.Round(sum/float64(len(reviews))*10) / 10
	stats.VerifiedPercentage = math.Round(float64(verified)/float64(len(reviews))*1000) / 10
	return stats
}

// Compare analyzes each product's reviews and asks the AI for a
// cross-product narrative. The narrative fields stay empty when the AI
// call fails; the per-product analyses are always present.
func (a *ReviewAnalyzer) Compare(ctx context.Context, products []models.Product) models.ReviewComparison {
	comparison := models.ReviewComparison{
		Entries: make([]models.ReviewComparisonEntry, 0, len(products)),
	}
	for _, p := range products {
		comparison.Entries = append(comparison.Entries, models.ReviewComparisonEntry{
			ProductID: p.ID,
			Title:     p.Title,
			Analysis:  a.Analyze(ctx, p),
		})
	}

	var digest strings.Builder
	for _, e := range comparison.Entries {
		fmt.Fprintf(&digest, "%s: sentiment %s (%d%% positive), summary: %s\n",
			e.Title, e.Analysis.OverallSentiment, e.Analysis.Breakdown.Positive, e.Analysis.Summary)
	}
	prompt := fmt.Sprintf(`Compare these products based on their review analyses:

%s
Respond with a JSON object: {"summary": "...", "recommendation": "..."}`, digest.String())

	var payload struct {
		Summary        string `json:"summary"`
		Recommendation string `json:"recommendation"`
	}
	if err := llm.CompleteJSON(ctx, a.svc, reviewSystem, prompt, &payload); err != nil {
		a.logger.Debug().Err(err).Msg("Review comparison narrative unavailable")
		return comparison
	}
	comparison.Summary = payload.Summary
	comparison.Recommendation = payload.Recommendation
	return comparison
}
