package models

// Confidence levels for AI-derived analyses.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// SentimentBreakdown is a percentage split over a review set. The three
// values always sum to 100 (an off-by-one from rounding is tolerated).
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Sum returns positive + neutral + negative.
func (b SentimentBreakdown) Sum() int {
	return b.Positive + b.Neutral + b.Negative
}

// ReviewStatistics are computed directly from the raw reviews and are
// present regardless of whether the AI analysis succeeded.
type ReviewStatistics struct {
	TotalReviews       int         `json:"total_reviews"`
	AverageRating      float64     `json:"average_rating"`
	RatingDistribution map[int]int `json:"rating_distribution"`
	VerifiedPercentage float64     `json:"verified_percentage"`
}

// ReviewAnalysis is the outcome of analyzing a product's review set.
type ReviewAnalysis struct {
	OverallSentiment Sentiment          `json:"overall_sentiment"`
	Breakdown        SentimentBreakdown `json:"sentiment_breakdown"`
	KeyThemes        []string           `json:"key_themes,omitempty"`
	Pros             []string           `json:"pros,omitempty"`
	Cons             []string           `json:"cons,omitempty"`
	RedFlags         []string           `json:"red_flags,omitempty"`
	Summary          string             `json:"summary,omitempty"`
	Confidence       string             `json:"confidence"`
	Statistics       ReviewStatistics   `json:"statistics"`
}

// Deal type labels ordered from best to worst value.
const (
	DealExcellentValue = "excellent_value"
	DealGoodValue      = "good_value"
	DealFairValue      = "fair_value"
	DealAverageValue   = "average_value"
)

// SavingsEstimate compares the current price against an estimated market
// price. When no estimate could be derived the market price equals the
// current price and savings are zero.
type SavingsEstimate struct {
	EstimatedMarketPrice float64 `json:"estimated_market_price"`
	CurrentPrice         float64 `json:"current_price"`
	EstimatedSavings     float64 `json:"estimated_savings"`
	SavingsPercentage    float64 `json:"savings_percentage"`
}

// DealAnalysis is the value assessment of a single product.
// DealScore is always within [0, 100].
type DealAnalysis struct {
	DealScore       float64         `json:"deal_score"`
	DealType        string          `json:"deal_type"`
	MarketPosition  string          `json:"market_position,omitempty"`
	ValueRating     int             `json:"value_rating"`
	ValueAssessment string          `json:"value_assessment,omitempty"`
	DealIndicators  []string        `json:"deal_indicators,omitempty"`
	Savings         SavingsEstimate `json:"savings_estimate"`
	Recommendation  string          `json:"recommendation,omitempty"`
}

// EnhancedProduct is a product plus its enrichment results. It exists
// only inside result payloads and is never stored.
type EnhancedProduct struct {
	Product
	ReviewAnalysis *ReviewAnalysis `json:"review_analysis,omitempty"`
	DealAnalysis   *DealAnalysis   `json:"deal_analysis,omitempty"`
}

// ReviewComparisonEntry pairs one compared product with its analysis.
type ReviewComparisonEntry struct {
	ProductID string         `json:"product_id"`
	Title     string         `json:"title"`
	Analysis  ReviewAnalysis `json:"analysis"`
}

// ReviewComparison holds per-product review analyses plus an AI-written
// narrative. The narrative fields are empty when the AI call failed.
type ReviewComparison struct {
	Entries        []ReviewComparisonEntry `json:"entries"`
	Summary        string                  `json:"summary,omitempty"`
	Recommendation string                  `json:"recommendation,omitempty"`
}

// DealComparisonEntry pairs one compared product with its deal analysis.
type DealComparisonEntry struct {
	ProductID string        `json:"product_id"`
	Title     string        `json:"title"`
	Price     float64       `json:"price"`
	Analysis  *DealAnalysis `json:"analysis,omitempty"`
}

// DealComparison holds per-product deal analyses plus picks.
type DealComparison struct {
	Entries          []DealComparisonEntry `json:"entries"`
	BestOverallValue string                `json:"best_overall_value,omitempty"`
	BestBudgetOption string                `json:"best_budget_option,omitempty"`
	Recommendation   string                `json:"recommendation,omitempty"`
}

// DealSummary aggregates the deal outlook across a product batch.
type DealSummary struct {
	TotalAnalyzed  int      `json:"total_analyzed"`
	ExcellentDeals int      `json:"excellent_deals"`
	GoodDeals      int      `json:"good_deals"`
	AverageScore   float64  `json:"average_score"`
	Highlights     []string `json:"highlights,omitempty"`
	Narrative      string   `json:"narrative,omitempty"`
}

// PriceAlert flags a product against a budget limit.
type PriceAlert struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Message   string  `json:"message"`
	Severity  string  `json:"severity"`
}

// Follow-up intent labels produced by the intent classifier.
const (
	IntentCompareProducts     = "compare_products"
	IntentGetDetails          = "get_details"
	IntentFindAlternatives    = "find_alternatives"
	IntentClarifyRequirements = "clarify_requirements"
	IntentAskAboutDeals       = "ask_about_deals"
)

// FollowUpIntent is the classified intent of a follow-up message.
type FollowUpIntent struct {
	Intent     string   `json:"intent"`
	Entities   []string `json:"entities,omitempty"`
	NewSearch  bool     `json:"requires_new_search"`
	Confidence string   `json:"confidence"`
}
