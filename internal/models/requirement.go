package models

// Urgency describes how soon the shopper needs the product.
type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencySoon      Urgency = "soon"
	UrgencyFlexible  Urgency = "flexible"
)

// Sentiment labels the emotional tone of text or a review set.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentMixed    Sentiment = "mixed"
)

// Budget is a price window. Nil bounds mean unbounded on that side.
type Budget struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// Requirement is the structured interpretation of a free-text shopping
// query. It is built once per query and not modified afterwards.
type Requirement struct {
	Category         string    `json:"category,omitempty"`
	ProductType      string    `json:"product_type,omitempty"`
	Budget           Budget    `json:"budget"`
	BrandPreferences []string  `json:"brand_preferences,omitempty"`
	FeaturesRequired []string  `json:"features_required,omitempty"`
	SizeRequirement  string    `json:"size_requirement,omitempty"`
	ColorPreferences []string  `json:"color_preferences,omitempty"`
	UseCase          string    `json:"use_case,omitempty"`
	PriorityFeatures []string  `json:"priority_features,omitempty"`
	WantsDeals       bool      `json:"wants_deals"`
	WantsComparison  bool      `json:"wants_comparison"`
	Urgency          Urgency   `json:"urgency,omitempty"`
	Sentiment        Sentiment `json:"sentiment,omitempty"`
	RawQuery         string    `json:"raw_query,omitempty"`
}

// Normalize repairs inconsistent field values instead of rejecting them.
// An inverted budget window is swapped, unknown enum values fall back to
// their defaults.
func (r *Requirement) Normalize() {
	if r.Budget.Min != nil && r.Budget.Max != nil && *r.Budget.Min > *r.Budget.Max {
		r.Budget.Min, r.Budget.Max = r.Budget.Max, r.Budget.Min
	}
	switch r.Urgency {
	case UrgencyImmediate, UrgencySoon, UrgencyFlexible:
	default:
		r.Urgency = UrgencyFlexible
	}
	switch r.Sentiment {
	case SentimentPositive, SentimentNeutral, SentimentNegative, SentimentMixed:
	default:
		r.Sentiment = SentimentNeutral
	}
}

// BudgetMax returns the upper budget bound, or 0 when unbounded.
func (r *Requirement) BudgetMax() float64 {
	if r.Budget.Max != nil {
		return *r.Budget.Max
	}
	return 0
}
