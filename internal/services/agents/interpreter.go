package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
	"github.com/ternarybob/cognicart/internal/services/catalog"
	"github.com/ternarybob/cognicart/internal/services/llm"
)

// Interpreter turns a free-text shopping query into a structured
// Requirement. The AI path is preferred; any failure falls back to a
// keyword-based guess, so Parse never returns an error.
type Interpreter struct {
	svc    interfaces.CompletionService
	logger arbor.ILogger
}

// NewInterpreter creates a query interpreter.
func NewInterpreter(svc interfaces.CompletionService, logger arbor.ILogger) *Interpreter {
	return &Interpreter{svc: svc, logger: logger}
}

const interpreterSystem = "You are a shopping assistant that extracts structured requirements from user queries. Output JSON only, no markdown fences."

// requirementPayload mirrors the JSON schema requested from the model.
// Fields are decoded tolerantly and validated afterwards.
type requirementPayload struct {
	Category    string `json:"category"`
	ProductType string `json:"product_type"`
	Budget      struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	} `json:"budget"`
	BrandPreferences []string `json:"brand_preferences"`
	FeaturesRequired []string `json:"features_required"`
	SizeRequirement  string   `json:"size_requirement"`
	ColorPreferences []string `json:"color_preferences"`
	UseCase          string   `json:"use_case"`
	PriorityFeatures []string `json:"priority_features"`
	WantsDeals       bool     `json:"wants_deals"`
	WantsComparison  bool     `json:"wants_comparison"`
	Urgency          string   `json:"urgency"`
	Sentiment        string   `json:"sentiment"`
}

// Parse extracts a Requirement from the query text.
func (a *Interpreter) Parse(ctx context.Context, text string) models.Requirement {
	req, err := a.parseWithAI(ctx, text)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Query interpretation failed, using keyword fallback")
		req = a.guessRequirement(text)
	}
	req.RawQuery = text
	req.Normalize()
	return req
}

func (a *Interpreter) parseWithAI(ctx context.Context, text string) (models.Requirement, error) {
	prompt := fmt.Sprintf(`Analyze this shopping query and extract the requirements.

Query: %q

Respond with a JSON object using exactly these fields:
{
  "category": "broad category such as electronics or home",
  "product_type": "specific product type such as laptop or smartphone",
  "budget": {"min": null, "max": null},
  "brand_preferences": [],
  "features_required": [],
  "size_requirement": "",
  "color_preferences": [],
  "use_case": "",
  "priority_features": [],
  "wants_deals": false,
  "wants_comparison": false,
  "urgency": "immediate, soon, or flexible",
  "sentiment": "positive, neutral, or negative"
}

Use null for unknown budget bounds and empty values for anything not mentioned.`, text)

	var payload requirementPayload
	if err := llm.CompleteJSON(ctx, a.svc, interpreterSystem, prompt, &payload); err != nil {
		return models.Requirement{}, err
	}

	req := models.Requirement{
		Category:         payload.Category,
		ProductType:      payload.ProductType,
		BrandPreferences: payload.BrandPreferences,
		FeaturesRequired: payload.FeaturesRequired,
		SizeRequirement:  payload.SizeRequirement,
		ColorPreferences: payload.ColorPreferences,
		UseCase:          payload.UseCase,
		PriorityFeatures: payload.PriorityFeatures,
		WantsDeals:       payload.WantsDeals,
		WantsComparison:  payload.WantsComparison,
		Urgency:          models.Urgency(payload.Urgency),
		Sentiment:        models.Sentiment(payload.Sentiment),
	}
	req.Budget.Min = payload.Budget.Min
	req.Budget.Max = payload.Budget.Max
	if req.ProductType == "" {
		// A requirement without a product type cannot drive a search
		return models.Requirement{}, fmt.Errorf("interpretation returned no product type")
	}
	return req, nil
}

// productTypeRules map query keywords to product types, first match wins.
var productTypeRules = []struct {
	keyword     string
	productType string
	category    string
}{
	{"laptop", "laptop", "electronics"},
	{"notebook", "laptop", "electronics"},
	{"smartphone", "smartphone", "electronics"},
	{"phone", "smartphone", "electronics"},
	{"mobile", "smartphone", "electronics"},
	{"earbud", "earbuds", "electronics"},
	{"airdope", "earbuds", "electronics"},
	{"headphone", "headphones", "electronics"},
	{"earphone", "headphones", "electronics"},
	{"vacuum", "vacuum cleaner", "home"},
	{"smartwatch", "smartwatch", "electronics"},
	{"smart watch", "smartwatch", "electronics"},
	{"watch", "smartwatch", "electronics"},
	{"tablet", "tablet", "electronics"},
	{"tv", "television", "electronics"},
	{"television", "television", "electronics"},
}

// guessRequirement is the deterministic fallback interpretation.
func (a *Interpreter) guessRequirement(text string) models.Requirement {
	lower := strings.ToLower(text)

	req := models.Requirement{
		Category:    "general",
		ProductType: "product",
	}
	for _, rule := range productTypeRules {
		if strings.Contains(lower, rule.keyword) {
			req.ProductType = rule.productType
			req.Category = rule.category
			break
		}
	}

	if budget := catalog.ParseQueryBudget(lower); budget > 0 {
		req.Budget.Max = &budget
	}
	req.WantsDeals = strings.Contains(lower, "deal") || strings.Contains(lower, "discount") || strings.Contains(lower, "offer")
	req.WantsComparison = strings.Contains(lower, "compare") || strings.Contains(lower, " vs ") || strings.Contains(lower, "versus")

	return req
}

// SuggestClarifications proposes questions that would sharpen a vague
// requirement. Returns nil when the AI call fails.
func (a *Interpreter) SuggestClarifications(ctx context.Context, req *models.Requirement) []string {
	prompt := fmt.Sprintf(`A shopper is looking for: %s (category: %s, use case: %q, budget max: %.0f).
Suggest up to 3 short clarifying questions that would most improve the recommendation.
Respond with a JSON object: {"questions": ["...", "..."]}`,
		req.ProductType, req.Category, req.UseCase, req.BudgetMax())

	var payload struct {
		Questions []string `json:"questions"`
	}
	if err := llm.CompleteJSON(ctx, a.svc, interpreterSystem, prompt, &payload); err != nil {
		a.logger.Debug().Err(err).Msg("Clarification suggestions unavailable")
		return nil
	}
	if len(payload.Questions) > 3 {
		payload.Questions = payload.Questions[:3]
	}
	return payload.Questions
}
