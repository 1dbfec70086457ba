package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/models"
)

// Budget phrases like "under 40000", "below rs 15,000", "under ₹8000".
var budgetPhraseRegex = regexp.MustCompile(`(?i)(?:under|below|within|less than)\s*(?:rs\.?|inr|₹)?\s*([0-9][0-9,]*)`)

// ParseQueryBudget extracts an upper price bound from a free-text query.
// Returns 0 when the query carries no budget phrase.
func ParseQueryBudget(query string) float64 {
	m := budgetPhraseRegex.FindStringSubmatch(query)
	if m == nil {
		return 0
	}
	raw := strings.ReplaceAll(m[1], ",", "")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

// relevanceScore rates how well a product matches a query. Word hits on
// the title weigh most, then product type, brand, and features. A query
// that names the product type or brand outright earns a bonus, and an
// "under N" budget phrase rewards products inside the window while
// penalizing those above it. A small rating contribution breaks near-ties
// in favor of better-reviewed products.
func relevanceScore(p *models.Product, queryLower string, terms []string, budget float64, cfg *common.CatalogConfig) float64 {
	var score float64

	titleLower := strings.ToLower(p.Title)
	typeLower := strings.ToLower(p.ProductType)
	brandLower := strings.ToLower(p.Brand)

	for _, term := range terms {
		if len(term) < 2 {
			continue
		}
		if strings.Contains(titleLower, term) {
			score += cfg.TitleMatchWeight
		}
		if strings.Contains(typeLower, term) || strings.Contains(term, typeLower) {
			score += cfg.TypeMatchWeight
		}
		if brandLower != "" && strings.Contains(brandLower, term) {
			score += cfg.BrandMatchWeight
		}
		for _, feature := range p.Features {
			if strings.Contains(strings.ToLower(feature), term) {
				score += cfg.FeatureMatchWeight
			}
		}
	}

	if typeLower != "" && strings.Contains(queryLower, typeLower) {
		score += cfg.TypeBonus
	}
	if brandLower != "" && strings.Contains(queryLower, brandLower) {
		score += cfg.BrandBonus
	}

	// Products the query never touched stay at zero and are dropped;
	// the budget and rating adjustments only reorder actual matches.
	if score <= 0 {
		return 0
	}

	if budget > 0 {
		if p.Price <= budget {
			score += cfg.BudgetBonus
		} else {
			score -= cfg.OverBudgetPenalty
		}
	}

	score += p.Rating * cfg.RatingWeight

	return score
}

// rankByRelevance scores and orders products for a query, dropping
// non-matches (score <= 0). The sort is stable so equal scores keep
// their catalog order.
func rankByRelevance(products []models.Product, query string, limit int, cfg *common.CatalogConfig) []models.Product {
	queryLower := strings.ToLower(query)
	terms := strings.Fields(queryLower)
	budget := ParseQueryBudget(queryLower)

	type scored struct {
		product models.Product
		score   float64
	}
	matches := make([]scored, 0, len(products))
	for i := range products {
		s := relevanceScore(&products[i], queryLower, terms, budget, cfg)
		if s > 0 {
			matches = append(matches, scored{product: products[i], score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]models.Product, len(matches))
	for i, m := range matches {
		out[i] = m.product
	}
	return out
}

// similarByPrice orders candidates of the same product type by price
// proximity to the reference product.
func similarByPrice(candidates []models.Product, ref *models.Product, limit int) []models.Product {
	out := make([]models.Product, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == ref.ID {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di := out[i].Price - ref.Price
		if di < 0 {
			di = -di
		}
		dj := out[j].Price - ref.Price
		if dj < 0 {
			dj = -dj
		}
		return di < dj
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
