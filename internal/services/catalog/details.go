package catalog

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/ternarybob/cognicart/internal/models"
)

// Detail synthesis is deterministic per product ID so repeated lookups
// and re-enrichment of the same product always produce identical output.

var positiveReviewPool = []models.Review{
	{Rating: 5, Title: "Excellent purchase", Text: "Exceeded my expectations. Build quality is great and it performs exactly as described.", Author: "Verified Buyer", Verified: true},
	{Rating: 5, Title: "Worth every rupee", Text: "Using it daily for a month now. No complaints at all, highly recommended.", Author: "Verified Buyer", Verified: true},
	{Rating: 4, Title: "Very good product", Text: "Does everything I need. Delivery was quick and packaging was solid.", Author: "Customer", Verified: true},
	{Rating: 4, Title: "Good value for money", Text: "Solid performance for the price. A few minor rough edges but nothing serious.", Author: "Customer", Verified: false},
}

var neutralReviewPool = []models.Review{
	{Rating: 3, Title: "Decent but not great", Text: "Works fine for basic use. Expected a bit more at this price point.", Author: "Customer", Verified: true},
	{Rating: 3, Title: "Average experience", Text: "Gets the job done. Battery and build are okay, nothing stands out.", Author: "Customer", Verified: false},
}

var negativeReviewPool = []models.Review{
	{Rating: 2, Title: "Disappointed", Text: "Started having issues within a few weeks. Support was slow to respond.", Author: "Customer", Verified: true},
	{Rating: 1, Title: "Not recommended", Text: "Stopped working properly after a short while. Asked for a replacement.", Author: "Customer", Verified: true},
}

var prosByType = map[string][]string{
	"smartphone":     {"great display", "reliable battery life", "good camera for the price"},
	"laptop":         {"fast boot with SSD", "comfortable keyboard", "good thermals under load"},
	"headphones":     {"effective noise cancellation", "long battery life", "comfortable fit"},
	"earbuds":        {"compact case", "stable bluetooth connection", "punchy bass"},
	"vacuum cleaner": {"strong suction", "easy to empty", "long cord reach"},
	"smartwatch":     {"bright display", "accurate health tracking", "multi-day battery"},
}

var consByType = map[string][]string{
	"smartphone":     {"bundled charger is slow", "preinstalled apps"},
	"laptop":         {"speakers are average", "display could be brighter"},
	"headphones":     {"case feels bulky", "app setup is clunky"},
	"earbuds":        {"touch controls are sensitive", "mic quality in calls"},
	"vacuum cleaner": {"a bit noisy", "hose storage is awkward"},
	"smartwatch":     {"notification handling is basic", "strap quality"},
}

func hashID(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}

// synthesizeDetails fills the detail-level fields of a product copy.
func synthesizeDetails(p models.Product) models.Product {
	detailed := p.Clone()
	seed := hashID(p.ID)

	if detailed.Description == "" {
		detailed.Description = buildDescription(&detailed)
	}
	if len(detailed.Reviews) == 0 {
		detailed.Reviews = buildReviews(&detailed, seed)
	}
	if len(detailed.Specifications) == 0 {
		detailed.Specifications = buildSpecifications(&detailed)
	}
	if len(detailed.Pros) == 0 {
		detailed.Pros = prosByType[detailed.ProductType]
	}
	if len(detailed.Cons) == 0 {
		detailed.Cons = consByType[detailed.ProductType]
	}
	return detailed
}

func buildDescription(p *models.Product) string {
	var sb strings.Builder
	sb.WriteString(p.Title)
	if len(p.Features) > 0 {
		sb.WriteString(" with ")
		sb.WriteString(strings.Join(p.Features, ", "))
	}
	sb.WriteString(fmt.Sprintf(". Rated %.1f stars by %d customers.", p.Rating, p.ReviewCount))
	return sb.String()
}

// buildReviews produces a small review sample whose tone tracks the
// product's aggregate rating.
func buildReviews(p *models.Product, seed uint64) []models.Review {
	count := 6
	if p.ReviewCount == 0 {
		return nil
	}
	if p.ReviewCount < count {
		count = p.ReviewCount
	}

	// Higher-rated products draw more reviews from the positive pool.
	positiveShare := int(float64(count) * (p.Rating / 5.0))
	negativeShare := 0
	if p.Rating < 4.0 {
		negativeShare = 1
	}
	if p.Rating < 3.0 {
		negativeShare = 2
	}
	if positiveShare+negativeShare > count {
		positiveShare = count - negativeShare
	}
	neutralShare := count - positiveShare - negativeShare

	reviews := make([]models.Review, 0, count)
	appendFrom := func(pool []models.Review, n int) {
		for i := 0; i < n; i++ {
			r := pool[(seed+uint64(len(reviews)))%uint64(len(pool))]
			r.ID = fmt.Sprintf("%s_rev_%d", p.ID, len(reviews)+1)
			r.Date = fmt.Sprintf("2025-%02d-%02d", 1+(seed>>uint(len(reviews)))%12, 1+(seed>>uint(len(reviews)+3))%28)
			reviews = append(reviews, r)
		}
	}
	appendFrom(positiveReviewPool, positiveShare)
	appendFrom(neutralReviewPool, neutralShare)
	appendFrom(negativeReviewPool, negativeShare)
	return reviews
}

func buildSpecifications(p *models.Product) map[string]string {
	specs := map[string]string{
		"Brand":        p.Brand,
		"Model":        p.Title,
		"Category":     p.Category,
		"Availability": p.Availability,
	}
	for i, feature := range p.Features {
		specs[fmt.Sprintf("Feature %d", i+1)] = feature
	}
	return specs
}
