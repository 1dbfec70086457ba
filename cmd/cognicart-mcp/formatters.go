package main

import (
	"fmt"
	"strings"

	"github.com/ternarybob/cognicart/internal/models"
)

func formatSearchResult(result *models.Result) string {
	if result == nil {
		return "No result."
	}
	if result.Kind == models.KindError {
		return fmt.Sprintf("Error: %s", result.Message)
	}

	var sb strings.Builder
	if result.Response != "" {
		sb.WriteString(result.Response)
		sb.WriteString("\n\n")
	}
	if result.Kind == models.KindNoProducts {
		sb.WriteString(result.Message)
		if len(result.Suggestions) > 0 {
			sb.WriteString("\n\nSuggestions:\n")
			for _, s := range result.Suggestions {
				sb.WriteString(fmt.Sprintf("- %s\n", s))
			}
		}
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("## Top Recommendations (%d found)\n\n", result.TotalFound))
	for i, p := range result.Products {
		sb.WriteString(fmt.Sprintf("### %d. %s\n", i+1, p.Title))
		sb.WriteString(fmt.Sprintf("- **ID:** %s\n", p.ID))
		sb.WriteString(fmt.Sprintf("- **Price:** %s %.0f\n", p.Currency, p.Price))
		sb.WriteString(fmt.Sprintf("- **Rating:** %.1f (%d reviews)\n", p.Rating, p.ReviewCount))
		if p.ReviewAnalysis != nil {
			sb.WriteString(fmt.Sprintf("- **Sentiment:** %s (%d%% positive)\n",
				p.ReviewAnalysis.OverallSentiment, p.ReviewAnalysis.Breakdown.Positive))
		}
		if p.DealAnalysis != nil {
			sb.WriteString(fmt.Sprintf("- **Deal:** %s (score %.0f/100)\n",
				p.DealAnalysis.DealType, p.DealAnalysis.DealScore))
		}
		sb.WriteString("\n")
	}

	if len(result.AdditionalProducts) > 0 {
		sb.WriteString("## Also Matching\n\n")
		for _, p := range result.AdditionalProducts {
			sb.WriteString(fmt.Sprintf("- %s (%s, %s %.0f)\n", p.Title, p.ID, p.Currency, p.Price))
		}
	}

	return sb.String()
}

func formatComparisonResult(result *models.Result) string {
	if result == nil {
		return "No result."
	}
	if result.Kind == models.KindError {
		return fmt.Sprintf("Error: %s", result.Message)
	}

	var sb strings.Builder
	sb.WriteString("## Product Comparison\n\n")
	if result.Response != "" {
		sb.WriteString(result.Response)
		sb.WriteString("\n\n")
	}

	if result.ReviewComparison != nil {
		sb.WriteString("### Reviews\n\n")
		for _, entry := range result.ReviewComparison.Entries {
			sb.WriteString(fmt.Sprintf("**%s** (%s): %s sentiment, %d%% positive\n",
				entry.Title, entry.ProductID,
				entry.Analysis.OverallSentiment, entry.Analysis.Breakdown.Positive))
		}
		if result.ReviewComparison.Summary != "" {
			sb.WriteString("\n" + result.ReviewComparison.Summary + "\n")
		}
		sb.WriteString("\n")
	}

	if result.DealComparison != nil {
		sb.WriteString("### Value\n\n")
		for _, entry := range result.DealComparison.Entries {
			if entry.Analysis != nil {
				sb.WriteString(fmt.Sprintf("**%s**: %.0f at %.0f (%s)\n",
					entry.Title, entry.Analysis.DealScore, entry.Price, entry.Analysis.DealType))
			} else {
				sb.WriteString(fmt.Sprintf("**%s**: no price information\n", entry.Title))
			}
		}
		if result.DealComparison.BestOverallValue != "" {
			sb.WriteString(fmt.Sprintf("\nBest overall value: %s\n", result.DealComparison.BestOverallValue))
		}
		if result.DealComparison.BestBudgetOption != "" {
			sb.WriteString(fmt.Sprintf("Best budget option: %s\n", result.DealComparison.BestBudgetOption))
		}
	}

	return sb.String()
}

func formatDetailsResult(result *models.Result) string {
	if result == nil {
		return "No result."
	}
	if result.Kind == models.KindError {
		return fmt.Sprintf("Error: %s", result.Message)
	}

	var sb strings.Builder
	p := result.Product
	if p != nil {
		sb.WriteString(fmt.Sprintf("## %s\n\n", p.Title))
		sb.WriteString(fmt.Sprintf("- **Price:** %s %.0f\n", p.Currency, p.Price))
		sb.WriteString(fmt.Sprintf("- **Rating:** %.1f (%d reviews)\n", p.Rating, p.ReviewCount))
		sb.WriteString(fmt.Sprintf("- **Brand:** %s\n\n", p.Brand))
		if p.Description != "" {
			sb.WriteString(p.Description + "\n\n")
		}
		if len(p.Specifications) > 0 {
			sb.WriteString("### Specifications\n\n")
			for k, v := range p.Specifications {
				sb.WriteString(fmt.Sprintf("- %s: %s\n", k, v))
			}
			sb.WriteString("\n")
		}
	}

	if result.Response != "" {
		sb.WriteString(result.Response + "\n\n")
	}

	if ra := result.ReviewAnalysis; ra != nil {
		sb.WriteString(fmt.Sprintf("### Reviews: %s (%d%% positive, %d%% negative)\n\n",
			ra.OverallSentiment, ra.Breakdown.Positive, ra.Breakdown.Negative))
		if len(ra.Pros) > 0 {
			sb.WriteString("Pros: " + strings.Join(ra.Pros, ", ") + "\n")
		}
		if len(ra.Cons) > 0 {
			sb.WriteString("Cons: " + strings.Join(ra.Cons, ", ") + "\n")
		}
		sb.WriteString("\n")
	}

	if da := result.DealAnalysis; da != nil {
		sb.WriteString(fmt.Sprintf("### Deal: %s (score %.0f/100)\n", da.DealType, da.DealScore))
		if da.Savings.EstimatedSavings > 0 {
			sb.WriteString(fmt.Sprintf("Estimated savings: %.0f (%.1f%% below market)\n",
				da.Savings.EstimatedSavings, da.Savings.SavingsPercentage))
		}
		if da.Recommendation != "" {
			sb.WriteString(da.Recommendation + "\n")
		}
	}

	return sb.String()
}

func formatSimilarProducts(productID string, products []models.Product) string {
	if len(products) == 0 {
		return fmt.Sprintf("No similar products found for %s.", productID)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Similar to %s\n\n", productID))
	for _, p := range products {
		sb.WriteString(fmt.Sprintf("- **%s** (%s): %s %.0f, rated %.1f\n",
			p.Title, p.ID, p.Currency, p.Price, p.Rating))
	}
	return sb.String()
}
