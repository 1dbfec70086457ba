package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createSearchProductsTool returns the search_products tool definition
func createSearchProductsTool() mcp.Tool {
	return mcp.NewTool("search_products",
		mcp.WithDescription("Search the product catalog with a free-text shopping query and get ranked, analyzed recommendations"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text shopping query, e.g. 'laptop under 40000 for programming'"),
		),
	)
}

// createCompareProductsTool returns the compare_products tool definition
func createCompareProductsTool() mcp.Tool {
	return mcp.NewTool("compare_products",
		mcp.WithDescription("Compare two or more products by ID across reviews and deal value"),
		mcp.WithArray("product_ids",
			mcp.WithStringItems(),
			mcp.Required(),
			mcp.Description("Two or more product IDs from a previous search"),
		),
		mcp.WithArray("aspects",
			mcp.WithStringItems(),
			mcp.Description("Optional aspects to focus on, e.g. battery, camera"),
		),
	)
}

// createProductDetailsTool returns the get_product_details tool definition
func createProductDetailsTool() mcp.Tool {
	return mcp.NewTool("get_product_details",
		mcp.WithDescription("Get the deep-dive payload for one product: reviews analysis, deal analysis, and specifications"),
		mcp.WithString("product_id",
			mcp.Required(),
			mcp.Description("Product ID (format: prod_...)"),
		),
		mcp.WithArray("focus_areas",
			mcp.WithStringItems(),
			mcp.Description("Optional areas of interest, e.g. battery life"),
		),
	)
}

// createSimilarProductsTool returns the find_similar_products tool definition
func createSimilarProductsTool() mcp.Tool {
	return mcp.NewTool("find_similar_products",
		mcp.WithDescription("List products of the same type ordered by price proximity"),
		mcp.WithString("product_id",
			mcp.Required(),
			mcp.Description("Reference product ID"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default: 5)"),
		),
	)
}
