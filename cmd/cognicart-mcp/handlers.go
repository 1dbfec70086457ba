package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/interfaces"
)

func handleSearchProducts(svc interfaces.Assistant, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return nil, fmt.Errorf("query parameter is required: %w", err)
		}

		logger.Debug().Str("query", query).Msg("MCP search_products")

		result, err := svc.Search(ctx, query, nil)
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(formatSearchResult(result))},
		}, nil
	}
}

func handleCompareProducts(svc interfaces.Assistant, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids := request.GetStringSlice("product_ids", nil)
		if len(ids) == 0 {
			return nil, fmt.Errorf("product_ids parameter is required")
		}
		aspects := request.GetStringSlice("aspects", nil)

		logger.Debug().Str("ids", strings.Join(ids, ",")).Msg("MCP compare_products")

		result, err := svc.Compare(ctx, ids, aspects)
		if err != nil {
			return nil, fmt.Errorf("comparison failed: %w", err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(formatComparisonResult(result))},
		}, nil
	}
}

func handleProductDetails(svc interfaces.Assistant, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		productID, err := request.RequireString("product_id")
		if err != nil {
			return nil, fmt.Errorf("product_id parameter is required: %w", err)
		}
		focusAreas := request.GetStringSlice("focus_areas", nil)

		logger.Debug().Str("product_id", productID).Msg("MCP get_product_details")

		result, err := svc.Details(ctx, productID, focusAreas)
		if err != nil {
			return nil, fmt.Errorf("details lookup failed: %w", err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(formatDetailsResult(result))},
		}, nil
	}
}

func handleSimilarProducts(provider interfaces.CatalogProvider, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		productID, err := request.RequireString("product_id")
		if err != nil {
			return nil, fmt.Errorf("product_id parameter is required: %w", err)
		}
		limit := request.GetInt("limit", 5)

		logger.Debug().Str("product_id", productID).Msg("MCP find_similar_products")

		products, err := provider.SimilarProducts(ctx, productID, limit)
		if err != nil {
			return nil, fmt.Errorf("similar products lookup failed: %w", err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(formatSimilarProducts(productID, products))},
		}, nil
	}
}
