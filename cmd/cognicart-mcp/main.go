package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/services/assistant"
	"github.com/ternarybob/cognicart/internal/services/catalog"
	"github.com/ternarybob/cognicart/internal/services/llm"
	badgerstore "github.com/ternarybob/cognicart/internal/storage/badger"
)

func main() {
	configPath := os.Getenv("COGNICART_CONFIG")
	if configPath == "" {
		configPath = "cognicart.toml"
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal logging to avoid cluttering MCP stdio
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")

	completion, err := llm.NewCompletionService(config, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Completion provider unavailable, continuing with fallbacks only")
		completion = llm.NewDisabledService()
	}
	defer completion.Close()

	provider, cleanup, err := buildCatalog(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize catalog")
	}
	if cleanup != nil {
		defer cleanup()
	}

	svc := assistant.NewService(config, completion, provider, logger)

	mcpServer := server.NewMCPServer(
		"cognicart",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createSearchProductsTool(), handleSearchProducts(svc, logger))
	mcpServer.AddTool(createCompareProductsTool(), handleCompareProducts(svc, logger))
	mcpServer.AddTool(createProductDetailsTool(), handleProductDetails(svc, logger))
	mcpServer.AddTool(createSimilarProductsTool(), handleSimilarProducts(provider, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}

func buildCatalog(config *common.Config, logger arbor.ILogger) (interfaces.CatalogProvider, func(), error) {
	cache := catalog.NewMemoryCache()

	switch config.Catalog.Provider {
	case "badger":
		db, err := badgerstore.NewBadgerDB(logger, &config.Storage.Badger)
		if err != nil {
			return nil, nil, err
		}
		storage := badgerstore.NewProductStorage(db, logger)
		provider, err := catalog.NewBadgerCatalog(&config.Catalog, storage, cache, logger)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return provider, func() { db.Close() }, nil

	case "scrape":
		provider, err := catalog.NewScrapeCatalog(&config.Scraper, &config.Catalog, cache, logger)
		if err != nil {
			return nil, nil, err
		}
		return provider, nil, nil

	default:
		provider, err := catalog.NewMemoryCatalog(&config.Catalog, cache, logger, nil)
		if err != nil {
			return nil, nil, err
		}
		return provider, nil, nil
	}
}
