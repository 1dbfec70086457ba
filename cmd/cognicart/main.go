package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
	"github.com/ternarybob/cognicart/internal/services/assistant"
	"github.com/ternarybob/cognicart/internal/services/catalog"
	"github.com/ternarybob/cognicart/internal/services/llm"
	badgerstore "github.com/ternarybob/cognicart/internal/storage/badger"
)

func main() {
	var (
		configPath  string
		query       string
		stream      bool
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "cognicart.toml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "cognicart.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&query, "query", "", "Run a single query and exit")
	flag.StringVar(&query, "q", "", "Run a single query and exit (shorthand)")
	flag.BoolVar(&stream, "stream", false, "Emit progress events while searching")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.BoolVar(&showVersion, "v", false, "Print version and exit (shorthand)")
	flag.Parse()

	if showVersion {
		fmt.Println(common.GetFullVersion())
		return
	}

	// 1. Load configuration
	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Set up logging
	logger := common.InitLogger(config)

	// 3. Print banner
	common.PrintBanner(common.GetVersion())

	// 4. Completion service. A missing key degrades to the disabled
	// provider so the deterministic fallbacks keep the assistant usable.
	completion, err := llm.NewCompletionService(config, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Completion provider unavailable, continuing with fallbacks only")
		completion = llm.NewDisabledService()
	}
	defer completion.Close()

	// 5. Catalog provider
	provider, cleanup, err := buildCatalog(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize catalog")
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	svc := assistant.NewService(config, completion, provider, logger)

	ctx := context.Background()
	if query != "" {
		runOnce(ctx, svc, query, stream)
		return
	}
	runInteractive(ctx, svc, logger)
}

// buildCatalog wires the configured catalog provider. The badger
// provider also starts the scheduled refresher when enabled.
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

		refresher := catalog.NewRefresher(&config.Refresh, func() []models.Product {
			products, err := catalog.LoadCatalogProducts(config.Catalog.SeedFile)
			if err != nil {
				logger.Warn().Err(err).Msg("Seed reload failed, refresh skipped")
				return nil
			}
			return products
		}, storage, cache, logger)
		if err := refresher.Start(); err != nil {
			db.Close()
			return nil, nil, err
		}

		cleanup := func() {
			refresher.Stop()
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close catalog database")
			}
		}
		return provider, cleanup, nil

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

func runOnce(ctx context.Context, svc interfaces.Assistant, query string, stream bool) {
	if stream {
		events, err := svc.SearchStream(ctx, query, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for event := range events {
			if event.Stage == models.StageComplete {
				printResult(event.Result)
				return
			}
			fmt.Printf("[%s] %s\n", event.Stage, event.Message)
		}
		return
	}

	result, err := svc.Search(ctx, query, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printResult(result)
}

func runInteractive(ctx context.Context, svc interfaces.Assistant, logger arbor.ILogger) {
	fmt.Println("Ask me what you are shopping for (type 'exit' to quit):")

	var prior *models.Result
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}

		var result *models.Result
		var err error
		if prior == nil {
			result, err = svc.Search(ctx, line, nil)
		} else {
			result, err = svc.FollowUp(ctx, line, prior)
		}
		if err != nil {
			fmt.Printf("Sorry: %v\n", err)
			continue
		}
		printResult(result)
		prior = result
	}
}

func printResult(result *models.Result) {
	if result == nil {
		return
	}
	if result.Response != "" {
		fmt.Println(result.Response)
	} else if result.Message != "" {
		fmt.Println(result.Message)
	}
	payload, err := json.MarshalIndent(result, "", "  ")
	if err == nil {
		fmt.Println(string(payload))
	}
}
