package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Logging     LoggingConfig   `toml:"logging"`
	Storage     StorageConfig   `toml:"storage"`
	Catalog     CatalogConfig   `toml:"catalog"`
	Ranking     RankingConfig   `toml:"ranking"`
	Assistant   AssistantConfig `toml:"assistant"`
	Scraper     ScraperConfig   `toml:"scraper"`
	Refresh     RefreshConfig   `toml:"refresh"`
	Gemini      GeminiConfig    `toml:"gemini"`
	Claude      ClaudeConfig    `toml:"claude"`
	LLM         LLMConfig       `toml:"llm"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// CatalogConfig selects and tunes the product catalog provider.
// The relevance weights carry sensible defaults and are not tuned values.
type CatalogConfig struct {
	Provider   string `toml:"provider" validate:"oneof=memory badger scrape"` // "memory", "badger", "scrape"
	SeedFile   string `toml:"seed_file"`   // Optional YAML file merged over the built-in catalog
	Currency   string `toml:"currency"`    // Default currency code for products
	MaxResults int    `toml:"max_results"` // Max candidates returned per search

	TitleMatchWeight   float64 `toml:"title_match_weight"`
	TypeMatchWeight    float64 `toml:"type_match_weight"`
	BrandMatchWeight   float64 `toml:"brand_match_weight"`
	FeatureMatchWeight float64 `toml:"feature_match_weight"`
	TypeBonus          float64 `toml:"type_bonus"`           // Query names the product type outright
	BudgetBonus        float64 `toml:"budget_bonus"`         // Within an "under N" budget found in the query
	OverBudgetPenalty  float64 `toml:"over_budget_penalty"`  // Above that budget
	BrandBonus         float64 `toml:"brand_bonus"`          // Query names the brand outright
	RatingWeight       float64 `toml:"rating_weight"`        // Small contribution from the star rating
}

// RankingConfig tunes filtering and ranking of search candidates.
type RankingConfig struct {
	TopN           int     `toml:"top_n"`            // Ranked list length (default: 6)
	MinRating      float64 `toml:"min_rating"`       // Quality floor, products below are dropped (default: 3.5)
	RatingWeight   float64 `toml:"rating_weight"`    // Fallback score rating weight (default: 0.7)
	ReviewWeight   float64 `toml:"review_weight"`    // Fallback score review-volume weight (default: 0.3)
	ReviewScale    float64 `toml:"review_scale"`     // Review count divisor (default: 1000)
	ReviewScoreCap float64 `toml:"review_score_cap"` // Review-volume score cap (default: 5)
	RankTimeout    string  `toml:"rank_timeout"`     // Bounded wait on the AI ranking call (default: "10s")
}

// AssistantConfig tunes the coordinator.
type AssistantConfig struct {
	EnrichCount    int    `toml:"enrich_count"`    // Products given full enrichment per search (default: 3)
	EnhanceTimeout string `toml:"enhance_timeout"` // Bounded wait on per-product detail enhancement (default: "8s")
}

// ScraperConfig configures the scrape-backed catalog provider. Selectors
// address the listing page's product cards.
type ScraperConfig struct {
	ListingURL          string `toml:"listing_url"` // Template with %s for the escaped query
	UserAgent           string `toml:"user_agent"`
	RequestTimeout      string `toml:"request_timeout"`
	CardSelector        string `toml:"card_selector"`
	TitleSelector       string `toml:"title_selector"`
	PriceSelector       string `toml:"price_selector"`
	RatingSelector      string `toml:"rating_selector"`
	LinkSelector        string `toml:"link_selector"`
	DescriptionSelector string `toml:"description_selector"`
}

// RefreshConfig schedules periodic re-sync of the persistent catalog.
type RefreshConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron schedule format
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google Gemini API key
	Model       string  `toml:"model"`       // Model name (default: "gemini-2.0-flash")
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "30s")
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between requests (default: "4s" for 15 RPM)
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.3)
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model name (default: "claude-sonnet-4-20250514")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 4096)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "30s")
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between requests (default: "1s")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.3)
}

// LLMConfig selects the completion provider
type LLMConfig struct {
	Provider string `toml:"provider" validate:"oneof=gemini claude disabled"` // "gemini", "claude", or "disabled"
}

// DefaultConfig returns the configuration defaults applied before any
// file or environment overrides.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout"},
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/catalog",
				ResetOnStartup: false,
			},
		},
		Catalog: CatalogConfig{
			Provider:           "memory",
			Currency:           "INR",
			MaxResults:         10,
			TitleMatchWeight:   10,
			TypeMatchWeight:    8,
			BrandMatchWeight:   6,
			FeatureMatchWeight: 3,
			TypeBonus:          15,
			BudgetBonus:        5,
			OverBudgetPenalty:  10,
			BrandBonus:         8,
			RatingWeight:       1.0,
		},
		Ranking: RankingConfig{
			TopN:           6,
			MinRating:      3.5,
			RatingWeight:   0.7,
			ReviewWeight:   0.3,
			ReviewScale:    1000,
			ReviewScoreCap: 5,
			RankTimeout:    "10s",
		},
		Assistant: AssistantConfig{
			EnrichCount:    3,
			EnhanceTimeout: "8s",
		},
		Scraper: ScraperConfig{
			UserAgent:           "Mozilla/5.0 (compatible; cognicart/1.0)",
			RequestTimeout:      "15s",
			CardSelector:        "div.product-card",
			TitleSelector:       "h3",
			PriceSelector:       ".price",
			RatingSelector:      ".rating",
			LinkSelector:        "a",
			DescriptionSelector: ".description",
		},
		Refresh: RefreshConfig{
			Enabled:  false,
			Schedule: "0 */6 * * *",
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.0-flash",
			Timeout:     "30s",
			RateLimit:   "4s",
			Temperature: 0.3,
		},
		Claude: ClaudeConfig{
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   4096,
			Timeout:     "30s",
			RateLimit:   "1s",
			Temperature: 0.3,
		},
		LLM: LLMConfig{
			Provider: "gemini",
		},
	}
}

// LoadFromFile loads configuration from a TOML file with defaults and
// environment overrides. A missing file is not an error; defaults apply.
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("COGNICART_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("COGNICART_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("COGNICART_LOG_OUTPUT"); output != "" {
		config.Logging.Output = strings.Split(output, ",")
	}

	if path := os.Getenv("COGNICART_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	if provider := os.Getenv("COGNICART_CATALOG_PROVIDER"); provider != "" {
		config.Catalog.Provider = provider
	}
	if seedFile := os.Getenv("COGNICART_CATALOG_SEED_FILE"); seedFile != "" {
		config.Catalog.SeedFile = seedFile
	}
	if maxResults := os.Getenv("COGNICART_CATALOG_MAX_RESULTS"); maxResults != "" {
		if n, err := strconv.Atoi(maxResults); err == nil && n > 0 {
			config.Catalog.MaxResults = n
		}
	}

	if provider := os.Getenv("COGNICART_LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if key := os.Getenv("COGNICART_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv("COGNICART_CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
}

// ParseDurationOr parses a duration string, falling back to def when the
// value is empty or malformed.
func ParseDurationOr(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
