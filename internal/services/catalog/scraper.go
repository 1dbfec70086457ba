package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
)

// ScrapeCatalog extracts products from a configured listing page. The
// page structure is addressed entirely through configured selectors;
// results come back in page order. Products seen once are remembered so
// id lookups and detail requests keep working for the process lifetime.
type ScrapeCatalog struct {
	config    *common.ScraperConfig
	catalog   *common.CatalogConfig
	logger    arbor.ILogger
	client    *http.Client
	converter *md.Converter
	cache     interfaces.SearchCache

	mu   sync.RWMutex
	seen map[string]models.Product
}

var _ interfaces.CatalogProvider = (*ScrapeCatalog)(nil)

// NewScrapeCatalog creates a scrape-backed catalog provider.
func NewScrapeCatalog(config *common.ScraperConfig, catalogCfg *common.CatalogConfig, cache interfaces.SearchCache, logger arbor.ILogger) (*ScrapeCatalog, error) {
	if config.ListingURL == "" {
		return nil, fmt.Errorf("scraper listing_url is required")
	}

	timeout := common.ParseDurationOr(config.RequestTimeout, 15*time.Second)

	return &ScrapeCatalog{
		config:    config,
		catalog:   catalogCfg,
		logger:    logger,
		client:    &http.Client{Timeout: timeout},
		converter: md.NewConverter("", true, nil),
		cache:     cache,
		seen:      make(map[string]models.Product),
	}, nil
}

func (c *ScrapeCatalog) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = c.catalog.MaxResults
	}

	key := CacheKey(query, limit)
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}

	listingURL := fmt.Sprintf(c.config.ListingURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listing request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing request returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	products := c.extractProducts(doc, limit)
	products = EnsureUniqueIDs(products)

	c.mu.Lock()
	for _, p := range products {
		c.seen[p.ID] = p
	}
	c.mu.Unlock()

	c.cache.Put(key, products)
	c.logger.Debug().Str("query", query).Int("results", len(products)).Msg("Scrape catalog search completed")

	return products, nil
}

func (c *ScrapeCatalog) extractProducts(doc *goquery.Document, limit int) []models.Product {
	products := make([]models.Product, 0, limit)
	doc.Find(c.config.CardSelector).EachWithBreak(func(i int, card *goquery.Selection) bool {
		if len(products) >= limit {
			return false
		}

		title := strings.TrimSpace(card.Find(c.config.TitleSelector).First().Text())
		if title == "" {
			return true
		}

		p := models.Product{
			Title:        title,
			Currency:     c.catalog.Currency,
			Availability: "in_stock",
			Source:       "web",
			Price:        parsePriceText(card.Find(c.config.PriceSelector).First().Text()),
			Rating:       parseRatingText(card.Find(c.config.RatingSelector).First().Text()),
		}
		if href, ok := card.Find(c.config.LinkSelector).First().Attr("href"); ok {
			p.URL = href
		}
		if desc := card.Find(c.config.DescriptionSelector).First(); desc.Length() > 0 {
			if html, err := goquery.OuterHtml(desc); err == nil {
				if text, err := c.converter.ConvertString(html); err == nil {
					p.Description = strings.TrimSpace(text)
				}
			}
		}

		products = append(products, p)
		return true
	})
	return products
}

func (c *ScrapeCatalog) GetByID(ctx context.Context, id string) (*models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.seen[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	clone := p.Clone()
	return &clone, nil
}

func (c *ScrapeCatalog) GetDetails(ctx context.Context, id string) (*models.Product, error) {
	base, err := c.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detailed := synthesizeDetails(*base)
	return &detailed, nil
}

func (c *ScrapeCatalog) SimilarProducts(ctx context.Context, id string, limit int) ([]models.Product, error) {
	ref, err := c.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	candidates := make([]models.Product, 0, 8)
	for _, p := range c.seen {
		if p.ProductType == ref.ProductType {
			candidates = append(candidates, p)
		}
	}
	c.mu.RUnlock()

	return similarByPrice(candidates, ref, limit), nil
}

func parsePriceText(text string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

func parseRatingText(text string) float64 {
	fields := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if len(fields) == 0 {
		return 0
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || value < 0 || value > 5 {
		return 0
	}
	return value
}
