package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsbrief-backend/config"
	"newsbrief-backend/models"
)

//go:generate mockgen -source=newsapi_client.go -destination=mocks/news_provider_mock.go -package=mocks

// NewsProvider fetches raw articles for a single category from an upstream source
type NewsProvider interface {
	FetchByCategory(ctx context.Context, category string) ([]models.RawArticle, error)
}

// NewNewsProvider creates the configured news provider
func NewNewsProvider(cfg *config.Config) (NewsProvider, error) {
	switch cfg.NewsProvider {
	case "newsapi":
		return NewNewsAPIClient(cfg), nil
	case "rss":
		return NewRSSClient(cfg), nil
	default:
		return nil, fmt.Errorf("invalid news provider: %s", cfg.NewsProvider)
	}
}

// topHeadlinesCategories are the categories NewsAPI serves natively on its
// top-headlines endpoint. Everything else goes through keyword search.
var topHeadlinesCategories = map[string]bool{
	"technology":    true,
	"business":      true,
	"sports":        true,
	"entertainment": true,
	"health":        true,
	"science":       true,
}

// NewsAPIClient implements NewsProvider against newsapi.org
type NewsAPIClient struct {
	cfg        *config.Config
	httpClient *http.Client
	baseURL    string
}

// NewNewsAPIClient creates a client for the configured NewsAPI endpoint
func NewNewsAPIClient(cfg *config.Config) *NewsAPIClient {
	return &NewsAPIClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimSuffix(cfg.NewsAPIBaseURL, "/"),
	}
}

type newsapiResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsapiArticle `json:"articles"`
}

type newsapiArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// FetchByCategory retrieves and filters articles for one category
func (c *NewsAPIClient) FetchByCategory(ctx context.Context, category string) ([]models.RawArticle, error) {
	endpoint, params := c.buildRequest(category)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build news request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request for %s failed: %w", category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news request for %s returned status %d", category, resp.StatusCode)
	}

	var payload newsapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode news response for %s: %w", category, err)
	}

	articles := make([]models.RawArticle, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		if !isValidArticle(item.Title, item.URL, item.Description) {
			continue
		}

		source := item.Source.Name
		if source == "" {
			source = "Unknown"
		}

		articles = append(articles, models.RawArticle{
			Title:       strings.TrimSpace(item.Title),
			Description: strings.TrimSpace(item.Description),
			URL:         strings.TrimSpace(item.URL),
			PublishedAt: item.PublishedAt,
			Source:      source,
			Category:    category,
		})
	}

	log.Printf("Fetched %d articles for category: %s", len(articles), category)
	return articles, nil
}

// buildRequest picks the endpoint and query parameters for a category.
// Keyword categories search the last 3 days sorted by publish time.
func (c *NewsAPIClient) buildRequest(category string) (string, url.Values) {
	params := url.Values{}
	params.Set("apiKey", c.cfg.NewsAPIKey)
	params.Set("language", c.cfg.NewsLanguage)
	params.Set("pageSize", strconv.Itoa(c.cfg.ArticlesPerCategory))

	if topHeadlinesCategories[category] {
		params.Set("category", category)
		params.Set("country", c.cfg.NewsCountry)
		return c.baseURL + "/top-headlines", params
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -3)
	params.Set("q", category)
	params.Set("sortBy", "publishedAt")
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))
	return c.baseURL + "/everything", params
}

// isValidArticle drops incomplete entries and NewsAPI's removed-article stubs
func isValidArticle(title, articleURL, description string) bool {
	if title == "" || articleURL == "" {
		return false
	}

	lowerTitle := strings.ToLower(title)
	if strings.Contains(lowerTitle, "[removed]") || lowerTitle == "removed" {
		return false
	}

	if description == "" {
		return false
	}
	lowerDescription := strings.ToLower(description)
	if lowerDescription == "[removed]" || lowerDescription == "removed" {
		return false
	}

	return true
}
