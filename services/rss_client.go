package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"newsbrief-backend/config"
	"newsbrief-backend/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// RSSClient implements NewsProvider over the RSS feeds configured per category
type RSSClient struct {
	cfg    *config.Config
	parser *gofeed.Parser
}

// NewRSSClient creates a provider backed by the configured feed map
func NewRSSClient(cfg *config.Config) *RSSClient {
	return &RSSClient{
		cfg:    cfg,
		parser: gofeed.NewParser(),
	}
}

// FetchByCategory parses every feed configured for the category, capped at
// ArticlesPerCategory items. Individual feed failures are skipped unless
// every feed fails.
func (c *RSSClient) FetchByCategory(ctx context.Context, category string) ([]models.RawArticle, error) {
	feedURLs, ok := c.cfg.RSSFeeds[category]
	if !ok || len(feedURLs) == 0 {
		return nil, fmt.Errorf("no RSS feeds configured for category %s", category)
	}

	var articles []models.RawArticle
	failed := 0

	for _, feedURL := range feedURLs {
		if len(articles) >= c.cfg.ArticlesPerCategory {
			break
		}

		feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			log.Printf("Failed to parse feed %s: %v", feedURL, err)
			failed++
			continue
		}

		source := strings.TrimSpace(feed.Title)
		if source == "" {
			source = "Unknown"
		}

		for _, item := range feed.Items {
			if len(articles) >= c.cfg.ArticlesPerCategory {
				break
			}

			description := stripHTML(item.Description)
			if !isValidArticle(item.Title, item.Link, description) {
				continue
			}

			articles = append(articles, models.RawArticle{
				Title:       strings.TrimSpace(item.Title),
				Description: description,
				URL:         strings.TrimSpace(item.Link),
				PublishedAt: item.Published,
				Source:      source,
				Category:    category,
			})
		}
	}

	if failed == len(feedURLs) {
		return nil, fmt.Errorf("all %d feeds failed for category %s", failed, category)
	}

	log.Printf("Fetched %d articles for category: %s", len(articles), category)
	return articles, nil
}

// stripHTML flattens feed descriptions that arrive as HTML fragments
func stripHTML(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
