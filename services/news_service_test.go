package services

import (
	"fmt"
	"testing"
	"time"

	"newsbrief-backend/config"
	"newsbrief-backend/models"

	"gorm.io/gorm"
)

func newsTestService(t *testing.T) (*NewsService, *gorm.DB) {
	t.Helper()

	cfg := &config.Config{MinFreshnessScore: 0.3}
	db := testDB(t)
	return NewNewsService(cfg, db, NewFreshnessService(cfg)), db
}

func seedArticle(t *testing.T, db *gorm.DB, category, url string, age time.Duration, active bool) models.Article {
	t.Helper()

	now := time.Now()
	article := models.Article{
		Category:    category,
		Title:       "Headline for " + url,
		Description: "Description for " + url,
		URL:         url,
		Source:      "Example News",
		Summary:     "Summary for " + url,
		AISummary:   "Summary for " + url,
		IsActive:    active,
		CreatedAt:   now.Add(-age),
		UpdatedAt:   now.Add(-age),
	}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("failed to seed article: %v", err)
	}
	return article
}

func TestGetRecentArticles(t *testing.T) {
	service, db := newsTestService(t)

	seedArticle(t, db, "technology", "https://example.com/tech-new", time.Hour, true)
	seedArticle(t, db, "technology", "https://example.com/tech-old", 30*time.Hour, true)
	seedArticle(t, db, "technology", "https://example.com/tech-inactive", 2*time.Hour, false)
	seedArticle(t, db, "science", "https://example.com/science-new", 2*time.Hour, true)
	seedArticle(t, db, "business", "https://example.com/business-new", time.Hour, true)

	articles, err := service.GetRecentArticles([]string{"technology", "science"}, 24)
	if err != nil {
		t.Fatalf("GetRecentArticles returned error: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("got %d articles, expected 2", len(articles))
	}
	if articles[0].URL != "https://example.com/tech-new" {
		t.Errorf("articles[0].URL = %q, expected newest first", articles[0].URL)
	}
	if articles[1].URL != "https://example.com/science-new" {
		t.Errorf("articles[1].URL = %q, expected the science article second", articles[1].URL)
	}
}

func TestCountRecentArticles(t *testing.T) {
	service, db := newsTestService(t)

	seedArticle(t, db, "technology", "https://example.com/tech-new", time.Hour, true)
	seedArticle(t, db, "technology", "https://example.com/tech-old", 30*time.Hour, true)
	seedArticle(t, db, "science", "https://example.com/science-new", 2*time.Hour, true)

	count, err := service.CountRecentArticles([]string{"technology", "science"}, 24)
	if err != nil {
		t.Fatalf("CountRecentArticles returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, expected 2", count)
	}
}

func TestGetFreshArticlesByCategory(t *testing.T) {
	service, db := newsTestService(t)

	seedArticle(t, db, "technology", "https://example.com/tech-fresh", 5*time.Hour, true)
	seedArticle(t, db, "technology", "https://example.com/tech-expired", 7*time.Hour, true)
	seedArticle(t, db, "science", "https://example.com/science-fresh", 20*time.Hour, true)

	result, err := service.GetFreshArticlesByCategory([]string{"technology", "science"})
	if err != nil {
		t.Fatalf("GetFreshArticlesByCategory returned error: %v", err)
	}

	if len(result["technology"]) != 1 {
		t.Fatalf("got %d technology articles, expected 1 inside the 6h window", len(result["technology"]))
	}
	if result["technology"][0].URL != "https://example.com/tech-fresh" {
		t.Errorf("technology URL = %q, expected the fresh article", result["technology"][0].URL)
	}
	if len(result["science"]) != 1 {
		t.Errorf("got %d science articles, expected 1 inside the 24h window", len(result["science"]))
	}
}

func TestGetArticleByID(t *testing.T) {
	service, db := newsTestService(t)

	seeded := seedArticle(t, db, "technology", "https://example.com/tech", time.Hour, true)

	article, err := service.GetArticleByID(fmt.Sprint(seeded.ID))
	if err != nil {
		t.Fatalf("GetArticleByID returned error: %v", err)
	}
	if article.URL != seeded.URL {
		t.Errorf("URL = %q, expected %q", article.URL, seeded.URL)
	}

	if _, err := service.GetArticleByID("99999"); err == nil {
		t.Error("expected error for missing article, got nil")
	}
}

func TestLastUpdated(t *testing.T) {
	service, db := newsTestService(t)

	got, err := service.LastUpdated([]string{"technology"})
	if err != nil {
		t.Fatalf("LastUpdated returned error: %v", err)
	}
	if got != nil {
		t.Errorf("LastUpdated = %v, expected nil for empty database", got)
	}

	seedArticle(t, db, "technology", "https://example.com/tech-old", 3*time.Hour, true)
	newest := seedArticle(t, db, "technology", "https://example.com/tech-new", time.Hour, true)

	got, err = service.LastUpdated([]string{"technology"})
	if err != nil {
		t.Fatalf("LastUpdated returned error: %v", err)
	}
	if got == nil {
		t.Fatal("LastUpdated = nil, expected a timestamp")
	}
	if got.Unix() != newest.UpdatedAt.Unix() {
		t.Errorf("LastUpdated = %v, expected %v", got, newest.UpdatedAt)
	}
}

func TestGetArticleStats(t *testing.T) {
	service, db := newsTestService(t)

	seedArticle(t, db, "technology", "https://example.com/tech-a", time.Hour, true)
	seedArticle(t, db, "technology", "https://example.com/tech-b", 2*time.Hour, false)
	seedArticle(t, db, "science", "https://example.com/science-a", 3*time.Hour, true)

	stats, err := service.GetArticleStats()
	if err != nil {
		t.Fatalf("GetArticleStats returned error: %v", err)
	}

	if stats["total_articles"].(int64) != 3 {
		t.Errorf("total_articles = %v, expected 3", stats["total_articles"])
	}
	if stats["active_articles"].(int64) != 2 {
		t.Errorf("active_articles = %v, expected 2", stats["active_articles"])
	}
	if stats["unique_categories"].(int) != 2 {
		t.Errorf("unique_categories = %v, expected 2", stats["unique_categories"])
	}
	if stats["unique_sources"].(int) != 1 {
		t.Errorf("unique_sources = %v, expected 1", stats["unique_sources"])
	}
}
