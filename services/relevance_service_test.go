package services

import (
	"strings"
	"testing"

	"newsbrief-backend/config"
	"newsbrief-backend/models"
)

func relevanceTestService() *RelevanceService {
	return NewRelevanceService(&config.Config{
		MinRelevanceScore:          0.5,
		TitleSimilarityThreshold:   0.85,
		ContentSimilarityThreshold: 0.7,
	})
}

func strongArticle(url string) models.Article {
	return models.Article{
		Title:       strings.Repeat("t", 100),
		Description: strings.Repeat("d", 200),
		AISummary:   strings.Repeat("s", 150),
		URL:         url,
		IsActive:    true,
	}
}

func TestCalculateRelevanceScore(t *testing.T) {
	service := relevanceTestService()

	tests := []struct {
		name     string
		article  models.Article
		expected float64
	}{
		{
			name:     "empty article",
			article:  models.Article{},
			expected: 0.0,
		},
		{
			name:     "full quality article hits the maximum",
			article:  strongArticle("https://example.com/full"),
			expected: 1.0,
		},
		{
			name: "partial quality article",
			article: models.Article{
				Title:       strings.Repeat("t", 60),
				Description: strings.Repeat("d", 100),
				AISummary:   strings.Repeat("s", 75),
				URL:         "http://example.com/partial",
				IsActive:    true,
			},
			expected: 0.63, // 0.18 + 0.1 + 0.15 + 0.1 + 0.1
		},
		{
			name: "short title contributes nothing",
			article: models.Article{
				Title:    "Short",
				URL:      "https://example.com/short",
				IsActive: true,
			},
			expected: 0.2,
		},
		{
			name: "plain summary scores lower than an AI summary",
			article: models.Article{
				Summary: strings.Repeat("s", 150),
			},
			expected: 0.24, // 1.0 * 0.8 * 0.3
		},
		{
			name: "short AI summary blocks the plain summary fallback",
			article: models.Article{
				AISummary: "tiny",
				Summary:   strings.Repeat("s", 150),
			},
			expected: 0.0,
		},
		{
			name: "invalid URL scheme earns nothing",
			article: models.Article{
				URL: "ftp://example.com/file",
			},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := service.CalculateRelevanceScore(&tt.article); got != tt.expected {
				t.Errorf("CalculateRelevanceScore = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCalculateRelevanceScore_Bounds(t *testing.T) {
	service := relevanceTestService()

	article := models.Article{
		Title:       strings.Repeat("t", 500),
		Description: strings.Repeat("d", 5000),
		AISummary:   strings.Repeat("s", 2000),
		URL:         "https://example.com/maxed",
		IsActive:    true,
	}

	if got := service.CalculateRelevanceScore(&article); got != 1.0 {
		t.Errorf("CalculateRelevanceScore = %v, expected cap at 1.0", got)
	}
}

func TestIsRelevant(t *testing.T) {
	service := relevanceTestService()

	strong := strongArticle("https://example.com/strong")
	if !service.IsRelevant(&strong) {
		t.Error("high quality article should be relevant")
	}

	weak := models.Article{Title: "Thin", IsActive: true}
	if service.IsRelevant(&weak) {
		t.Error("low quality article should not be relevant")
	}
}

func TestCalculateSimilarity(t *testing.T) {
	service := relevanceTestService()

	if got := service.CalculateSimilarity("", "anything"); got != 0.0 {
		t.Errorf("similarity with empty text = %v, expected 0.0", got)
	}
	if got := service.CalculateSimilarity("Same Headline", "same headline"); got != 1.0 {
		t.Errorf("similarity for case-variant texts = %v, expected 1.0", got)
	}

	got := service.CalculateSimilarity("completely different", "nothing alike here")
	if got <= 0.0 || got >= 1.0 {
		t.Errorf("similarity for different texts = %v, expected inside (0, 1)", got)
	}
}

func TestDeduplicateArticles_SameURL(t *testing.T) {
	service := relevanceTestService()

	weak := models.Article{
		Title:    "A headline about something",
		URL:      "https://example.com/story",
		IsActive: true,
	}
	strong := strongArticle("https://example.com/story")

	result := service.DeduplicateArticles([]models.Article{weak, strong})

	if len(result) != 1 {
		t.Fatalf("got %d articles, expected 1 after URL dedup", len(result))
	}
	if result[0].Title != strong.Title {
		t.Errorf("kept %q, expected the more relevant article", result[0].Title)
	}
}

func TestDeduplicateArticles_SimilarTitles(t *testing.T) {
	service := relevanceTestService()

	articles := []models.Article{
		{
			Title:       "Apple unveils new iPhone at September event",
			Description: strings.Repeat("d", 200),
			URL:         "https://one.example.com/apple",
			IsActive:    true,
		},
		{
			Title:       "Apple unveils new iPhone during September event",
			Description: strings.Repeat("d", 100),
			URL:         "https://two.example.com/apple",
			IsActive:    true,
		},
	}

	result := service.DeduplicateArticles(articles)

	if len(result) != 1 {
		t.Fatalf("got %d articles, expected near-duplicate titles to collapse", len(result))
	}
	if result[0].URL != "https://one.example.com/apple" {
		t.Errorf("kept %q, expected the higher scoring article", result[0].URL)
	}
}

func TestDeduplicateArticles_DistinctSurvive(t *testing.T) {
	service := relevanceTestService()

	articles := []models.Article{
		{Title: "Central bank raises interest rates again", URL: "https://example.com/rates", IsActive: true},
		{Title: "New exoplanet discovered in nearby system", URL: "https://example.com/space", IsActive: true},
		{Title: "Championship final ends in dramatic penalty shootout", URL: "https://example.com/final", IsActive: true},
	}

	result := service.DeduplicateArticles(articles)

	if len(result) != 3 {
		t.Fatalf("got %d articles, expected all 3 distinct articles to survive", len(result))
	}
	for i := range result {
		if result[i].URL != articles[i].URL {
			t.Errorf("result[%d] = %q, expected input order preserved", i, result[i].URL)
		}
	}
}

func TestDeduplicateArticles_TieKeepsEarliest(t *testing.T) {
	service := relevanceTestService()

	first := models.Article{
		Title:       "Identical quality duplicate story",
		Description: strings.Repeat("d", 100),
		URL:         "https://example.com/dup",
		IsActive:    true,
	}
	second := first
	second.Source = "Other Outlet"

	result := service.DeduplicateArticles([]models.Article{first, second})

	if len(result) != 1 {
		t.Fatalf("got %d articles, expected 1", len(result))
	}
	if result[0].Source != "" {
		t.Errorf("kept the later duplicate, expected the earliest on a tie")
	}
}

func TestDeduplicateArticles_Idempotent(t *testing.T) {
	service := relevanceTestService()

	articles := []models.Article{
		strongArticle("https://example.com/a"),
		{Title: "A completely unrelated headline here", URL: "https://example.com/b", IsActive: true},
		strongArticle("https://example.com/a"),
	}

	once := service.DeduplicateArticles(articles)
	twice := service.DeduplicateArticles(once)

	if len(once) != len(twice) {
		t.Errorf("second pass changed the result: %d vs %d", len(once), len(twice))
	}
}

func TestDeduplicateArticles_SmallInputs(t *testing.T) {
	service := relevanceTestService()

	if got := service.DeduplicateArticles(nil); len(got) != 0 {
		t.Errorf("nil input returned %d articles", len(got))
	}

	single := []models.Article{strongArticle("https://example.com/only")}
	if got := service.DeduplicateArticles(single); len(got) != 1 {
		t.Errorf("single input returned %d articles", len(got))
	}
}

func TestFilterByRelevance(t *testing.T) {
	service := relevanceTestService()

	articles := []models.Article{
		strongArticle("https://example.com/keep"),
		{Title: "Thin", URL: "https://example.com/drop"},
	}

	result := service.FilterByRelevance(articles)

	if len(result) != 1 {
		t.Fatalf("got %d articles, expected 1 to pass the filter", len(result))
	}
	if result[0].URL != "https://example.com/keep" {
		t.Errorf("kept %q, expected the strong article", result[0].URL)
	}
}
