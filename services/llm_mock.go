package services

import (
	"context"
	"fmt"
	"strings"

	"newsbrief-backend/models"
)

// MockLLMProvider implements LLMProvider without making API calls.
// Useful for local development and tests.
type MockLLMProvider struct{}

func NewMockLLMProvider() *MockLLMProvider {
	return &MockLLMProvider{}
}

// SelectTopArticles returns the first topCount articles
func (p *MockLLMProvider) SelectTopArticles(ctx context.Context, articles []models.RawArticle, category string, topCount int) ([]models.RawArticle, error) {
	if len(articles) <= topCount {
		return articles, nil
	}
	return articles[:topCount], nil
}

// SummarizeArticle returns a deterministic summary built from the description
func (p *MockLLMProvider) SummarizeArticle(ctx context.Context, title, description, url, category string) (string, error) {
	if description == "" {
		return fmt.Sprintf("Mock summary for %s article: %s. This article discusses important developments in the field.", category, title), nil
	}

	words := strings.Fields(description)
	if len(words) > 30 {
		words = words[:30]
	}
	summary := strings.Join(words, " ")
	if len(description) > len(summary) {
		summary += "..."
	}

	return summary, nil
}
