package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"newsbrief-backend/models"
	"newsbrief-backend/prompts"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider implements LLMProvider against the Anthropic Messages API
type AnthropicProvider struct {
	client       *anthropic.Client
	model        anthropic.Model
	summaryCache sync.Map // Cache for article summaries keyed by URL
}

// NewAnthropicProvider creates a provider for the given API key and model name
func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicProvider{
		client: &client,
		model:  anthropic.Model(model),
	}
}

// SelectTopArticles asks the model for the most newsworthy articles
func (p *AnthropicProvider) SelectTopArticles(ctx context.Context, articles []models.RawArticle, category string, topCount int) ([]models.RawArticle, error) {
	if len(articles) <= topCount {
		return articles, nil
	}

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: prompts.SelectionSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompts.BuildSelectionPrompt(articles, category, topCount))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("article selection request failed: %w", err)
	}
	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("article selection returned no content")
	}

	content := cleanJSONResponse(resp.Content[0].Text)

	selected, err := parseSelection(articles, content, topCount)
	if err != nil {
		log.Printf("Failed to parse selection response: %v, content: %s", err, content)
		// Fallback: keep the first topCount articles
		return articles[:topCount], nil
	}

	return selected, nil
}

// SummarizeArticle generates a short summary, caching results by URL
func (p *AnthropicProvider) SummarizeArticle(ctx context.Context, title, description, url, category string) (string, error) {
	// Check cache first
	if url != "" {
		if cached, ok := p.summaryCache.Load(url); ok {
			return cached.(string), nil
		}
	}

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 150,
		System: []anthropic.TextBlockParam{
			{Text: prompts.SummarySystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompts.BuildSummaryPrompt(title, description, url, category))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("summary request failed for %q: %w", title, err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("summary request for %q returned no content", title)
	}

	summary := strings.TrimSpace(resp.Content[0].Text)

	// Cache the summary
	if url != "" {
		p.summaryCache.Store(url, summary)
	}

	return summary, nil
}
