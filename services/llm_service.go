package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"newsbrief-backend/config"
	"newsbrief-backend/models"
	"newsbrief-backend/prompts"

	openai "github.com/sashabaranov/go-openai"
)

// LLMProvider selects and summarizes news articles using a language model
type LLMProvider interface {
	// SelectTopArticles picks the topCount most important articles from the list
	SelectTopArticles(ctx context.Context, articles []models.RawArticle, category string, topCount int) ([]models.RawArticle, error)

	// SummarizeArticle generates a 2-3 sentence summary of an article
	SummarizeArticle(ctx context.Context, title, description, url, category string) (string, error)
}

// NewLLMProvider creates the provider selected by cfg.LLMProvider
func NewLLMProvider(cfg *config.Config) (LLMProvider, error) {
	switch cfg.LLMProvider {
	case "openai":
		clientConfig := openai.DefaultConfig(cfg.OpenAIKey)
		return newOpenAIProvider(openai.NewClientWithConfig(clientConfig), cfg.OpenAIModel), nil
	case "openrouter":
		clientConfig := openai.DefaultConfig(cfg.OpenRouterKey)
		clientConfig.BaseURL = cfg.OpenRouterBaseURL
		return newOpenAIProvider(openai.NewClientWithConfig(clientConfig), cfg.OpenRouterModel), nil
	case "anthropic":
		return NewAnthropicProvider(cfg.AnthropicKey, cfg.AnthropicModel), nil
	case "mock":
		return NewMockLLMProvider(), nil
	default:
		return nil, fmt.Errorf("invalid LLM provider: %s", cfg.LLMProvider)
	}
}

// OpenAIProvider implements LLMProvider against any OpenAI-compatible API.
// OpenRouter reuses it with a different base URL and model.
type OpenAIProvider struct {
	client       *openai.Client
	model        string
	summaryCache sync.Map // Cache for article summaries keyed by URL
}

func newOpenAIProvider(client *openai.Client, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client: client,
		model:  model,
	}
}

// SelectTopArticles asks the model for the most newsworthy articles
func (p *OpenAIProvider) SelectTopArticles(ctx context.Context, articles []models.RawArticle, category string, topCount int) ([]models.RawArticle, error) {
	if len(articles) <= topCount {
		return articles, nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: "system", Content: prompts.SelectionSystemPrompt},
			{Role: "user", Content: prompts.BuildSelectionPrompt(articles, category, topCount)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("article selection request failed: %w", err)
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	selected, err := parseSelection(articles, content, topCount)
	if err != nil {
		log.Printf("Failed to parse selection response: %v, content: %s", err, content)
		// Fallback: keep the first topCount articles
		return articles[:topCount], nil
	}

	return selected, nil
}

// SummarizeArticle generates a short summary, caching results by URL
func (p *OpenAIProvider) SummarizeArticle(ctx context.Context, title, description, url, category string) (string, error) {
	// Check cache first
	if url != "" {
		if cached, ok := p.summaryCache.Load(url); ok {
			return cached.(string), nil
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: "system", Content: prompts.SummarySystemPrompt},
			{Role: "user", Content: prompts.BuildSummaryPrompt(title, description, url, category)},
		},
		Temperature: 0.5,
		MaxTokens:   150,
	})
	if err != nil {
		return "", fmt.Errorf("summary request failed for %q: %w", title, err)
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)

	// Cache the summary
	if url != "" {
		p.summaryCache.Store(url, summary)
	}

	return summary, nil
}

// cleanJSONResponse strips markdown code fences models sometimes wrap around JSON
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// parseSelection maps the model's 1-based index response back onto the
// candidate list, dropping out-of-range picks and capping at topCount
func parseSelection(articles []models.RawArticle, content string, topCount int) ([]models.RawArticle, error) {
	var indices []int
	if err := json.Unmarshal([]byte(content), &indices); err != nil {
		return nil, fmt.Errorf("selection response is not a JSON array: %w", err)
	}

	selected := make([]models.RawArticle, 0, topCount)
	for _, idx := range indices {
		if idx >= 1 && idx <= len(articles) {
			selected = append(selected, articles[idx-1])
			if len(selected) >= topCount {
				break
			}
		}
	}

	return selected, nil
}
