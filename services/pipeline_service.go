package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"newsbrief-backend/config"
	"newsbrief-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PipelineOptions toggles individual pipeline stages for one run
type PipelineOptions struct {
	EnableSelection     bool
	EnableSummarization bool
	EnableStorage       bool
}

// DefaultPipelineOptions runs every stage, honoring the configured
// selection switch
func DefaultPipelineOptions(cfg *config.Config) PipelineOptions {
	return PipelineOptions{
		EnableSelection:     cfg.SelectionEnabled,
		EnableSummarization: true,
		EnableStorage:       true,
	}
}

// PipelineService orchestrates fetching, selection, summarization and storage
type PipelineService struct {
	cfg      *config.Config
	provider NewsProvider
	llm      LLMProvider
	db       *gorm.DB
}

// NewPipelineService creates a new pipeline service instance
func NewPipelineService(cfg *config.Config, provider NewsProvider, llm LLMProvider, db *gorm.DB) *PipelineService {
	return &PipelineService{
		cfg:      cfg,
		provider: provider,
		llm:      llm,
		db:       db,
	}
}

// ProcessCategories runs the full pipeline for the given categories.
// Unknown categories are dropped with a warning. Fetch and selection
// failures are isolated per category so one bad category cannot sink
// the run; storage failures abort the whole run.
func (s *PipelineService) ProcessCategories(ctx context.Context, categories []string, opts PipelineOptions) (*models.ProcessingResult, error) {
	startTime := time.Now()

	validCategories := make([]string, 0, len(categories))
	for _, category := range categories {
		if s.cfg.IsValidCategory(category) {
			validCategories = append(validCategories, category)
		} else {
			log.Printf("Skipping unknown category: %s", category)
		}
	}

	if len(validCategories) == 0 {
		log.Println("No valid categories provided")
		return buildResult(nil, startTime), nil
	}

	log.Printf("Starting pipeline processing for categories: %v", validCategories)

	// Fetch and select each category concurrently
	results := make([][]models.SelectedArticle, len(validCategories))
	var wg sync.WaitGroup
	for i, category := range validCategories {
		wg.Add(1)
		go func(idx int, category string) {
			defer wg.Done()
			results[idx] = s.fetchAndSelect(ctx, category, opts)
		}(i, category)
	}
	wg.Wait()

	var selected []models.SelectedArticle
	for _, categoryArticles := range results {
		selected = append(selected, categoryArticles...)
	}

	if len(selected) == 0 {
		log.Println("No articles selected for processing")
		return buildResult(nil, startTime), nil
	}

	processed := s.summarizeArticles(ctx, selected, opts)

	if opts.EnableStorage {
		if err := s.storeArticles(processed); err != nil {
			return nil, fmt.Errorf("pipeline storage failed: %w", err)
		}
	}

	return buildResult(processed, startTime), nil
}

// ProcessArticles runs selection, summarization and storage over an
// already-fetched list of raw articles
func (s *PipelineService) ProcessArticles(ctx context.Context, raw []models.RawArticle, opts PipelineOptions) (*models.ProcessingResult, error) {
	startTime := time.Now()

	category := "general"
	if len(raw) > 0 {
		category = raw[0].Category
	}

	selected := s.selectArticles(ctx, raw, category, opts)
	processed := s.summarizeArticles(ctx, selected, opts)

	if opts.EnableStorage {
		if err := s.storeArticles(processed); err != nil {
			return nil, fmt.Errorf("pipeline storage failed: %w", err)
		}
	}

	return buildResult(processed, startTime), nil
}

// fetchAndSelect runs the fetch and selection stages for one category.
// Failures log and yield an empty result so other categories continue.
func (s *PipelineService) fetchAndSelect(ctx context.Context, category string, opts PipelineOptions) []models.SelectedArticle {
	raw, err := s.provider.FetchByCategory(ctx, category)
	if err != nil {
		log.Printf("Error processing category %s: %v", category, err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	return s.selectArticles(ctx, raw, category, opts)
}

// selectArticles narrows candidates to the configured top count. Selection
// results are matched back to candidate URLs so the provider cannot smuggle
// in articles that were never fetched; LLM failures fall back to fetch order.
func (s *PipelineService) selectArticles(ctx context.Context, articles []models.RawArticle, category string, opts PipelineOptions) []models.SelectedArticle {
	topCount := s.cfg.TopArticlesPerCategory

	if !opts.EnableSelection {
		if len(articles) > topCount {
			articles = articles[:topCount]
		}
		return newSelectedArticles(articles)
	}

	if len(articles) <= topCount {
		return newSelectedArticles(articles)
	}

	picked, err := s.llm.SelectTopArticles(ctx, articles, category, topCount)
	if err != nil {
		log.Printf("Article selection failed for %s, keeping first %d: %v", category, topCount, err)
		return newSelectedArticles(articles[:topCount])
	}

	known := make(map[string]models.RawArticle, len(articles))
	for _, article := range articles {
		known[article.URL] = article
	}

	selected := make([]models.SelectedArticle, 0, topCount)
	for _, pick := range picked {
		raw, ok := known[pick.URL]
		if !ok {
			log.Printf("Selection returned unknown article URL %q, discarding", pick.URL)
			continue
		}
		selected = append(selected, newSelectedArticle(raw))
		if len(selected) >= topCount {
			break
		}
	}

	log.Printf("Selected %d articles from %d candidates for %s", len(selected), len(articles), category)
	return selected
}

// summarizeArticles generates AI summaries concurrently. Articles whose
// summarization fails keep an empty summary and count as errors.
func (s *PipelineService) summarizeArticles(ctx context.Context, selected []models.SelectedArticle, opts PipelineOptions) []models.ProcessedArticle {
	processed := make([]models.ProcessedArticle, len(selected))

	if !opts.EnableSummarization {
		log.Println("Summarization is disabled, keeping articles without summaries")
		for i := range selected {
			processed[i] = models.NewProcessedArticle(selected[i], "", time.Now())
		}
		return processed
	}

	concurrency := s.cfg.SummarizeConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency) // Limit concurrent LLM calls

	for i := range selected {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			article := selected[idx]
			summary, err := s.llm.SummarizeArticle(ctx, article.Title, article.Description, article.URL, article.Category)
			if err != nil {
				log.Printf("Failed to summarize article %q: %v", article.Title, err)
				summary = ""
			}
			processed[idx] = models.NewProcessedArticle(article, summary, time.Now())
		}(i)
	}

	wg.Wait()
	return processed
}

// storeArticles upserts processed articles by URL in one transaction.
// Existing rows keep their title, category and creation time; any failure
// rolls back the whole batch.
func (s *PipelineService) storeArticles(processed []models.ProcessedArticle) error {
	if len(processed) == 0 {
		return nil
	}

	now := time.Now()

	return s.db.Transaction(func(tx *gorm.DB) error {
		for i := range processed {
			summary := processed[i].AISummary
			if summary == "" {
				summary = processed[i].Description
			}

			article := models.Article{
				Category:    processed[i].Category,
				Title:       processed[i].Title,
				URL:         processed[i].URL,
				Source:      processed[i].Source,
				Description: processed[i].Description,
				Summary:     summary,
				AISummary:   processed[i].AISummary,
				IsActive:    true,
				CreatedAt:   now,
				UpdatedAt:   now,
			}

			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "url"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"description", "summary", "ai_summary", "is_active", "updated_at",
				}),
			}).Create(&article).Error
			if err != nil {
				return fmt.Errorf("failed to save article %q: %w", article.Title, err)
			}
		}

		log.Printf("Saved %d articles to database", len(processed))
		return nil
	})
}

func newSelectedArticle(raw models.RawArticle) models.SelectedArticle {
	return models.SelectedArticle{
		RawArticle:     raw,
		SelectionScore: defaultSelectionConfidence,
	}
}

func newSelectedArticles(raw []models.RawArticle) []models.SelectedArticle {
	selected := make([]models.SelectedArticle, len(raw))
	for i := range raw {
		selected[i] = newSelectedArticle(raw[i])
	}
	return selected
}

func buildResult(processed []models.ProcessedArticle, startTime time.Time) *models.ProcessingResult {
	if processed == nil {
		processed = []models.ProcessedArticle{}
	}

	successCount := 0
	for i := range processed {
		if processed[i].AISummary != "" {
			successCount++
		}
	}

	processingTime := time.Since(startTime).Seconds()
	log.Printf("Pipeline completed: %d articles processed (%d successful, %d errors) in %.2fs",
		len(processed), successCount, len(processed)-successCount, processingTime)

	return &models.ProcessingResult{
		Articles:       processed,
		TotalCount:     len(processed),
		SuccessCount:   successCount,
		ErrorCount:     len(processed) - successCount,
		ProcessingTime: processingTime,
	}
}
