package models

import "time"

// RawArticle represents an article as fetched from a news provider,
// before selection and summarization
type RawArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at,omitempty"`
	Source      string `json:"source"`
	Category    string `json:"category"`
}

// SelectedArticle is a raw article that survived top-N selection
type SelectedArticle struct {
	RawArticle
	SelectionScore float64 `json:"selection_score"` // Confidence assigned at selection time
}

// ProcessedArticle is a selected article enriched with an AI summary
type ProcessedArticle struct {
	SelectedArticle
	AISummary   string    `json:"ai_summary"`
	ProcessedAt time.Time `json:"processed_at"`
}

// NewProcessedArticle creates a ProcessedArticle from a selection result
func NewProcessedArticle(selected SelectedArticle, aiSummary string, processedAt time.Time) ProcessedArticle {
	return ProcessedArticle{
		SelectedArticle: selected,
		AISummary:       aiSummary,
		ProcessedAt:     processedAt,
	}
}

// ProcessingResult summarizes one pipeline run
type ProcessingResult struct {
	Articles       []ProcessedArticle `json:"articles"`
	TotalCount     int                `json:"total_count"`
	SuccessCount   int                `json:"success_count"` // Articles that received an AI summary
	ErrorCount     int                `json:"error_count"`
	ProcessingTime float64            `json:"processing_time"` // Seconds
}

// CategoryRequest represents an incoming briefing request
type CategoryRequest struct {
	Categories []string `json:"categories" binding:"required"`
}

// BriefingResponse represents the response for a briefing request
type BriefingResponse struct {
	Categories        []string          `json:"categories"`
	Articles          []ArticleResponse `json:"articles"`
	TotalArticles     int               `json:"total_articles"`
	GeneratedAt       time.Time         `json:"generated_at"`
	FreshnessMetadata *ServingMetadata  `json:"freshness_metadata"`
	RefreshTriggered  bool              `json:"refresh_triggered"`
}

// FreshnessStats aggregates freshness scores for one category
type FreshnessStats struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// FilterCounts tracks how many articles survived each serving stage
type FilterCounts struct {
	Pooled         int `json:"pooled"`
	AfterDedup     int `json:"after_dedup"`
	AfterFiltering int `json:"after_filtering"`
	Final          int `json:"final"`
}

// ServingMetadata describes how a briefing was assembled
type ServingMetadata struct {
	Categories        []string                  `json:"categories"`
	ArticlesFound     map[string]int            `json:"articles_found"`
	FreshnessScores   map[string]FreshnessStats `json:"freshness_scores"`
	RefreshTriggered  bool                      `json:"refresh_triggered"`
	RefreshCategories []string                  `json:"refresh_categories"`
	Timestamp         time.Time                 `json:"timestamp"`
	TotalArticles     int                       `json:"total_articles"`
	FilterCounts      FilterCounts              `json:"filter_counts"`
}

// ArticleMetadata carries per-article scoring details for API consumers
type ArticleMetadata struct {
	FreshnessScore       float64 `json:"freshness_score"`
	FreshnessTier        string  `json:"freshness_tier"`
	RelevanceScore       float64 `json:"relevance_score"`
	CompositeScore       float64 `json:"composite_score"`
	IsFresh              bool    `json:"is_fresh"`
	IsRelevant           bool    `json:"is_relevant"`
	FreshnessWindowHours float64 `json:"freshness_window_hours"`
}

// CategoriesResponse lists the categories available for briefings
type CategoriesResponse struct {
	Categories    []string `json:"categories"`
	MaxCategories int      `json:"max_categories"`
}

// RefreshResponse acknowledges a background refresh request
type RefreshResponse struct {
	Message    string   `json:"message"`
	Categories []string `json:"categories"`
	Status     string   `json:"status"`
}

// StatusResponse reports briefing readiness for a set of categories
type StatusResponse struct {
	Categories          []string   `json:"categories"`
	TotalRecentArticles int        `json:"total_recent_articles"`
	Status              string     `json:"status"`
	LastUpdated         *time.Time `json:"last_updated"`
}

// Briefing statuses
const (
	StatusReady      = "ready"
	StatusProcessing = "processing"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
