package services

import (
	"fmt"
	"log"
	"time"

	"newsbrief-backend/config"
	"newsbrief-backend/models"
	"newsbrief-backend/utils"
)

// ServingService decides what to show for a set of requested categories:
// it pools fresh articles, deduplicates, filters and ranks them, and flags
// categories that need a background refresh
type ServingService struct {
	cfg       *config.Config
	news      *NewsService
	freshness *FreshnessService
	relevance *RelevanceService
	ranking   *RankingService
}

// NewServingService creates a new serving service instance
func NewServingService(cfg *config.Config, news *NewsService, freshness *FreshnessService, relevance *RelevanceService, ranking *RankingService) *ServingService {
	return &ServingService{
		cfg:       cfg,
		news:      news,
		freshness: freshness,
		relevance: relevance,
		ranking:   ranking,
	}
}

// GetFreshArticles assembles the briefing feed for the requested categories.
// Stale or under-covered categories are flagged for refresh in the metadata
// rather than blocking the response; a category short on articles stays
// short instead of borrowing from other categories.
func (s *ServingService) GetFreshArticles(categories []string) ([]models.Article, *models.ServingMetadata, error) {
	now := time.Now()

	metadata := &models.ServingMetadata{
		Categories:        categories,
		ArticlesFound:     make(map[string]int),
		FreshnessScores:   make(map[string]models.FreshnessStats),
		RefreshCategories: []string{},
		Timestamp:         now,
	}

	byCategory, err := s.news.GetFreshArticlesByCategory(categories)
	if err != nil {
		return nil, nil, err
	}

	var pooled []models.Article
	for _, category := range categories {
		articles := byCategory[category]
		metadata.ArticlesFound[category] = len(articles)
		if len(articles) > 0 {
			metadata.FreshnessScores[category] = s.freshnessStats(articles, now)
		}

		if needsRefresh, reason := s.ShouldRefreshCategory(category, articles, now); needsRefresh {
			log.Printf("Refresh needed for category %s: %s", category, reason)
			metadata.RefreshTriggered = true
			metadata.RefreshCategories = append(metadata.RefreshCategories, category)
		}

		pooled = append(pooled, articles...)
	}

	metadata.FilterCounts.Pooled = len(pooled)

	deduped := s.relevance.DeduplicateArticles(pooled)
	metadata.FilterCounts.AfterDedup = len(deduped)

	filtered := s.relevance.FilterByRelevance(deduped)
	metadata.FilterCounts.AfterFiltering = len(filtered)

	ranked := s.ranking.RankByCategory(filtered, s.cfg.MinArticlesPerCategory, now)

	final := make([]models.Article, 0, len(categories)*s.cfg.MinArticlesPerCategory)
	for _, category := range categories {
		selected := ranked[category]
		if len(selected) < s.cfg.MinArticlesPerCategory {
			log.Printf("Category %s is under-covered: %d of %d articles", category, len(selected), s.cfg.MinArticlesPerCategory)
		}
		final = append(final, selected...)
	}

	metadata.FilterCounts.Final = len(final)
	metadata.TotalArticles = len(final)

	return final, metadata, nil
}

// ShouldRefreshCategory reports whether a category's stored articles warrant
// a background refresh, with a machine-readable reason
func (s *ServingService) ShouldRefreshCategory(category string, articles []models.Article, now time.Time) (bool, string) {
	if len(articles) == 0 {
		return true, "no_articles"
	}

	stats := s.freshnessStats(articles, now)
	if stats.Average < s.cfg.AutoRefreshFreshnessThreshold {
		return true, fmt.Sprintf("low_freshness_score_%.2f", stats.Average)
	}
	if len(articles) < s.cfg.MinArticlesPerCategory {
		return true, fmt.Sprintf("insufficient_articles_%d", len(articles))
	}
	return false, "ok"
}

// GetArticleMetadata computes the per-article scores served alongside
// briefing responses
func (s *ServingService) GetArticleMetadata(article *models.Article, now time.Time) *models.ArticleMetadata {
	freshnessScore := s.freshness.CalculateFreshnessScore(article, now)
	relevanceScore := s.relevance.CalculateRelevanceScore(article)
	window := s.freshness.GetFreshnessWindow(article.Category)

	return &models.ArticleMetadata{
		FreshnessScore:       freshnessScore,
		FreshnessTier:        s.freshness.GetFreshnessTier(freshnessScore),
		RelevanceScore:       relevanceScore,
		CompositeScore:       s.ranking.CalculateCompositeScoreWith(freshnessScore, relevanceScore),
		IsFresh:              s.freshness.IsFresh(article, now),
		IsRelevant:           s.relevance.IsRelevant(article),
		FreshnessWindowHours: window.Hours(),
	}
}

func (s *ServingService) freshnessStats(articles []models.Article, now time.Time) models.FreshnessStats {
	if len(articles) == 0 {
		return models.FreshnessStats{}
	}

	first := s.freshness.CalculateFreshnessScore(&articles[0], now)
	total, minScore, maxScore := 0.0, first, first
	for i := range articles {
		score := s.freshness.CalculateFreshnessScore(&articles[i], now)
		total += score
		if score < minScore {
			minScore = score
		}
		if score > maxScore {
			maxScore = score
		}
	}

	return models.FreshnessStats{
		Average: utils.RoundScore(total / float64(len(articles))),
		Min:     minScore,
		Max:     maxScore,
	}
}
