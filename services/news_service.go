package services

import (
	"errors"
	"fmt"
	"time"

	"newsbrief-backend/config"
	"newsbrief-backend/models"

	"gorm.io/gorm"
)

// NewsService reads stored articles back out of the database
type NewsService struct {
	db        *gorm.DB
	cfg       *config.Config
	freshness *FreshnessService
}

// NewNewsService creates a new news service instance
func NewNewsService(cfg *config.Config, db *gorm.DB, freshness *FreshnessService) *NewsService {
	return &NewsService{
		db:        db,
		cfg:       cfg,
		freshness: freshness,
	}
}

// GetRecentArticles retrieves active articles stored within the last hours
// for the given categories, newest first
func (s *NewsService) GetRecentArticles(categories []string, hours int) ([]models.Article, error) {
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)

	var articles []models.Article
	err := s.db.
		Where("category IN ?", categories).
		Where("created_at >= ?", cutoff).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query recent articles: %w", err)
	}
	return articles, nil
}

// CountRecentArticles counts active articles stored within the last hours
// for the given categories
func (s *NewsService) CountRecentArticles(categories []string, hours int) (int64, error) {
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)

	var count int64
	err := s.db.Model(&models.Article{}).
		Where("category IN ?", categories).
		Where("created_at >= ?", cutoff).
		Where("is_active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count recent articles: %w", err)
	}
	return count, nil
}

// GetFreshArticlesByCategory retrieves active articles still inside each
// category's freshness window, keyed by category. Each category uses its
// own window so technology turns over faster than science.
func (s *NewsService) GetFreshArticlesByCategory(categories []string) (map[string][]models.Article, error) {
	now := time.Now()
	result := make(map[string][]models.Article, len(categories))

	for _, category := range categories {
		window := s.freshness.GetFreshnessWindow(category)
		cutoff := now.Add(-window)

		var articles []models.Article
		err := s.db.
			Where("category = ?", category).
			Where("created_at >= ?", cutoff).
			Where("is_active = ?", true).
			Order("created_at DESC").
			Find(&articles).Error
		if err != nil {
			return nil, fmt.Errorf("failed to query fresh articles for %s: %w", category, err)
		}
		result[category] = articles
	}

	return result, nil
}

// GetArticleByID retrieves a single article by ID
func (s *NewsService) GetArticleByID(id string) (*models.Article, error) {
	var article models.Article
	err := s.db.Where("id = ?", id).First(&article).Error
	if err != nil {
		return nil, fmt.Errorf("article not found: %w", err)
	}
	return &article, nil
}

// LastUpdated returns the most recent update time across the given
// categories, or nil when nothing is stored yet
func (s *NewsService) LastUpdated(categories []string) (*time.Time, error) {
	var article models.Article
	err := s.db.
		Where("category IN ?", categories).
		Order("updated_at DESC").
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query last update: %w", err)
	}
	return &article.UpdatedAt, nil
}

// GetArticleStats returns statistics about the article database
func (s *NewsService) GetArticleStats() (map[string]interface{}, error) {
	var totalCount int64
	var activeCount int64
	var categories []string
	var sources []string

	// Total articles
	s.db.Model(&models.Article{}).Count(&totalCount)

	// Active articles
	s.db.Model(&models.Article{}).Where("is_active = ?", true).Count(&activeCount)

	// Unique categories
	s.db.Model(&models.Article{}).Distinct("category").Pluck("category", &categories)

	// Unique sources
	s.db.Model(&models.Article{}).Distinct("source").Pluck("source", &sources)

	// Date range
	var oldestArticle, newestArticle models.Article
	s.db.Order("created_at ASC").First(&oldestArticle)
	s.db.Order("created_at DESC").First(&newestArticle)

	stats := map[string]interface{}{
		"total_articles":    totalCount,
		"active_articles":   activeCount,
		"unique_categories": len(categories),
		"unique_sources":    len(sources),
		"oldest_article":    oldestArticle.CreatedAt.Format(time.RFC3339),
		"newest_article":    newestArticle.CreatedAt.Format(time.RFC3339),
	}

	return stats, nil
}
