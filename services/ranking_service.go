package services

import (
	"log"
	"sort"
	"time"

	"newsbrief-backend/config"
	"newsbrief-backend/models"
	"newsbrief-backend/utils"
)

// Selection confidence credited to every stored article. Selection results
// are not persisted, so articles that survived selection all score the same.
const defaultSelectionConfidence = 0.5

// RankingService orders articles by a weighted composite of freshness,
// relevance and selection confidence
type RankingService struct {
	freshness *FreshnessService
	relevance *RelevanceService

	freshnessWeight float64
	relevanceWeight float64
	selectionWeight float64
}

// NewRankingService creates a ranker with weights from the configuration.
// Weights that do not sum to 1.0 are normalized.
func NewRankingService(cfg *config.Config, freshness *FreshnessService, relevance *RelevanceService) *RankingService {
	fw := cfg.FreshnessWeight
	rw := cfg.RelevanceWeight
	sw := cfg.SelectionWeight

	total := fw + rw + sw
	if total != 1.0 {
		log.Printf("Ranking weights don't sum to 1.0 (sum=%v), normalizing", total)
		fw /= total
		rw /= total
		sw /= total
	}

	return &RankingService{
		freshness:       freshness,
		relevance:       relevance,
		freshnessWeight: fw,
		relevanceWeight: rw,
		selectionWeight: sw,
	}
}

// CalculateCompositeScore scores an article, computing the freshness and
// relevance components on the fly
func (s *RankingService) CalculateCompositeScore(article *models.Article, now time.Time) float64 {
	freshnessScore := s.freshness.CalculateFreshnessScore(article, now)
	relevanceScore := s.relevance.CalculateRelevanceScore(article)
	return s.CalculateCompositeScoreWith(freshnessScore, relevanceScore)
}

// CalculateCompositeScoreWith combines precomputed component scores
func (s *RankingService) CalculateCompositeScoreWith(freshnessScore, relevanceScore float64) float64 {
	composite := freshnessScore*s.freshnessWeight +
		relevanceScore*s.relevanceWeight +
		defaultSelectionConfidence*s.selectionWeight
	return utils.RoundScore(composite)
}

// RankArticles sorts articles by composite score, highest first.
// Equal scores keep their input order. A positive limit truncates the result.
func (s *RankingService) RankArticles(articles []models.Article, limit int, now time.Time) []models.Article {
	type scoredArticle struct {
		article models.Article
		score   float64
	}

	scored := make([]scoredArticle, len(articles))
	for i := range articles {
		scored[i] = scoredArticle{
			article: articles[i],
			score:   s.CalculateCompositeScore(&articles[i], now),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ranked := make([]models.Article, len(scored))
	for i := range scored {
		ranked[i] = scored[i].article
	}

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	log.Printf("Ranked %d articles, returning top %d", len(articles), len(ranked))
	return ranked
}

// RankByCategory groups articles by category and ranks each group separately
func (s *RankingService) RankByCategory(articles []models.Article, articlesPerCategory int, now time.Time) map[string][]models.Article {
	byCategory := make(map[string][]models.Article)
	for _, article := range articles {
		byCategory[article.Category] = append(byCategory[article.Category], article)
	}

	ranked := make(map[string][]models.Article, len(byCategory))
	for category, categoryArticles := range byCategory {
		ranked[category] = s.RankArticles(categoryArticles, articlesPerCategory, now)
	}

	return ranked
}

// GetTopArticles returns the limit highest scoring articles
func (s *RankingService) GetTopArticles(articles []models.Article, limit int, now time.Time) []models.Article {
	return s.RankArticles(articles, limit, now)
}
