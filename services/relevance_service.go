package services

import (
	"log"
	"math"
	"strings"

	"newsbrief-backend/config"
	"newsbrief-backend/models"
	"newsbrief-backend/utils"
)

// Minimum content lengths before a field contributes to the relevance score
const (
	minTitleLength       = 10
	minDescriptionLength = 20
	minSummaryLength     = 30
)

// RelevanceService scores article quality and removes near-duplicates
type RelevanceService struct {
	cfg *config.Config
}

// NewRelevanceService creates a new relevance service instance
func NewRelevanceService(cfg *config.Config) *RelevanceService {
	return &RelevanceService{cfg: cfg}
}

// CalculateRelevanceScore scores an article's content quality on [0, 1]
func (s *RelevanceService) CalculateRelevanceScore(article *models.Article) float64 {
	score := 0.0

	// Title quality (30% weight)
	if article.Title != "" {
		titleLength := len(strings.TrimSpace(article.Title))
		if titleLength >= minTitleLength {
			score += math.Min(1.0, float64(titleLength)/100.0) * 0.3
		}
	}

	// Description quality (20% weight)
	if article.Description != "" {
		descLength := len(strings.TrimSpace(article.Description))
		if descLength >= minDescriptionLength {
			score += math.Min(1.0, float64(descLength)/200.0) * 0.2
		}
	}

	// Summary quality (30% weight), AI summaries worth more than plain ones
	if article.AISummary != "" {
		summaryLength := len(strings.TrimSpace(article.AISummary))
		if summaryLength >= minSummaryLength {
			score += math.Min(1.0, float64(summaryLength)/150.0) * 0.3
		}
	} else if article.Summary != "" {
		summaryLength := len(strings.TrimSpace(article.Summary))
		if summaryLength >= minSummaryLength {
			score += math.Min(1.0, float64(summaryLength)/150.0) * 0.8 * 0.3
		}
	}

	// URL validity (10% weight)
	if strings.HasPrefix(article.URL, "http://") || strings.HasPrefix(article.URL, "https://") {
		score += 0.1
	}

	// Active status (10% weight)
	if article.IsActive {
		score += 0.1
	}

	return utils.RoundScore(math.Min(1.0, score))
}

// IsRelevant reports whether an article meets the minimum relevance score
func (s *RelevanceService) IsRelevant(article *models.Article) bool {
	return s.CalculateRelevanceScore(article) >= s.cfg.MinRelevanceScore
}

// CalculateSimilarity compares two texts after normalization
func (s *RelevanceService) CalculateSimilarity(text1, text2 string) float64 {
	if text1 == "" || text2 == "" {
		return 0.0
	}

	text1 = utils.NormalizeText(text1)
	text2 = utils.NormalizeText(text2)

	if text1 == text2 {
		return 1.0
	}

	return utils.SequenceRatio(text1, text2)
}

// findDuplicates groups indexes of articles that look like the same story.
// Articles are duplicates when they share a URL, have near-identical titles,
// or have similar titles and similar descriptions.
func (s *RelevanceService) findDuplicates(articles []models.Article) [][]int {
	var groups [][]int
	processed := make(map[int]bool)

	for i := range articles {
		if processed[i] {
			continue
		}

		group := []int{i}

		for j := i + 1; j < len(articles); j++ {
			if processed[j] {
				continue
			}

			titleSimilarity := s.CalculateSimilarity(articles[i].Title, articles[j].Title)
			descSimilarity := s.CalculateSimilarity(articles[i].Description, articles[j].Description)

			switch {
			case articles[i].URL == articles[j].URL:
				group = append(group, j)
				processed[j] = true
			case titleSimilarity >= s.cfg.TitleSimilarityThreshold:
				group = append(group, j)
				processed[j] = true
			case titleSimilarity >= s.cfg.ContentSimilarityThreshold && descSimilarity >= s.cfg.ContentSimilarityThreshold:
				group = append(group, j)
				processed[j] = true
			}
		}

		if len(group) > 1 {
			groups = append(groups, group)
			processed[i] = true
		}
	}

	return groups
}

// DeduplicateArticles removes duplicates, keeping the most relevant article
// from each group. Ties keep the earliest article. Input order is preserved.
func (s *RelevanceService) DeduplicateArticles(articles []models.Article) []models.Article {
	if len(articles) <= 1 {
		return articles
	}

	groups := s.findDuplicates(articles)
	if len(groups) == 0 {
		return articles
	}

	toRemove := make(map[int]bool)
	for _, group := range groups {
		best := group[0]
		bestScore := s.CalculateRelevanceScore(&articles[best])
		for _, idx := range group[1:] {
			if score := s.CalculateRelevanceScore(&articles[idx]); score > bestScore {
				best = idx
				bestScore = score
			}
		}
		for _, idx := range group {
			if idx != best {
				toRemove[idx] = true
			}
		}
	}

	deduplicated := make([]models.Article, 0, len(articles)-len(toRemove))
	for i := range articles {
		if !toRemove[i] {
			deduplicated = append(deduplicated, articles[i])
		}
	}

	log.Printf("Deduplicated %d articles to %d articles", len(articles), len(deduplicated))
	return deduplicated
}

// FilterByRelevance drops articles below the minimum relevance score
func (s *RelevanceService) FilterByRelevance(articles []models.Article) []models.Article {
	relevant := make([]models.Article, 0, len(articles))
	for i := range articles {
		if s.IsRelevant(&articles[i]) {
			relevant = append(relevant, articles[i])
		}
	}

	if len(relevant) < len(articles) {
		log.Printf("Filtered %d articles to %d relevant articles (min_score=%.2f)",
			len(articles), len(relevant), s.cfg.MinRelevanceScore)
	}

	return relevant
}
