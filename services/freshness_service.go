package services

import (
	"math"
	"strings"
	"time"

	"newsbrief-backend/config"
	"newsbrief-backend/models"
	"newsbrief-backend/utils"
)

// Freshness tiers
const (
	TierVeryFresh = "very_fresh"
	TierFresh     = "fresh"
	TierModerate  = "moderate"
	TierStale     = "stale"
	TierVeryStale = "very_stale"
)

// defaultFreshnessWindows maps categories to how long their articles stay
// relevant. Fast-moving categories expire sooner.
var defaultFreshnessWindows = map[string]time.Duration{
	"technology":    6 * time.Hour,
	"politics":      6 * time.Hour,
	"business":      6 * time.Hour,
	"sports":        12 * time.Hour,
	"entertainment": 12 * time.Hour,
	"health":        12 * time.Hour,
	"world":         12 * time.Hour,
	"finance":       12 * time.Hour,
	"science":       24 * time.Hour,
	"environment":   24 * time.Hour,
}

const defaultFreshnessWindow = 24 * time.Hour

// FreshnessService scores articles by age relative to their category window
type FreshnessService struct {
	cfg           *config.Config
	windows       map[string]time.Duration
	defaultWindow time.Duration
}

// NewFreshnessService creates a new freshness service instance.
// Configured windows are merged over the built-in defaults.
func NewFreshnessService(cfg *config.Config) *FreshnessService {
	windows := make(map[string]time.Duration, len(defaultFreshnessWindows))
	for category, window := range defaultFreshnessWindows {
		windows[category] = window
	}
	for category, hours := range cfg.FreshnessWindows {
		windows[strings.ToLower(category)] = time.Duration(hours) * time.Hour
	}

	defaultWindow := defaultFreshnessWindow
	if cfg.DefaultFreshnessWindowHours > 0 {
		defaultWindow = time.Duration(cfg.DefaultFreshnessWindowHours) * time.Hour
	}

	return &FreshnessService{cfg: cfg, windows: windows, defaultWindow: defaultWindow}
}

// GetFreshnessWindow returns the relevance window for a category
func (s *FreshnessService) GetFreshnessWindow(category string) time.Duration {
	if window, ok := s.windows[strings.ToLower(category)]; ok {
		return window
	}
	return s.defaultWindow
}

// CalculateFreshnessScore scores an article's age on [0, 1].
// Linear decay over the window, accelerated past the window midpoint.
func (s *FreshnessService) CalculateFreshnessScore(article *models.Article, now time.Time) float64 {
	window := s.GetFreshnessWindow(article.Category)

	age := article.Age(now)
	if age < 0 {
		age = 0
	}
	if age >= window {
		return 0.0
	}

	ageHours := age.Hours()
	windowHours := window.Hours()

	score := utils.Clamp01(1 - ageHours/windowHours)

	half := windowHours / 2
	if ageHours > half {
		ratio := (ageHours - half) / half
		decay := 1 - math.Pow(ratio, 1.5)
		score = utils.Clamp01(score * decay)
	}

	return utils.RoundScore(score)
}

// GetFreshnessTier buckets a freshness score into a human-readable tier
func (s *FreshnessService) GetFreshnessTier(score float64) string {
	switch {
	case score >= 0.8:
		return TierVeryFresh
	case score >= 0.6:
		return TierFresh
	case score >= 0.4:
		return TierModerate
	case score >= 0.2:
		return TierStale
	default:
		return TierVeryStale
	}
}

// IsFresh reports whether an article meets the minimum freshness score
func (s *FreshnessService) IsFresh(article *models.Article, now time.Time) bool {
	return s.CalculateFreshnessScore(article, now) >= s.cfg.MinFreshnessScore
}

// ShouldRefresh reports whether an article has outlived its category window
func (s *FreshnessService) ShouldRefresh(article *models.Article, now time.Time) bool {
	age := article.Age(now)
	if age < 0 {
		age = 0
	}
	return age >= s.GetFreshnessWindow(article.Category)
}
