package services

import (
	"testing"
	"time"

	"newsbrief-backend/config"
	"newsbrief-backend/models"
)

func freshnessTestService() *FreshnessService {
	return NewFreshnessService(&config.Config{MinFreshnessScore: 0.3})
}

func articleAged(category string, age time.Duration, now time.Time) *models.Article {
	return &models.Article{
		Category:  category,
		Title:     "Some headline",
		URL:       "https://example.com/article",
		CreatedAt: now.Add(-age),
	}
}

func TestGetFreshnessWindow(t *testing.T) {
	service := freshnessTestService()

	tests := []struct {
		category string
		expected time.Duration
	}{
		{"technology", 6 * time.Hour},
		{"politics", 6 * time.Hour},
		{"business", 6 * time.Hour},
		{"sports", 12 * time.Hour},
		{"world", 12 * time.Hour},
		{"science", 24 * time.Hour},
		{"environment", 24 * time.Hour},
		{"Technology", 6 * time.Hour}, // case-insensitive lookup
		{"astrology", 24 * time.Hour}, // unknown falls back to default
	}

	for _, tt := range tests {
		if got := service.GetFreshnessWindow(tt.category); got != tt.expected {
			t.Errorf("GetFreshnessWindow(%q) = %v, expected %v", tt.category, got, tt.expected)
		}
	}
}

func TestGetFreshnessWindow_ConfiguredOverrides(t *testing.T) {
	service := NewFreshnessService(&config.Config{
		FreshnessWindows:            map[string]int{"Technology": 2},
		DefaultFreshnessWindowHours: 48,
	})

	if got := service.GetFreshnessWindow("technology"); got != 2*time.Hour {
		t.Errorf("GetFreshnessWindow(technology) = %v, expected configured 2h", got)
	}
	if got := service.GetFreshnessWindow("science"); got != 24*time.Hour {
		t.Errorf("GetFreshnessWindow(science) = %v, expected default 24h", got)
	}
	if got := service.GetFreshnessWindow("astrology"); got != 48*time.Hour {
		t.Errorf("GetFreshnessWindow(astrology) = %v, expected configured default 48h", got)
	}
}

func TestCalculateFreshnessScore(t *testing.T) {
	service := freshnessTestService()
	now := time.Now()

	tests := []struct {
		name     string
		category string
		age      time.Duration
		expected float64
	}{
		{"brand new", "technology", 0, 1.0},
		{"one hour old", "technology", time.Hour, 0.8333},
		{"at the midpoint", "technology", 3 * time.Hour, 0.5},
		{"past the midpoint", "technology", 4*time.Hour + 30*time.Minute, 0.1616},
		{"at the window", "technology", 6 * time.Hour, 0.0},
		{"beyond the window", "technology", 10 * time.Hour, 0.0},
		{"slow category still fresh", "science", 6 * time.Hour, 0.75},
		{"future timestamp treated as new", "technology", -time.Hour, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := articleAged(tt.category, tt.age, now)
			if got := service.CalculateFreshnessScore(article, now); got != tt.expected {
				t.Errorf("CalculateFreshnessScore = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCalculateFreshnessScore_Monotonic(t *testing.T) {
	service := freshnessTestService()
	now := time.Now()

	previous := 1.1
	for age := time.Duration(0); age <= 6*time.Hour; age += 30 * time.Minute {
		article := articleAged("technology", age, now)
		score := service.CalculateFreshnessScore(article, now)
		if score > previous {
			t.Fatalf("score increased with age: %v at age %v (previous %v)", score, age, previous)
		}
		if score < 0 || score > 1 {
			t.Fatalf("score %v at age %v outside [0, 1]", score, age)
		}
		previous = score
	}
}

func TestGetFreshnessTier(t *testing.T) {
	service := freshnessTestService()

	tests := []struct {
		score    float64
		expected string
	}{
		{1.0, TierVeryFresh},
		{0.8, TierVeryFresh},
		{0.79, TierFresh},
		{0.6, TierFresh},
		{0.59, TierModerate},
		{0.4, TierModerate},
		{0.39, TierStale},
		{0.2, TierStale},
		{0.19, TierVeryStale},
		{0.0, TierVeryStale},
	}

	for _, tt := range tests {
		if got := service.GetFreshnessTier(tt.score); got != tt.expected {
			t.Errorf("GetFreshnessTier(%v) = %q, expected %q", tt.score, got, tt.expected)
		}
	}
}

func TestIsFresh(t *testing.T) {
	service := freshnessTestService()
	now := time.Now()

	if !service.IsFresh(articleAged("technology", time.Hour, now), now) {
		t.Error("one hour old technology article should be fresh")
	}
	if service.IsFresh(articleAged("technology", 5*time.Hour, now), now) {
		t.Error("five hour old technology article should not be fresh")
	}
}

func TestShouldRefresh(t *testing.T) {
	service := freshnessTestService()
	now := time.Now()

	tests := []struct {
		name     string
		category string
		age      time.Duration
		expected bool
	}{
		{"inside window", "technology", 5 * time.Hour, false},
		{"exactly at window", "technology", 6 * time.Hour, true},
		{"past window", "technology", 7 * time.Hour, true},
		{"slow category inside window", "science", 13 * time.Hour, false},
		{"future timestamp", "technology", -time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := articleAged(tt.category, tt.age, now)
			if got := service.ShouldRefresh(article, now); got != tt.expected {
				t.Errorf("ShouldRefresh = %v, expected %v", got, tt.expected)
			}
		})
	}
}
