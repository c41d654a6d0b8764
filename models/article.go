package models

import (
	"time"
)

// Article represents a news article in the database
// This is the core domain model with GORM tags for database operations
type Article struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Category    string    `gorm:"size:50;not null;index:idx_category" json:"category"`
	Title       string    `gorm:"size:500;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	URL         string    `gorm:"size:1000;not null;uniqueIndex:idx_url" json:"url"`
	Source      string    `gorm:"size:200" json:"source"`
	Summary     string    `gorm:"type:text" json:"summary"`
	AISummary   string    `gorm:"type:text" json:"ai_summary"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"index:idx_created_at" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ArticleResponse represents the API response structure
// Same shape as the stored article plus optional scoring metadata
type ArticleResponse struct {
	ID          uint             `json:"id"`
	Category    string           `json:"category"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	URL         string           `json:"url"`
	Source      string           `json:"source"`
	Summary     string           `json:"summary"`
	AISummary   string           `json:"ai_summary"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Metadata    *ArticleMetadata `json:"metadata,omitempty"`
}

// ToResponse converts an Article to ArticleResponse
func (a *Article) ToResponse() ArticleResponse {
	return ArticleResponse{
		ID:          a.ID,
		Category:    a.Category,
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		Source:      a.Source,
		Summary:     a.Summary,
		AISummary:   a.AISummary,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// Age returns how long ago the article was stored, relative to now
func (a *Article) Age(now time.Time) time.Duration {
	return now.Sub(a.CreatedAt)
}
