package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"newsbrief-backend/config"
	"newsbrief-backend/models"
	"newsbrief-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BriefingHandler struct {
	cfg      *config.Config
	db       *gorm.DB
	serving  *services.ServingService
	news     *services.NewsService
	pipeline *services.PipelineService
}

// NewBriefingHandler creates a new briefing handler
func NewBriefingHandler(cfg *config.Config, db *gorm.DB, serving *services.ServingService, news *services.NewsService, pipeline *services.PipelineService) *BriefingHandler {
	return &BriefingHandler{
		cfg:      cfg,
		db:       db,
		serving:  serving,
		news:     news,
		pipeline: pipeline,
	}
}

// GetCategories lists the categories available for briefings
// GET /api/v1/categories
func (h *BriefingHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.CategoriesResponse{
		Categories:    h.cfg.AvailableCategories,
		MaxCategories: h.cfg.MaxCategories,
	})
}

// GenerateBriefing serves the curated briefing for the requested categories
// POST /api/v1/briefing
func (h *BriefingHandler) GenerateBriefing(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if len(req.Categories) == 0 {
		respondBadRequest(c, "At least one category is required")
		return
	}
	if len(req.Categories) > h.cfg.MaxCategories {
		respondBadRequest(c, fmt.Sprintf("At most %d categories are allowed", h.cfg.MaxCategories))
		return
	}
	for _, category := range req.Categories {
		if !h.cfg.IsValidCategory(category) {
			respondBadRequest(c, fmt.Sprintf("Unknown category: %s", category))
			return
		}
	}

	articles, metadata, err := h.serving.GetFreshArticles(req.Categories)
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}

	// Refresh stale categories without blocking the response
	if metadata.RefreshTriggered {
		go h.refreshInBackground(metadata.RefreshCategories)
	}

	now := time.Now()
	c.JSON(http.StatusOK, models.BriefingResponse{
		Categories:        req.Categories,
		Articles:          articlesToResponses(articles, h.serving, now),
		TotalArticles:     len(articles),
		GeneratedAt:       now,
		FreshnessMetadata: metadata,
		RefreshTriggered:  metadata.RefreshTriggered,
	})
}

// GetBriefingStatus reports whether briefing data is ready for the given
// comma-separated categories
// GET /api/v1/briefing/status/:categories
func (h *BriefingHandler) GetBriefingStatus(c *gin.Context) {
	raw := c.Param("categories")
	if raw == "" {
		respondMissingParam(c, "Categories path parameter")
		return
	}

	valid := make([]string, 0)
	for _, category := range strings.Split(raw, ",") {
		category = strings.TrimSpace(category)
		if h.cfg.IsValidCategory(category) {
			valid = append(valid, category)
		}
	}
	if len(valid) == 0 {
		respondBadRequest(c, "No valid categories provided")
		return
	}

	count, err := h.news.CountRecentArticles(valid, 24)
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}

	lastUpdated, err := h.news.LastUpdated(valid)
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}

	status := models.StatusReady
	if count == 0 {
		status = models.StatusProcessing
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Categories:          valid,
		TotalRecentArticles: int(count),
		Status:              status,
		LastUpdated:         lastUpdated,
	})
}

// RefreshBriefing kicks off a background refresh of all categories
// POST /api/v1/briefing/refresh
func (h *BriefingHandler) RefreshBriefing(c *gin.Context) {
	categories := h.cfg.AvailableCategories

	go h.refreshInBackground(categories)

	c.JSON(http.StatusOK, models.RefreshResponse{
		Message:    "Refresh started for all categories",
		Categories: categories,
		Status:     models.StatusProcessing,
	})
}

// GetArticleByID retrieves a single article with scoring metadata
// GET /api/v1/articles/:id
func (h *BriefingHandler) GetArticleByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondMissingParam(c, "Article ID")
		return
	}

	article, err := h.news.GetArticleByID(id)
	if err != nil {
		respondNotFound(c, err.Error())
		return
	}

	response := article.ToResponse()
	response.Metadata = h.serving.GetArticleMetadata(article, time.Now())
	c.JSON(http.StatusOK, response)
}

// GetStats returns statistics about the article database
// GET /api/v1/stats
func (h *BriefingHandler) GetStats(c *gin.Context) {
	stats, err := h.news.GetArticleStats()
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HealthCheck reports service and database health
// GET /health
func (h *BriefingHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	database := "up"

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = "degraded"
		database = "down"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"database": database,
		"service":  "newsbrief-backend",
		"version":  "1.0.0",
	})
}

// refreshInBackground runs the pipeline for the given categories detached
// from the request that triggered it
func (h *BriefingHandler) refreshInBackground(categories []string) {
	log.Printf("Starting background refresh for categories: %v", categories)

	opts := services.DefaultPipelineOptions(h.cfg)
	if _, err := h.pipeline.ProcessCategories(context.Background(), categories, opts); err != nil {
		log.Printf("Background refresh failed: %v", err)
	}
}
