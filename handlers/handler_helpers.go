package handlers

import (
	"net/http"
	"time"

	"newsbrief-backend/models"
	"newsbrief-backend/services"

	"github.com/gin-gonic/gin"
)

// =============================================================================
// Response Helpers
// =============================================================================

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, code int, error, message string) {
	c.JSON(code, models.ErrorResponse{
		Error:   error,
		Message: message,
		Code:    code,
	})
}

// respondBadRequest sends a 400 error response
func respondBadRequest(c *gin.Context, message string) {
	respondWithError(c, http.StatusBadRequest, "Invalid request", message)
}

// respondMissingParam sends a 400 error for missing parameters
func respondMissingParam(c *gin.Context, param string) {
	respondWithError(c, http.StatusBadRequest, "Missing parameter", param+" is required")
}

// respondInternalError sends a 500 error response
func respondInternalError(c *gin.Context, message string) {
	respondWithError(c, http.StatusInternalServerError, "Internal error", message)
}

// respondNotFound sends a 404 error response
func respondNotFound(c *gin.Context, message string) {
	respondWithError(c, http.StatusNotFound, "Not found", message)
}

// =============================================================================
// Article Conversion Helpers
// =============================================================================

// articlesToResponses converts articles to responses with scoring metadata
func articlesToResponses(articles []models.Article, serving *services.ServingService, now time.Time) []models.ArticleResponse {
	responses := make([]models.ArticleResponse, len(articles))
	for i := range articles {
		responses[i] = articles[i].ToResponse()
		responses[i].Metadata = serving.GetArticleMetadata(&articles[i], now)
	}
	return responses
}
