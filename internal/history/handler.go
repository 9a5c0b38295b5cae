package history

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dustin/crop-recommender/internal/utils"
	"github.com/dustin/crop-recommender/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for prediction history
type Handler struct {
	service Service
	logger  *logger.Logger
}

// NewHandler creates a new history handler
func NewHandler(service Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.WithComponent("history-handler"),
	}
}

// ListPredictions returns a page of recorded predictions, newest first
func (h *Handler) ListPredictions(c *gin.Context) {
	// Parse pagination parameters
	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	limit := 20
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	subject, err := utils.GetSubject(c)
	if err != nil {
		subject = "unknown"
	}
	h.logger.Info(fmt.Sprintf("Prediction history page %d (limit %d) requested by %s", page, limit, subject))

	records, total, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prediction history"})
		return
	}

	meta := utils.CalculatePagination(total, page, limit)
	c.JSON(http.StatusOK, &ListResponse{
		Records: records,
		Total:   meta.Total,
		Page:    meta.Page,
		Limit:   meta.Limit,
		Pages:   meta.Pages,
	})
}

// RegisterRoutes registers all history routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	// History is an operator view and always requires authentication
	predictions := router.Group("/predictions")
	predictions.Use(authMiddleware)
	{
		predictions.GET("", h.ListPredictions)
	}
}
