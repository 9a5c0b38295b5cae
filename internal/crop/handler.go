package crop

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

// IndexTemplate is the page every form route renders
const IndexTemplate = "index.html"

// Handler handles the HTML form routes
type Handler struct {
	service Service
}

// NewHandler creates a new crop handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Index renders the empty form
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, IndexTemplate, gin.H{})
}

// Predict runs the pipeline on the posted form. The page is always rendered with 200;
// failures only change the message.
func (h *Handler) Predict(c *gin.Context) {
	values := make(map[string]string, FeatureCount)
	for _, name := range FieldNames {
		if value, ok := c.GetPostForm(name); ok {
			values[name] = value
		}
	}

	outcome := h.service.Predict(c.Request.Context(), PredictInput{
		Values:     values,
		ClientAddr: c.ClientIP(),
		RequestID:  requestid.Get(c),
	})

	c.HTML(http.StatusOK, IndexTemplate, gin.H{
		"result": outcome.Message,
		"status": outcome.Status,
		"values": values,
	})
}

// RegisterRoutes registers the form routes
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Index)
	router.POST("/predict", h.Predict)
}
