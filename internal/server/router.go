package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dustin/crop-recommender/internal/artifact"
	"github.com/dustin/crop-recommender/internal/crop"
	"github.com/dustin/crop-recommender/internal/history"
	"github.com/dustin/crop-recommender/internal/utils"
	"github.com/dustin/crop-recommender/pkg/logger"
	"github.com/dustin/crop-recommender/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerStatus reports whether a background worker is scheduled
type WorkerStatus interface {
	IsRunning() bool
}

// Deps are the collaborators wired into the router. History and Worker are nil when history is disabled.
type Deps struct {
	ServiceName    string
	Artifacts      *artifact.Set
	Crop           crop.Service
	History        history.Service
	Worker         WorkerStatus
	JWTSecret      string
	TrustedProxies []string
	MetricsHandler http.Handler
	Clock          clockwork.Clock
	Logger         *logger.Logger
}

// NewRouter builds the gin engine with the middleware stack and every route
func NewRouter(deps Deps) (*gin.Engine, error) {
	if deps.Crop == nil || deps.Artifacts == nil || deps.Logger == nil {
		return nil, errors.New("router requires the prediction service, artifacts and a logger")
	}
	// History exposes client addresses and has no fallback key
	if deps.History != nil && deps.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required when prediction history is enabled")
	}

	// Set defaults for optional dependencies
	if deps.ServiceName == "" {
		deps.ServiceName = "crop-recommender"
	}
	if deps.MetricsHandler == nil {
		deps.MetricsHandler = promhttp.Handler()
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	log := deps.Logger.WithComponent("http")

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()

	// nil trusts no proxy, so ClientIP is the socket peer
	if err := router.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	// Configure standard middleware stack
	router.Use(requestid.New())
	router.Use(accessLog(log, deps.Clock))
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
	}))

	router.SetHTMLTemplate(tmpl)

	// Form routes
	crop.NewHandler(deps.Crop).RegisterRoutes(router)

	// Health check endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": deps.Clock.Now(),
			"service":   deps.ServiceName,
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		workerRunning := false
		if deps.Worker != nil {
			workerRunning = deps.Worker.IsRunning()
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": deps.Clock.Now(),
			"service":   deps.ServiceName,
			"artifacts": gin.H{
				"minmax_scaler":   deps.Artifacts.MinMax().Kind(),
				"standard_scaler": deps.Artifacts.Standard().Kind(),
				"model":           deps.Artifacts.Model().Name(),
				"features":        deps.Artifacts.Dim(),
				"labels":          deps.Artifacts.Labels().Len(),
			},
			"history":      deps.History != nil,
			"prune_worker": workerRunning,
		})
	})

	router.GET("/metrics", gin.WrapH(deps.MetricsHandler))

	// Operator API, only mounted when history is enabled
	if deps.History != nil {
		v1 := router.Group("/api/v1")
		history.NewHandler(deps.History, deps.Logger).RegisterRoutes(v1, utils.JWTMiddleware(deps.JWTSecret))
	}

	return router, nil
}
