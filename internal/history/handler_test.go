package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dustin/crop-recommender/internal/utils"
	"github.com/dustin/crop-recommender/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerRouter(t *testing.T, repo *mockRepository, auth gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, _ := testLogger(t)
	return setupHandlerRouterWithLogger(t, repo, auth, log)
}

func setupHandlerRouterWithLogger(t *testing.T, repo *mockRepository, auth gin.HandlerFunc, log *logger.Logger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := NewService(nil, repo, clockwork.NewFakeClock(), nil, log)
	require.NoError(t, err)

	router := gin.New()
	NewHandler(svc, log).RegisterRoutes(router.Group("/api/v1"), auth)
	return router
}

func allowAll(c *gin.Context) { c.Next() }

func TestHandler_ListPredictions(t *testing.T) {
	repo := &mockRepository{}
	seedRecords(repo, 25, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	router := setupHandlerRouter(t, repo, allowAll)

	testCases := []struct {
		name          string
		query         string
		expectedPage  int
		expectedLimit int
		expectedLen   int
		expectedPages int
	}{
		{"defaults", "", 1, 20, 20, 2},
		{"second page", "?page=2&limit=20", 2, 20, 5, 2},
		{"custom limit", "?limit=10", 1, 10, 10, 3},
		{"invalid values ignored", "?page=abc&limit=-3", 1, 20, 20, 2},
		{"limit above cap ignored", "?limit=1000", 1, 20, 20, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/predictions"+tc.query, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)

			var resp ListResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, int64(25), resp.Total)
			assert.Equal(t, tc.expectedPage, resp.Page)
			assert.Equal(t, tc.expectedLimit, resp.Limit)
			assert.Equal(t, tc.expectedPages, resp.Pages)
			assert.Len(t, resp.Records, tc.expectedLen)
		})
	}
}

func TestHandler_ListPredictionsError(t *testing.T) {
	repo := &mockRepository{listErr: errors.New("db down")}
	router := setupHandlerRouter(t, repo, allowAll)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/predictions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch prediction history")
}

func TestHandler_RequiresAuthMiddleware(t *testing.T) {
	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
	}
	router := setupHandlerRouter(t, &mockRepository{}, deny)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/predictions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_LogsRequestingSubject(t *testing.T) {
	log, buf := testLogger(t)
	router := setupHandlerRouterWithLogger(t, &mockRepository{}, utils.JWTMiddleware("history-secret"), log)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "operator",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("history-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/predictions?page=2&limit=5", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "Prediction history page 2 (limit 5) requested by operator")
}
