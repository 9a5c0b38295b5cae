package crop

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dustin/crop-recommender/web"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureService records the last input and returns a fixed outcome
type captureService struct {
	outcome *Outcome
	last    PredictInput
}

func (s *captureService) Predict(_ context.Context, input PredictInput) *Outcome {
	s.last = input
	return s.outcome
}

func setupRouter(t *testing.T, svc Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	router := gin.New()
	router.Use(requestid.New())
	router.SetHTMLTemplate(tmpl)
	NewHandler(svc).RegisterRoutes(router)
	return router
}

func postForm(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "198.51.100.7:4242"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func riceValues() url.Values {
	form := url.Values{}
	for name, value := range riceForm() {
		form.Set(name, value)
	}
	return form
}

func TestHandler_Index(t *testing.T) {
	router := setupRouter(t, &captureService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `action="/predict"`)
	assert.NotContains(t, w.Body.String(), `id="result"`)
}

func TestHandler_PredictPassesFormToService(t *testing.T) {
	svc := &captureService{outcome: &Outcome{Status: StatusSuccess, Message: SuccessMessage("Rice")}}
	router := setupRouter(t, svc)

	w := postForm(router, riceValues())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rice is the best crop to be cultivated right there")
	assert.Equal(t, riceForm(), svc.last.Values)
	assert.Equal(t, "198.51.100.7", svc.last.ClientAddr)
	assert.NotEmpty(t, svc.last.RequestID)
	assert.Equal(t, w.Header().Get("X-Request-ID"), svc.last.RequestID)
}

func TestHandler_PredictMissingFieldIsAbsentNotBlank(t *testing.T) {
	svc := &captureService{outcome: &Outcome{Status: StatusError, Message: ErrorMessage}}
	router := setupRouter(t, svc)

	form := riceValues()
	form.Del("Rainfall")
	w := postForm(router, form)

	assert.Equal(t, http.StatusOK, w.Code)
	_, present := svc.last.Values["Rainfall"]
	assert.False(t, present)
	assert.Contains(t, w.Body.String(), ErrorMessage)
}

func TestHandler_PredictEndToEnd(t *testing.T) {
	f := newFixture(t, loadTestdataSet(t))
	router := setupRouter(t, f.svc)

	testCases := []struct {
		name     string
		form     url.Values
		expected string
	}{
		{"rice", riceValues(), "Rice is the best crop to be cultivated right there"},
		{"non-numeric", func() url.Values { v := riceValues(); v.Set("Ph", "acidic"); return v }(), ErrorMessage},
		{"missing", func() url.Values { v := riceValues(); v.Del("Nitrogen"); return v }(), ErrorMessage},
		{"empty body", url.Values{}, ErrorMessage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := postForm(router, tc.form)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tc.expected)
		})
	}
}
