package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-review-backend/internal/config"
	"book-review-backend/pkg/container"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *container.Container) {
	t.Helper()

	cfg := &config.Config{
		App:   config.AppConfig{Environment: "test", Port: "5000", Version: "9.9.9"},
		Store: config.StoreConfig{Driver: config.StoreDriverMemory, SeedOnStart: true},
		CORS:  config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	c, err := container.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, c.SeedIfEmpty(context.Background()))

	return Setup(c), c
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Book Review API is running"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "9.9.9", body.Version)
	assert.Equal(t, "ok", body.Services["database"])
	assert.NotEmpty(t, body.Timestamp)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	do(r, http.MethodGet, "/api/books", "")

	w := do(r, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestReviewFlowThroughRouter(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/books", `{"title":"Dune","author":"Frank Herbert"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var book struct {
		ID            string  `json:"id"`
		AverageRating float64 `json:"averageRating"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))

	for _, rating := range []string{"4", "2"} {
		w = do(r, http.MethodPost, "/api/reviews",
			`{"bookId":"`+book.ID+`","userName":"ana","rating":`+rating+`,"comment":"ok"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = do(r, http.MethodGet, "/api/books/"+book.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	assert.Equal(t, 3.0, book.AverageRating)

	w = do(r, http.MethodGet, "/api/books/"+book.ID+"/reviews", "")
	require.Equal(t, http.StatusOK, w.Code)
	var reviews []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	assert.Len(t, reviews, 2)

	w = do(r, http.MethodDelete, "/api/books/"+book.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/books/"+book.ID+"/reviews", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/books", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
