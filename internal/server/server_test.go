package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/posts/config"
	"github.com/ncobase/posts/core/post"
	"github.com/ncobase/posts/core/post/data/repository"
	"github.com/ncobase/posts/core/post/handler"
	"github.com/ncobase/posts/core/post/service"
	"github.com/ncobase/posts/logging/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, repository.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	l := logger.Discard()
	svc := service.NewPostService(store, l)
	m := post.New(post.NewRegistry(), svc, handler.NewPostHandler(svc), l)

	cfg := &config.Config{
		AppName:     "posts",
		Environment: "test",
		Server: &config.Server{
			Host:         "127.0.0.1",
			Port:         9090,
			ReadTimeout:  time.Second,
			WriteTimeout: 2 * time.Second,
			MaxBodyBytes: 1024,
		},
	}
	s, err := New(cfg, l, m)
	require.NoError(t, err)
	return s, store
}

func serve(s *Server, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestNewRejectsMissingParts(t *testing.T) {
	_, err := New(nil, logger.Discard(), nil)
	assert.Error(t, err)
	_, err = New(&config.Config{}, nil, nil)
	assert.Error(t, err)
	_, err = New(&config.Config{}, logger.Discard(), nil)
	assert.Error(t, err)
}

func TestHTTPServer(t *testing.T) {
	s, _ := newTestServer(t)
	srv := s.HTTPServer()
	assert.Equal(t, "127.0.0.1:9090", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)
	assert.Equal(t, 2*time.Second, srv.WriteTimeout)
}

func TestHealth(t *testing.T) {
	s, store := newTestServer(t)

	w := serve(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["is_success"])
	assert.Equal(t, map[string]any{"status": "healthy"}, body["result"])

	require.NoError(t, store.Close())
	w = serve(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, false, decode(t, w)["is_success"])
}

func TestTraceHeader(t *testing.T) {
	s, _ := newTestServer(t)

	w := serve(s, http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get(TraceHeader))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(TraceHeader, "abc-123")
	s.Engine().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(TraceHeader))
}

func TestEndToEnd(t *testing.T) {
	s, _ := newTestServer(t)

	w := serve(s, http.MethodPost, "/api/posts", `{"title":"x","content":"y"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/api/posts/1", w.Header().Get("Location"))

	w = serve(s, http.MethodPut, "/api/posts/1", `{"id":2,"title":"x","content":"y"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(s, http.MethodGet, "/api/posts/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(s, http.MethodDelete, "/api/posts/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(s, http.MethodDelete, "/api/posts/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidationShortCircuits(t *testing.T) {
	s, _ := newTestServer(t)

	w := serve(s, http.MethodPost, "/api/posts", `{"title":"","content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var violations map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &violations))
	assert.Contains(t, violations, "title")

	w = serve(s, http.MethodPost, "/api/posts", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "request body cannot be empty", decode(t, w)["message"])

	w = serve(s, http.MethodPost, "/api/posts", `{"title":"`+strings.Repeat("a", 2048)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = serve(s, http.MethodGet, "/api/posts", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["result"])
}

func TestPanicBecomesEnvelope(t *testing.T) {
	s, _ := newTestServer(t)
	s.Engine().GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := serve(s, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["is_success"])
	assert.Equal(t, "Internal server error", body["message"])
}

func TestNoRouteAndMethod(t *testing.T) {
	s, _ := newTestServer(t)

	w := serve(s, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, decode(t, w)["is_success"])

	w = serve(s, http.MethodPatch, "/api/posts", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestValidationSkipsUnroutedRequests(t *testing.T) {
	s, _ := newTestServer(t)

	// an empty body would be rejected with 400 if the stage ran
	w := serve(s, http.MethodPost, "/api/posts/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, false, decode(t, w)["is_success"])

	w = serve(s, http.MethodPut, "/api/posts/1/extra", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
