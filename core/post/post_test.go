package post

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/posts/core/post/handler"
	"github.com/ncobase/posts/core/post/service"
	"github.com/ncobase/posts/core/post/structs"
	"github.com/ncobase/posts/data"
	dc "github.com/ncobase/posts/data/config"
	_ "github.com/ncobase/posts/data/sqlite"
	"github.com/ncobase/posts/logging/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	v, ok := r.Lookup(structs.PostTag)
	require.True(t, ok)

	assert.True(t, v.Validate(&structs.PostDto{Title: "x", Content: "y"}).Valid())
	assert.Contains(t, v.Validate(&structs.PostDto{Title: "", Content: "x"}), "title")
}

func TestNewStoreMemory(t *testing.T) {
	cfg := &dc.Config{Store: dc.StoreMemory}
	d, cleanupData, err := data.New(cfg)
	require.NoError(t, err)
	defer cleanupData()

	store, cleanup, err := NewStore(d, cfg, logger.Discard())
	require.NoError(t, err)
	defer cleanup()
	assert.NoError(t, store.Ping(context.Background()))
}

func TestNewStoreSQLiteMigrates(t *testing.T) {
	cfg := &dc.Config{
		Store:    dc.StoreDatabase,
		Database: &dc.Database{Driver: "sqlite", Source: ":memory:", Migrate: true},
		Redis:    &dc.Redis{},
	}
	d, cleanupData, err := data.New(cfg)
	require.NoError(t, err)
	defer cleanupData()

	store, cleanup, err := NewStore(d, cfg, logger.Discard())
	require.NoError(t, err)
	defer cleanup()

	svc := service.NewPostService(store, logger.Discard())
	env := svc.Create(context.Background(), &structs.PostDto{Title: "x", Content: "y"})
	require.True(t, env.IsSuccess, "%v", env.ErrorMessages)

	id := env.Result.(*structs.PostDto).ID
	got := svc.Get(context.Background(), id)
	assert.Equal(t, http.StatusOK, got.Status)

	assert.NoError(t, Migrate(context.Background(), d), "migration is repeatable")
}

func TestNewStoreErrors(t *testing.T) {
	_, _, err := NewStore(nil, nil, logger.Discard())
	assert.Error(t, err)

	_, _, err = NewStore(&data.Data{Store: "tape"}, &dc.Config{}, logger.Discard())
	assert.Error(t, err)

	_, _, err = NewStore(&data.Data{Store: dc.StoreDatabase, Driver: "oracle"}, &dc.Config{}, logger.Discard())
	assert.Error(t, err)
}

func TestMigrateNeedsSQL(t *testing.T) {
	assert.Error(t, Migrate(context.Background(), &data.Data{Store: dc.StoreMemory}))
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &dc.Config{Store: dc.StoreMemory}
	d, cleanupData, err := data.New(cfg)
	require.NoError(t, err)
	defer cleanupData()

	store, cleanup, err := NewStore(d, cfg, logger.Discard())
	require.NoError(t, err)
	defer cleanup()

	svc := service.NewPostService(store, logger.Discard())
	m := New(NewRegistry(), svc, handler.NewPostHandler(svc), logger.Discard())
	assert.Equal(t, "post", m.Name())
	assert.Same(t, svc, m.Service())

	r := gin.New()
	m.RegisterRoutes(r.Group("/api"), 16)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the group carries the validation stage and its body limit
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"title":"a long title","content":"x"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
