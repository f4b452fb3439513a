// Package post assembles the post module: store selection, validator
// registration, service and routes.
package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/ncobase/posts/core/post/data/repository"
	"github.com/ncobase/posts/core/post/handler"
	"github.com/ncobase/posts/core/post/middleware"
	"github.com/ncobase/posts/core/post/service"
	"github.com/ncobase/posts/core/post/structs"
	"github.com/ncobase/posts/data"
	"github.com/ncobase/posts/data/cache"
	dc "github.com/ncobase/posts/data/config"
	"github.com/ncobase/posts/logging/logger"
	"github.com/ncobase/posts/validation/validator"
)

// ProviderSet is the wire provider set for the post module.
var ProviderSet = wire.NewSet(NewStore, NewRegistry, service.NewPostService, handler.NewPostHandler, New)

// Module holds the wired post components.
type Module struct {
	registry *validator.Registry
	service  *service.PostService
	handler  *handler.PostHandler
	logger   *logger.Logger
}

// New creates the post module.
func New(registry *validator.Registry, s *service.PostService, h *handler.PostHandler, l *logger.Logger) *Module {
	return &Module{registry: registry, service: s, handler: h, logger: l}
}

// Name returns the module name.
func (m *Module) Name() string { return "post" }

// Registry returns the validator registry the module registered into.
func (m *Module) Registry() *validator.Registry { return m.registry }

// Service returns the post service.
func (m *Module) Service() *service.PostService { return m.service }

// RegisterRoutes mounts the post routes under r behind the validation stage.
// maxBodyBytes <= 0 uses the replay default.
func (m *Module) RegisterRoutes(r *gin.RouterGroup, maxBodyBytes int64) {
	posts := r.Group("/posts")
	posts.Use(middleware.NewValidationStage(m.registry, m.logger, maxBodyBytes).Handler())
	{
		posts.GET("", m.handler.List)
		posts.POST("", m.handler.Create)
		posts.GET("/:id", m.handler.Get)
		posts.PUT("/:id", m.handler.Update)
		posts.DELETE("/:id", m.handler.Delete)
	}
}

// NewRegistry creates the validator registry with the post validator bound to
// its resource tag.
func NewRegistry() *validator.Registry {
	r := validator.NewRegistry()
	r.Register(structs.PostTag, validator.NewStructValidator())
	return r
}

// NewStore builds the store the data layer was opened for. SQL stores are
// migrated first when configured; a connected redis puts a read cache in
// front of whichever store is chosen.
func NewStore(d *data.Data, cfg *dc.Config, l *logger.Logger) (repository.Store, func(), error) {
	if d == nil || cfg == nil {
		return nil, nil, errors.New("post: data layer is not configured")
	}

	var store repository.Store
	switch d.Store {
	case dc.StoreMemory:
		store = repository.NewMemoryStore()
	case dc.StoreDatabase:
		dialect, err := repository.ParseDialect(d.Driver)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Database != nil && cfg.Database.Migrate {
			if err := repository.Migrate(context.Background(), d.DB, dialect); err != nil {
				return nil, nil, err
			}
			l.Info(context.Background(), "posts schema migrated", "driver", d.Driver)
		}
		store = repository.NewSQLStore(d.DB, dialect)
	case dc.StoreMongoDB:
		store = repository.NewMongoStore(d.Mongo)
	default:
		return nil, nil, fmt.Errorf("post: unknown store %q", d.Store)
	}

	if d.Redis != nil {
		var ttl time.Duration
		if cfg.Redis != nil {
			ttl = cfg.Redis.TTL
		}
		store = repository.NewCachedStore(store, cache.NewCache[repository.CachedPost](d.Redis, "posts"), ttl, l)
		l.Info(context.Background(), "post read cache enabled", "ttl", ttl.String())
	}

	l.Info(context.Background(), "post store ready", "store", d.Store, "driver", d.Driver)
	return store, func() {
		if err := store.Close(); err != nil {
			l.Warn(context.Background(), "failed to close post store", logger.ErrorKey, err)
		}
	}, nil
}

// Migrate creates the posts table on the configured SQL database.
func Migrate(ctx context.Context, d *data.Data) error {
	if d == nil || d.DB == nil {
		return errors.New("post: migrate needs a sql database store")
	}
	dialect, err := repository.ParseDialect(d.Driver)
	if err != nil {
		return err
	}
	return repository.Migrate(ctx, d.DB, dialect)
}
