// Package service contains the post operations. Every operation returns a
// finished envelope; store outcomes and coded errors are classified here.
package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ncobase/posts/core/post/data/repository"
	"github.com/ncobase/posts/core/post/structs"
	"github.com/ncobase/posts/ecode"
	"github.com/ncobase/posts/logging/logger"
	"github.com/ncobase/posts/logging/observes"
	"github.com/ncobase/posts/net/resp"
	"go.opentelemetry.io/otel/attribute"
)

// PostService orchestrates post CRUD against a store.
type PostService struct {
	store  repository.Store
	logger *logger.Logger
	now    func() time.Time
}

// NewPostService creates a new post service.
func NewPostService(store repository.Store, logger *logger.Logger) *PostService {
	return &PostService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock used to stamp new posts.
func (s *PostService) WithClock(now func() time.Time) *PostService {
	s.now = now
	return s
}

// List returns every post.
func (s *PostService) List(ctx context.Context) *resp.Envelope {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "post.list")

	out := s.store.ListAll(ctx)
	if err := out.Error(); err != nil {
		return s.finish(ctx, span, "list", 0, resp.Classify(err), err)
	}

	span.SetAttributes(attribute.Int("post.count", len(out.Value)))
	return s.finish(ctx, span, "list", 0, resp.Success(structs.ToDtos(out.Value)), nil)
}

// Get returns a single post.
func (s *PostService) Get(ctx context.Context, id int64) *resp.Envelope {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "post.get", attribute.Int64("post.id", id))

	if id <= 0 {
		return s.finish(ctx, span, "get", id, resp.Classify(ecode.ErrInvalidID), ecode.ErrInvalidID)
	}

	out := s.store.FindByID(ctx, id)
	if err := out.Error(); err != nil {
		return s.finish(ctx, span, "get", id, resp.Classify(err), err)
	}
	return s.finish(ctx, span, "get", id, resp.Success(structs.ToDto(out.Value)), nil)
}

// Create stores a new post stamped with the current UTC time.
func (s *PostService) Create(ctx context.Context, dto *structs.PostDto) *resp.Envelope {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "post.create")

	if dto == nil {
		return s.finish(ctx, span, "create", 0, resp.Classify(ecode.ErrUninterpreted), ecode.ErrUninterpreted)
	}

	post := structs.ToEntity(dto)
	post.ID = 0
	post.Touch(s.now())

	out := s.store.Add(ctx, post)
	if err := out.Error(); err != nil {
		return s.finish(ctx, span, "create", 0, resp.Classify(err), err)
	}

	span.SetAttributes(attribute.Int64("post.id", out.Value.ID))
	return s.finish(ctx, span, "create", out.Value.ID, resp.Created(structs.ToDto(out.Value)), nil)
}

// Update overwrites title and content of an existing post. The route id is
// authoritative: a body id of zero is ignored, any other value must match.
func (s *PostService) Update(ctx context.Context, id int64, dto *structs.PostDto) *resp.Envelope {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "post.update", attribute.Int64("post.id", id))

	if id <= 0 {
		return s.finish(ctx, span, "update", id, resp.Classify(ecode.ErrInvalidID), ecode.ErrInvalidID)
	}
	if dto == nil {
		return s.finish(ctx, span, "update", id, resp.Classify(ecode.ErrUninterpreted), ecode.ErrUninterpreted)
	}
	if dto.ID != 0 && dto.ID != id {
		err := ecode.ErrIDMismatch.Withf("route id %d does not match body id %d", id, dto.ID)
		return s.finish(ctx, span, "update", id, resp.Classify(err), err)
	}

	current := repository.FindLatest(ctx, s.store, id)
	if err := current.Error(); err != nil {
		return s.finish(ctx, span, "update", id, resp.Classify(err), err)
	}

	post := current.Value
	post.ID = id
	post.Title = dto.Title
	post.Content = dto.Content

	out := s.store.Update(ctx, post)
	if err := out.Error(); err != nil {
		return s.finish(ctx, span, "update", id, resp.Classify(err), err)
	}
	return s.finish(ctx, span, "update", id, resp.Success(structs.ToDto(out.Value)), nil)
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id int64) *resp.Envelope {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "post.delete", attribute.Int64("post.id", id))

	if id <= 0 {
		return s.finish(ctx, span, "delete", id, resp.Classify(ecode.ErrInvalidID), ecode.ErrInvalidID)
	}

	current := repository.FindLatest(ctx, s.store, id)
	if err := current.Error(); err != nil {
		return s.finish(ctx, span, "delete", id, resp.Classify(err), err)
	}

	out := s.store.Remove(ctx, current.Value)
	if err := out.Error(); err != nil {
		return s.finish(ctx, span, "delete", id, resp.Classify(err), err)
	}
	return s.finish(ctx, span, "delete", id, resp.Success(nil, ecode.Deleted(fmt.Sprintf("post %d", id))), nil)
}

// Ping reports whether the store is reachable.
func (s *PostService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// finish is the single logging point of an operation.
func (s *PostService) finish(ctx context.Context, span *observes.Span, op string, id int64, env *resp.Envelope, err error) *resp.Envelope {
	span.SetAttributes(attribute.Int("http.status_code", env.Status))

	kv := []any{"op", op, "status", env.Status}
	if id != 0 {
		kv = append(kv, "id", id)
	}

	switch {
	case env.Status >= http.StatusInternalServerError:
		span.End(err)
		s.logger.Error(ctx, "post operation failed", append(kv, logger.ErrorKey, err)...)
	case err != nil:
		// 4xx outcomes leave the span status ok
		span.End(nil)
		s.logger.Warn(ctx, "post operation rejected", append(kv, "reason", env.Message)...)
	default:
		span.End(nil)
		s.logger.Info(ctx, "post operation succeeded", kv...)
	}
	return env
}
