// Package middleware holds the request stages that run in front of the post
// handlers.
package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/posts/core/post/structs"
	"github.com/ncobase/posts/ecode"
	"github.com/ncobase/posts/logging/logger"
	"github.com/ncobase/posts/logging/observes"
	"github.com/ncobase/posts/net/replay"
	"github.com/ncobase/posts/net/resp"
	"github.com/ncobase/posts/validation/validator"
	"go.opentelemetry.io/otel/attribute"
)

// Namespace is the path prefix the validation stage guards.
const Namespace = "/api/posts"

const dtoKey = "post.dto"

var errRejected = errors.New("payload rejected")

// ValidationStage rejects malformed or invalid post payloads before they reach
// a handler. Accepted requests continue with their body rewound and the parsed
// DTO stashed on the gin context.
type ValidationStage struct {
	registry *validator.Registry
	logger   *logger.Logger
	maxBytes int64
}

// NewValidationStage creates a new validation stage. maxBytes <= 0 uses
// replay.DefaultMaxBytes.
func NewValidationStage(registry *validator.Registry, logger *logger.Logger, maxBytes int64) *ValidationStage {
	return &ValidationStage{registry: registry, logger: logger, maxBytes: maxBytes}
}

// Handler returns the gin middleware.
func (s *ValidationStage) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !applies(c.Request) {
			c.Next()
			return
		}

		ctx, span := observes.StartSpan(c.Request.Context(), observes.LayerHandler, "validation",
			attribute.String("http.method", c.Request.Method))
		c.Request = c.Request.WithContext(ctx)

		dto, reject := s.check(c)
		if reject != nil {
			span.SetAttributes(attribute.Bool("validation.rejected", true))
			span.End(nil)
			c.Abort()
			return
		}

		if err := replay.Rewind(c.Request); err != nil {
			span.End(err)
			if errors.Is(err, replay.ErrNotReplayable) {
				panic(fmt.Errorf("validation stage: %w", err))
			}
			resp.Write(c.Writer, resp.Classify(err))
			c.Abort()
			return
		}

		if dto != nil {
			c.Set(dtoKey, dto)
		}
		span.End(nil)
		c.Next()
	}
}

// check runs the stage. On rejection the response is already written and the
// returned error is non-nil.
func (s *ValidationStage) check(c *gin.Context) (*structs.PostDto, error) {
	ctx := c.Request.Context()

	raw, err := replay.Capture(c.Request, s.maxBytes)
	if err != nil {
		return nil, s.reject(c, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, s.reject(c, ecode.ErrEmptyBody)
	}

	dto, err := validator.Parse[structs.PostDto](raw)
	if err != nil {
		return nil, s.reject(c, err)
	}
	if dto == nil {
		return nil, s.reject(c, ecode.ErrUninterpreted)
	}

	v, ok := s.registry.Lookup(structs.PostTag)
	if !ok {
		s.logger.Warn(ctx, "no validator registered, request passes unvalidated", "tag", structs.PostTag)
		return dto, nil
	}

	if violations := v.Validate(dto); !violations.Valid() {
		s.logger.Warn(ctx, "post payload rejected", "violations", len(violations))
		resp.WriteJSON(c.Writer, http.StatusBadRequest, violations)
		return nil, errRejected
	}
	return dto, nil
}

func (s *ValidationStage) reject(c *gin.Context, err error) error {
	env := resp.Classify(err)
	s.logger.Warn(c.Request.Context(), "post payload rejected", "status", env.Status, "reason", env.Message)
	resp.Write(c.Writer, env)
	return err
}

// applies reports whether r is a write inside the post namespace.
func applies(r *http.Request) bool {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		return false
	}
	path := strings.ToLower(r.URL.Path)
	return path == Namespace || strings.HasPrefix(path, Namespace+"/")
}

// GetDto returns the DTO stashed by the validation stage.
func GetDto(c *gin.Context) (*structs.PostDto, bool) {
	v, ok := c.Get(dtoKey)
	if !ok {
		return nil, false
	}
	dto, ok := v.(*structs.PostDto)
	return dto, ok && dto != nil
}
