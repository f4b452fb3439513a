// Package handler binds the post service to HTTP.
package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/posts/core/post/middleware"
	"github.com/ncobase/posts/core/post/service"
	"github.com/ncobase/posts/core/post/structs"
	"github.com/ncobase/posts/ecode"
	"github.com/ncobase/posts/net/resp"
)

// PostHandler is the HTTP face of the post service.
type PostHandler struct {
	s *service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(s *service.PostService) *PostHandler {
	return &PostHandler{s: s}
}

// List handles GET /posts.
func (h *PostHandler) List(c *gin.Context) {
	resp.Write(c.Writer, h.s.List(c.Request.Context()))
}

// Get handles GET /posts/:id.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp.Write(c.Writer, h.s.Get(c.Request.Context(), id))
}

// Create handles POST /posts.
func (h *PostHandler) Create(c *gin.Context) {
	dto, ok := bindDto(c)
	if !ok {
		return
	}

	env := h.s.Create(c.Request.Context(), dto)
	if created, isDto := env.Result.(*structs.PostDto); env.IsSuccess && isDto {
		c.Header("Location", fmt.Sprintf("%s/%d", middleware.Namespace, created.ID))
	}
	resp.Write(c.Writer, env)
}

// Update handles PUT /posts/:id.
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	dto, ok := bindDto(c)
	if !ok {
		return
	}
	resp.Write(c.Writer, h.s.Update(c.Request.Context(), id, dto))
}

// Delete handles DELETE /posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp.Write(c.Writer, h.s.Delete(c.Request.Context(), id))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		resp.Write(c.Writer, resp.Classify(ecode.ErrInvalidID))
		return 0, false
	}
	return id, true
}

// bindDto prefers the DTO parsed by the validation stage and decodes the
// body itself otherwise.
func bindDto(c *gin.Context) (*structs.PostDto, bool) {
	if dto, ok := middleware.GetDto(c); ok {
		return dto, true
	}

	var dto structs.PostDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		resp.Write(c.Writer, resp.Classify(ecode.ErrInvalidFormat.Wrap(err)))
		return nil, false
	}
	return &dto, true
}
