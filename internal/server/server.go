// Package server builds the HTTP engine that fronts the post module.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/posts/config"
	"github.com/ncobase/posts/core/post"
	"github.com/ncobase/posts/ecode"
	"github.com/ncobase/posts/logging/logger"
	"github.com/ncobase/posts/net/resp"
)

// Server owns the gin engine and the listener built around it.
type Server struct {
	config *config.Config
	logger *logger.Logger
	post   *post.Module
	engine *gin.Engine
}

// New creates a server with its routes mounted.
func New(cfg *config.Config, l *logger.Logger, m *post.Module) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if l == nil {
		return nil, errors.New("logger is nil")
	}
	if m == nil {
		return nil, errors.New("post module is nil")
	}

	s := &Server{config: cfg, logger: l, post: m}
	s.engine = s.setupRouter()
	return s, nil
}

// Engine returns the gin engine.
func (s *Server) Engine() *gin.Engine { return s.engine }

// HTTPServer returns an http.Server serving the engine with the configured
// address and timeouts.
func (s *Server) HTTPServer() *http.Server {
	srv := &http.Server{Handler: s.engine}
	if c := s.config.Server; c != nil {
		srv.Addr = c.Addr()
		srv.ReadTimeout = c.ReadTimeout
		srv.WriteTimeout = c.WriteTimeout
	}
	return srv
}

func (s *Server) setupRouter() *gin.Engine {
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var maxBytes int64
	if s.config.Server != nil {
		maxBytes = s.config.Server.MaxBodyBytes
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(s.traceMiddleware())
	r.Use(s.loggerMiddleware())
	r.Use(s.faultMiddleware())
	r.Use(s.recoveryMiddleware())

	r.NoRoute(func(c *gin.Context) {
		resp.Write(c.Writer, resp.NotFound(ecode.NotExist("route "+c.Request.URL.Path)))
	})
	r.NoMethod(func(c *gin.Context) {
		resp.Write(c.Writer, resp.Classify(errMethodNotAllowed))
	})

	r.GET("/health", s.health)
	s.post.RegisterRoutes(r.Group("/api"), maxBytes)

	return r
}

func (s *Server) health(c *gin.Context) {
	if err := s.post.Service().Ping(c.Request.Context()); err != nil {
		s.logger.Warn(c.Request.Context(), "health check failed", logger.ErrorKey, err)
		resp.Write(c.Writer, resp.ServiceUnavailable("store unavailable", err.Error()))
		return
	}
	resp.Write(c.Writer, resp.Success(map[string]string{"status": "healthy"}))
}
