// Package ui exposes the post-hoc analysis engine over HTTP. The engine stays
// a pure in-process computation; this is a thin JSON surface around it.
package ui

import (
	"net/http"

	"posthoc/adapters/stats/correction"
	"posthoc/adapters/stats/engine"
	"posthoc/internal"

	"github.com/gin-gonic/gin"
)

// Server represents the web server for the post-hoc analysis API
type Server struct {
	router *gin.Engine
	engine *engine.Engine
	logger *internal.Logger
}

// NewServer creates the server with its routes registered
func NewServer(eng *engine.Engine, logger *internal.Logger, ginMode string) *Server {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}
	if eng == nil {
		eng = engine.NewDefault()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router: gin.New(),
		engine: eng,
		logger: logger,
	}
	s.router.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	v1.POST("/posthoc", s.handleAnalyze)
	v1.GET("/methods", s.handleMethods)
}

// Router returns the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server on the given port
func (s *Server) Run(port string) error {
	s.logger.Info("post-hoc API listening on :%s", port)
	return s.router.Run(":" + port)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleMethods lists the available test strategies and correction methods so
// clients can populate selectors without hardcoding names.
func (s *Server) handleMethods(c *gin.Context) {
	methods := correction.Methods()
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = string(m)
	}
	c.JSON(http.StatusOK, gin.H{
		"tests":       s.engine.Registry().List(),
		"corrections": names,
	})
}
