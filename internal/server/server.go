// Package server exposes playlist extraction over a small REST API.
package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaki95/soundcloud-playlist/config"
	"github.com/jaki95/soundcloud-playlist/internal/soundcloud"
)

// Server handles HTTP requests for playlist extraction.
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	client *soundcloud.Client
}

// New creates a new HTTP server instance. The soundcloud client is injected
// so callers (and tests) control where it points.
func New(cfg *config.Config, client *soundcloud.Client) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	server := &Server{
		cfg:    cfg,
		router: router,
		client: client,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	// Add CORS middleware
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	s.router.GET("/health", s.healthCheck)

	// API endpoints
	api := s.router.Group("/api/v1")
	{
		api.GET("/playlist", s.getPlaylist)
	}
}

// Start starts the HTTP server
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
		"service":   "soundcloud-playlist",
	})
}
