// Package api serves the blog's posts and site data over HTTP.
package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rjgrunau/askesis/internal/blog"
	"github.com/rjgrunau/askesis/internal/site"
)

// NewServer creates the HTTP handler with all routes configured.
func NewServer(b *blog.Blog, data site.Data, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(logger))
	r.Use(gin.Recovery())

	h := &Handler{blog: b, site: data, logger: logger}

	r.GET("/health", h.Health)
	r.GET("/feed.xml", h.Feed)

	api := r.Group("/api")
	{
		api.GET("/posts", h.ListPosts)
		api.GET("/posts/:slug", h.GetPost)
		api.GET("/recent", h.RecentPosts)
		api.GET("/site", h.Site)
	}

	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP())
	}
}
