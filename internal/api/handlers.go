package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"

	"github.com/rjgrunau/askesis/internal/blog"
	"github.com/rjgrunau/askesis/internal/site"
	"github.com/rjgrunau/askesis/internal/substack"
)

// Handler serves the API routes.
type Handler struct {
	blog   *blog.Blog
	site   site.Data
	logger *slog.Logger
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ListPosts returns every post, newest first.
func (h *Handler) ListPosts(c *gin.Context) {
	posts := h.blog.All(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": len(posts)})
}

// RecentPosts returns the newest posts. count defaults to blog.DefaultRecentCount
// when absent; count=0 returns none.
func (h *Handler) RecentPosts(c *gin.Context) {
	count := blog.DefaultRecentCount
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a non-negative integer"})
			return
		}
		count = n
	}

	posts := h.blog.Recent(c.Request.Context(), count)
	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": len(posts)})
}

// GetPost returns the post matching the slug parameter, or 404.
func (h *Handler) GetPost(c *gin.Context) {
	slug := c.Param("slug")
	post, ok := h.blog.BySlug(c.Request.Context(), slug)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found", "slug": slug})
		return
	}
	c.JSON(http.StatusOK, post)
}

// Site returns navigation, social links and site copy.
func (h *Handler) Site(c *gin.Context) {
	c.JSON(http.StatusOK, h.site)
}

// Feed republishes the posts as RSS 2.0.
func (h *Handler) Feed(c *gin.Context) {
	posts := h.blog.All(c.Request.Context())

	rss, err := buildFeed(h.site.Config, posts, baseURL(c)).ToRss()
	if err != nil {
		h.logger.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("X-Feed-Items", strconv.Itoa(len(posts)))
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func buildFeed(cfg site.Config, posts []substack.Post, base string) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       cfg.Title,
		Link:        &feeds.Link{Href: base + "/blog"},
		Description: cfg.Description,
	}
	if len(posts) > 0 {
		feed.Created = posts[0].PublishedAt
	}

	for _, post := range posts {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       post.Title,
			Link:        &feeds.Link{Href: base + "/blog/" + post.Slug},
			Id:          post.SubstackURL,
			Description: post.Excerpt,
			Content:     post.Content,
			Created:     post.PublishedAt,
		})
	}
	return feed
}

func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
