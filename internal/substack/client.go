package substack

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// DefaultFeedURL is the feed fetched when no other URL is configured.
const DefaultFeedURL = "https://rjgrunau.substack.com/feed"

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithFeedURL overrides the feed fetched when callers pass an empty URL.
func WithFeedURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.feedURL = url
		}
	}
}

// WithLogger sets the logger that receives fetch diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUniqueSlugs makes colliding slugs unique by prefixing the publish date
// to every post but the newest one sharing a slug.
func WithUniqueSlugs(enabled bool) ClientOption {
	return func(c *Client) {
		c.uniqueSlugs = enabled
	}
}

// Client fetches posts from a Substack RSS feed.
// It holds no mutable state after construction and is safe for concurrent use.
type Client struct {
	httpClient  HTTPClient
	feedURL     string
	logger      *slog.Logger
	uniqueSlugs bool
}

// NewClient creates a new Substack RSS client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		feedURL:    DefaultFeedURL,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FeedURL returns the URL fetched when callers pass an empty one.
func (c *Client) FeedURL() string {
	return c.feedURL
}

// FetchPosts fetches and parses the feed at feedURL (the client's configured
// feed when empty). Failures are logged and yield an empty slice.
func (c *Client) FetchPosts(ctx context.Context, feedURL string) []Post {
	posts, err := c.Fetch(ctx, feedURL)
	if err != nil {
		c.logger.Error("failed to fetch substack feed", "url", c.resolve(feedURL), "error", err)
		return []Post{}
	}
	return posts
}

// Fetch is FetchPosts with the error surfaced to the caller.
func (c *Client) Fetch(ctx context.Context, feedURL string) ([]Post, error) {
	feedURL = c.resolve(feedURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("substack RSS feed returned HTTP %d for %s", resp.StatusCode, feedURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read RSS feed: %w", err)
	}

	posts, err := parseFeed(body)
	if err != nil {
		return nil, err
	}
	if c.uniqueSlugs {
		uniquifySlugs(posts)
	}

	c.logger.Debug("fetched substack feed", "url", feedURL, "posts", len(posts))
	return posts, nil
}

func (c *Client) resolve(feedURL string) string {
	if feedURL == "" {
		return c.feedURL
	}
	return feedURL
}

// FeedURL builds the RSS feed URL of a Substack publication. Profile URLs
// (https://substack.com/@username) are mapped to the username's subdomain,
// which hosts the feed; /feed is appended unless already present.
func FeedURL(publicationURL string) string {
	u := strings.TrimRight(resolveSubstackURL(publicationURL), "/")
	if strings.HasSuffix(u, "/feed") {
		return u
	}
	return u + "/feed"
}

func resolveSubstackURL(publicationURL string) string {
	const profilePrefix = "https://substack.com/@"
	if strings.HasPrefix(publicationURL, profilePrefix) {
		username := strings.Trim(strings.TrimPrefix(publicationURL, profilePrefix), "/")
		return "https://" + username + ".substack.com"
	}
	return publicationURL
}
