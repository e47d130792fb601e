// Package blog answers the site's post queries.
//
// Every query fetches the feed again; nothing is cached between calls,
// so concurrent callers each issue their own request.
package blog

import (
	"context"

	"github.com/rjgrunau/askesis/internal/substack"
)

// DefaultRecentCount is the number of recent posts shown when no count is given.
const DefaultRecentCount = 3

// Fetcher produces posts sorted newest first, or an empty slice on failure.
type Fetcher interface {
	FetchPosts(ctx context.Context, feedURL string) []substack.Post
}

// Blog runs post queries against a feed.
type Blog struct {
	fetcher Fetcher
	feedURL string
}

// New creates a Blog reading the fetcher's default feed.
func New(fetcher Fetcher) *Blog {
	return &Blog{fetcher: fetcher}
}

// NewWithFeed creates a Blog reading feedURL instead of the fetcher's default.
func NewWithFeed(fetcher Fetcher, feedURL string) *Blog {
	return &Blog{fetcher: fetcher, feedURL: feedURL}
}

// All returns every post, newest first.
func (b *Blog) All(ctx context.Context) []substack.Post {
	posts := b.fetcher.FetchPosts(ctx, b.feedURL)
	if posts == nil {
		return []substack.Post{}
	}
	return posts
}

// Recent returns the count newest posts, or all of them when fewer exist.
// A count of zero or less returns no posts.
func (b *Blog) Recent(ctx context.Context, count int) []substack.Post {
	posts := b.All(ctx)
	count = max(count, 0)
	if len(posts) > count {
		posts = posts[:count]
	}
	return posts
}

// BySlug returns the first post whose slug equals slug.
func (b *Blog) BySlug(ctx context.Context, slug string) (substack.Post, bool) {
	for _, post := range b.All(ctx) {
		if post.Slug == slug {
			return post, true
		}
	}
	return substack.Post{}, false
}
