package blog

import (
	"context"
	"testing"
	"time"

	"github.com/rjgrunau/askesis/internal/substack"
)

type fakeFetcher struct {
	posts    []substack.Post
	calls    int
	feedURLs []string
}

func (f *fakeFetcher) FetchPosts(_ context.Context, feedURL string) []substack.Post {
	f.calls++
	f.feedURLs = append(f.feedURLs, feedURL)
	return f.posts
}

func samplePosts() []substack.Post {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	return []substack.Post{
		{Title: "Newest", Slug: "newest", PublishedAt: now},
		{Title: "Middle", Slug: "middle", PublishedAt: now.Add(-24 * time.Hour)},
		{Title: "Duplicate A", Slug: "dup", PublishedAt: now.Add(-48 * time.Hour)},
		{Title: "Duplicate B", Slug: "dup", PublishedAt: now.Add(-72 * time.Hour)},
	}
}

func TestAll_ReturnsEveryPostInFetchedOrder(t *testing.T) {
	b := New(&fakeFetcher{posts: samplePosts()})

	posts := b.All(context.Background())

	if len(posts) != 4 {
		t.Fatalf("expected 4 posts, got %d", len(posts))
	}
	if posts[0].Slug != "newest" {
		t.Errorf("expected newest first, got %s", posts[0].Slug)
	}
}

func TestAll_HandlesEmptyFeedGracefully(t *testing.T) {
	b := New(&fakeFetcher{})

	posts := b.All(context.Background())

	if posts == nil {
		t.Fatal("should return empty slice, not nil")
	}
	if len(posts) != 0 {
		t.Errorf("expected no posts, got %d", len(posts))
	}
}

func TestRecent_ReturnsRequestedPrefix(t *testing.T) {
	b := New(&fakeFetcher{posts: samplePosts()})

	posts := b.Recent(context.Background(), 2)

	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Slug != "newest" || posts[1].Slug != "middle" {
		t.Errorf("expected the two newest posts, got %s, %s", posts[0].Slug, posts[1].Slug)
	}
}

func TestRecent_ZeroCountReturnsNoPosts(t *testing.T) {
	b := New(&fakeFetcher{posts: samplePosts()})

	for _, count := range []int{0, -1} {
		posts := b.Recent(context.Background(), count)
		if posts == nil || len(posts) != 0 {
			t.Errorf("Recent(%d): expected empty, non-nil slice, got %#v", count, posts)
		}
	}
}

func TestRecent_DefaultCount(t *testing.T) {
	b := New(&fakeFetcher{posts: samplePosts()})

	if got := len(b.Recent(context.Background(), DefaultRecentCount)); got != 3 {
		t.Errorf("expected 3 posts, got %d", got)
	}
}

func TestRecent_ReturnsAllWhenFewerExist(t *testing.T) {
	b := New(&fakeFetcher{posts: samplePosts()[:1]})

	if got := len(b.Recent(context.Background(), 5)); got != 1 {
		t.Errorf("expected 1 post, got %d", got)
	}
}

func TestBySlug_FindsFirstMatch(t *testing.T) {
	b := New(&fakeFetcher{posts: samplePosts()})

	post, ok := b.BySlug(context.Background(), "dup")

	if !ok {
		t.Fatal("expected a match")
	}
	if post.Title != "Duplicate A" {
		t.Errorf("first match should win, got %q", post.Title)
	}
}

func TestBySlug_MissIsAbsenceNotError(t *testing.T) {
	b := New(&fakeFetcher{posts: samplePosts()})

	post, ok := b.BySlug(context.Background(), "no-such-post")

	if ok {
		t.Errorf("expected no match, got %#v", post)
	}
}

func TestQueries_FetchOnEveryCall(t *testing.T) {
	f := &fakeFetcher{posts: samplePosts()}
	b := NewWithFeed(f, "https://example.substack.com/feed")
	ctx := context.Background()

	b.All(ctx)
	b.Recent(ctx, 2)
	b.BySlug(ctx, "middle")

	if f.calls != 3 {
		t.Errorf("expected 3 fetches, got %d", f.calls)
	}
	for _, u := range f.feedURLs {
		if u != "https://example.substack.com/feed" {
			t.Errorf("expected configured feed URL, got %q", u)
		}
	}
}
