package substack

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/rjgrunau/askesis/internal/slug"
)

// parseFeed turns a raw RSS document into posts sorted newest first.
// A document the parser rejects yields no posts, even when it was cut off
// after complete items.
func parseFeed(data []byte) ([]Post, error) {
	// gofeed parsers are not shared so concurrent fetches stay independent.
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	posts := make([]Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		posts = append(posts, newPost(item))
	}

	slices.SortStableFunc(posts, func(a, b Post) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return posts, nil
}

func newPost(item *gofeed.Item) Post {
	title := field(item.Title)
	description := field(item.Description)
	pubDate := field(item.Published)

	content := cleanContent(cmp.Or(field(item.Content), description))
	publishedAt := publishedTime(item, pubDate)

	date := InvalidDate
	if !publishedAt.IsZero() {
		date = publishedAt.UTC().Format(time.DateOnly)
	}

	return Post{
		Title:       title,
		Slug:        slug.Slugify(title),
		Date:        date,
		PubDate:     pubDate,
		Content:     content,
		Excerpt:     excerpt(cmp.Or(description, content)),
		ReadingTime: readingTime(content),
		SubstackURL: cmp.Or(field(item.Link), field(item.GUID)),
		PublishedAt: publishedAt,
	}
}

func publishedTime(item *gofeed.Item, pubDate string) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	return parsePubDate(pubDate)
}

func parsePubDate(s string) time.Time {
	formats := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// uniquifySlugs walks posts newest first; a post whose slug is already
// taken gets its publish date prefixed.
func uniquifySlugs(posts []Post) {
	taken := make([]string, 0, len(posts))
	for i := range posts {
		date := posts[i].Date
		if date == InvalidDate {
			date = posts[i].PubDate
		}
		posts[i].Slug = slug.UniqueSlug(posts[i].Title, date, taken)
		taken = append(taken, posts[i].Slug)
	}
}
