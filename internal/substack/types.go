// Package substack fetches a Substack publication's RSS feed and turns its
// items into blog posts ready for display.
package substack

import "time"

// InvalidDate is the Date value of a post whose publish timestamp could not be parsed.
const InvalidDate = "invalid-date"

// Post is a blog post derived from a single feed item.
type Post struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Date        string `json:"date"`
	PubDate     string `json:"pubDate"`
	Content     string `json:"content"`
	Excerpt     string `json:"excerpt"`
	ReadingTime string `json:"readingTime"`
	SubstackURL string `json:"substackUrl"`

	// PublishedAt is the parsed PubDate; zero when PubDate is unparseable.
	PublishedAt time.Time `json:"-"`
}
