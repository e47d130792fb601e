package substack

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/net/html"
)

const (
	// ExcerptLength is the excerpt budget in characters, ellipsis excluded.
	ExcerptLength = 160
	// WordsPerMinute is the reading speed behind ReadingTime.
	WordsPerMinute = 225

	ellipsis = "..."
)

// entities are the escapes decoded on every feed field. gofeed leaves them
// as-is inside CDATA sections.
var entities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
)

// field trims a parsed feed value and decodes its common entities.
func field(s string) string {
	return entities.Replace(strings.TrimSpace(s))
}

// cleanContent keeps markup but collapses whitespace runs to single spaces.
func cleanContent(s string) string {
	return collapseSpace(s)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripTags replaces every tag with a space and keeps text, entities decoded.
func stripTags(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

// excerpt returns plain text cut at the last word boundary within
// ExcerptLength characters, with an ellipsis when cut.
func excerpt(s string) string {
	text := PlainText(s)
	runes := []rune(text)
	if len(runes) <= ExcerptLength {
		return text
	}

	truncated := string(runes[:ExcerptLength])
	if i := strings.LastIndex(truncated, " "); i > 0 {
		return truncated[:i] + ellipsis
	}
	return truncated + ellipsis
}

// readingTime formats the estimate as "N MIN READ", never below one minute.
func readingTime(content string) string {
	words := len(strings.Fields(stripTags(content)))
	minutes := max(1, int(math.Ceil(float64(words)/WordsPerMinute)))
	return fmt.Sprintf("%d MIN READ", minutes)
}

// PlainText strips markup from s and collapses its whitespace.
func PlainText(s string) string {
	return collapseSpace(stripTags(s))
}
