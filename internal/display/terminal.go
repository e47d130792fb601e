// Package display provides terminal output formatting for askesis.
package display

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rjgrunau/askesis/internal/pages"
	"github.com/rjgrunau/askesis/internal/site"
	"github.com/rjgrunau/askesis/internal/substack"
)

const separator = " • "

// TerminalFormatter formats posts and site data for terminal display.
type TerminalFormatter struct{}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{}
}

// FormatPost formats a single post for a listing.
func (f *TerminalFormatter) FormatPost(post substack.Post) string {
	var lines []string

	lines = append(lines, post.Title)
	lines = append(lines, "  "+post.Date+separator+post.ReadingTime+separator+post.Slug)

	if post.Excerpt != "" {
		lines = append(lines, "  "+post.Excerpt)
	}
	if post.SubstackURL != "" {
		lines = append(lines, "  "+post.SubstackURL)
	}

	return strings.Join(lines, "\n") + "\n"
}

// FormatPosts formats multiple posts for display.
func (f *TerminalFormatter) FormatPosts(posts []substack.Post) string {
	if len(posts) == 0 {
		return "No posts to display.\n"
	}

	formatted := make([]string, 0, len(posts))
	for _, post := range posts {
		formatted = append(formatted, f.FormatPost(post))
	}

	return strings.Join(formatted, "\n---\n\n")
}

// FormatPostDetail formats one post with its body as plain text.
func (f *TerminalFormatter) FormatPostDetail(post substack.Post, body string) string {
	var b strings.Builder
	b.WriteString(f.FormatPost(post))
	if body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatSite formats the site's navigation, social links and copy.
func (f *TerminalFormatter) FormatSite(data site.Data) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("%s (%s)", data.Config.Title, data.Config.Tagline))
	lines = append(lines, "  "+data.Config.Description)
	if data.Config.Definition != "" {
		lines = append(lines, "  "+data.Config.Definition)
	}
	lines = append(lines, "", "Navigation:")
	for _, l := range data.Nav {
		lines = append(lines, fmt.Sprintf("  %-10s %s", l.Label, l.Href))
	}
	lines = append(lines, "", "Social:")
	for _, l := range data.Social {
		lines = append(lines, fmt.Sprintf("  %-10s %s", l.Label, l.Href))
	}
	lines = append(lines, "", data.Config.About.Title, "  "+f.TruncateText(data.Config.About.Description, 80))

	return strings.Join(lines, "\n") + "\n"
}

// FormatPages formats a pages listing.
func (f *TerminalFormatter) FormatPages(ps []pages.Page) string {
	if len(ps) == 0 {
		return "No pages to display.\n"
	}

	var lines []string
	for _, p := range ps {
		line := p.Slug + separator + p.Title
		if p.Draft {
			line += " [draft]"
		}
		lines = append(lines, line)
		if p.Description != "" {
			lines = append(lines, "  "+p.Description)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// TruncateText truncates text to maxLen characters, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return string([]rune(text)[:maxLen-3]) + "..."
}
