// Package pages loads the site's markdown pages and checks their frontmatter.
package pages

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/rjgrunau/askesis/internal/slug"
)

// ErrMissingTitle is returned for a page whose frontmatter has no title key.
// An empty title string is allowed.
var ErrMissingTitle = errors.New("page title is required")

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Page is a markdown page of the pages collection.
type Page struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Draft       bool   `json:"draft"`
	Body        string `json:"body"`
}

type frontMatter struct {
	Title       *string `yaml:"title"`
	Description string  `yaml:"description"`
	Draft       bool    `yaml:"draft"`
}

// Parse reads one page. name is the file name the slug derives from.
func Parse(name string, raw []byte) (Page, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm, yamlFormat)
	if err != nil {
		return Page{}, fmt.Errorf("failed to parse frontmatter of %s: %w", name, err)
	}
	if fm.Title == nil {
		return Page{}, fmt.Errorf("%s: %w", name, ErrMissingTitle)
	}

	return Page{
		Slug:        slug.Slugify(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))),
		Title:       *fm.Title,
		Description: fm.Description,
		Draft:       fm.Draft,
		Body:        strings.TrimSpace(string(body)),
	}, nil
}

// Load reads every *.md file in dir, ordered by file name.
// A missing directory holds no pages.
func Load(dir string) ([]Page, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("failed to find pages: %w", err)
	}
	slices.Sort(files)

	pages := make([]Page, 0, len(files))
	for _, file := range files {
		raw, err := os.ReadFile(file) // #nosec G304 -- file comes from a glob of the pages dir
		if err != nil {
			return nil, fmt.Errorf("failed to read page: %w", err)
		}
		page, err := Parse(filepath.Base(file), raw)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// Published drops draft pages.
func Published(pages []Page) []Page {
	out := make([]Page, 0, len(pages))
	for _, p := range pages {
		if !p.Draft {
			out = append(out, p)
		}
	}
	return out
}
