// Package site holds the static data the site's pages render:
// navigation, social links and the site configuration copy.
package site

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultYAML []byte

// Link is a labelled navigation target.
type Link struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

// About is the copy of the about section.
type About struct {
	Label       string `yaml:"label" json:"label"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Quote       string `yaml:"quote" json:"quote"`
}

// Config is the site-wide copy.
type Config struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Tagline     string `yaml:"tagline" json:"tagline"`
	Definition  string `yaml:"definition" json:"definition"`
	About       About  `yaml:"about" json:"about"`
}

// Data is everything in a site file.
type Data struct {
	Nav    []Link `yaml:"nav" json:"nav"`
	Social []Link `yaml:"social" json:"social"`
	Config Config `yaml:"config" json:"config"`
}

// Default returns the site data compiled into the binary.
func Default() Data {
	data, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded site.yaml is invalid: %v", err))
	}
	return data
}

// Load reads site data from a YAML file.
func Load(path string) (Data, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return Data{}, fmt.Errorf("failed to read site file: %w", err)
	}
	data, err := Parse(raw)
	if err != nil {
		return Data{}, fmt.Errorf("invalid site file %s: %w", path, err)
	}
	return data, nil
}

// Parse decodes and validates site data.
func Parse(raw []byte) (Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := data.validate(); err != nil {
		return Data{}, err
	}
	return data, nil
}

func (d Data) validate() error {
	if d.Config.Title == "" {
		return fmt.Errorf("site title is required")
	}
	for i, l := range d.Nav {
		if l.Label == "" || l.Href == "" {
			return fmt.Errorf("nav link at index %d needs a label and href", i)
		}
	}
	for i, l := range d.Social {
		if l.Label == "" || l.Href == "" {
			return fmt.Errorf("social link at index %d needs a label and href", i)
		}
	}
	return nil
}
