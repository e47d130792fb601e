package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_HasNavigationAndCopy(t *testing.T) {
	data := Default()

	wantNav := []Link{{"HOME", "/"}, {"BLOG", "/blog"}, {"ABOUT", "/about"}}
	if len(data.Nav) != len(wantNav) {
		t.Fatalf("expected %d nav items, got %d", len(wantNav), len(data.Nav))
	}
	for i, want := range wantNav {
		if data.Nav[i] != want {
			t.Errorf("nav[%d] = %+v, want %+v", i, data.Nav[i], want)
		}
	}
	if len(data.Social) != 3 || data.Social[0].Label != "SUBSTACK" {
		t.Errorf("unexpected social links %+v", data.Social)
	}
	if data.Config.Title != "Askesis" {
		t.Errorf("expected title Askesis, got %q", data.Config.Title)
	}
	if data.Config.Definition != "Ancient Greek: physical & mental training" {
		t.Errorf("unexpected definition %q", data.Config.Definition)
	}
	if !strings.HasPrefix(data.Config.About.Quote, "“Thoughts and emotions") {
		t.Errorf("unexpected quote %q", data.Config.About.Quote)
	}
	if strings.Contains(data.Config.About.Description, "\n") {
		t.Error("folded description should be a single line")
	}
}

func TestLoad_ReadsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	content := "nav:\n  - label: HOME\n    href: /\nconfig:\n  title: Other Site\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	data, err := Load(path)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Config.Title != "Other Site" || len(data.Nav) != 1 {
		t.Errorf("unexpected data %+v", data)
	}
}

func TestParse_RejectsInvalidData(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing title", "config:\n  tagline: x\n"},
		{"link without href", "nav:\n  - label: HOME\nconfig:\n  title: T\n"},
		{"social without label", "social:\n  - href: '#'\nconfig:\n  title: T\n"},
		{"not yaml", "config: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
