// Package browser opens post links in the system browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Launcher starts an external command without waiting for it.
type Launcher func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start() // #nosec G204 -- URL validated by Browser.Open
}

// Browser opens URLs with the platform's opener command.
type Browser struct {
	goos   string
	launch Launcher
}

// New returns a Browser for the running platform.
func New() *Browser {
	return &Browser{goos: runtime.GOOS, launch: startCommand}
}

// NewWithLauncher returns a Browser for goos that launches through launch.
func NewWithLauncher(goos string, launch Launcher) *Browser {
	return &Browser{goos: goos, launch: launch}
}

// Open opens an http or https URL. Other schemes are rejected so no
// crafted link reaches the opener command.
func (b *Browser) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %q (only http and https allowed)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL: missing host in %q", rawURL)
	}

	name, args, err := opener(b.goos)
	if err != nil {
		return err
	}
	return b.launch(name, append(args, u.String())...)
}

func opener(goos string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd":
		return "xdg-open", nil, nil
	case "darwin":
		return "open", nil, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
