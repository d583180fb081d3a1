// Package browser opens article source links in the system browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener opens a URL.
type Opener interface {
	Open(rawURL string) error
}

// System launches the platform's default browser.
type System struct{}

func (System) Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	return command(runtime.GOOS, rawURL).Start()
}

// Validate accepts only absolute http and https URLs.
func Validate(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("article has no source url")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("refusing to open URL without host: %q", rawURL)
	}
	return nil
}

func command(goos, rawURL string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", rawURL)
	case "windows":
		// Use rundll32 instead of cmd /c start to avoid shell interpretation
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return exec.Command("xdg-open", rawURL)
	}
}
