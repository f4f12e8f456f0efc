// Package browser hands article links to the platform's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

var openers = map[string][]string{
	"darwin": {"open"},
	// rundll32 avoids cmd /c start and its shell interpretation
	"windows": {"rundll32", "url.dll,FileProtocolHandler"},
	"linux":   {"xdg-open"},
}

// Open launches rawURL in the default browser. Only http and https links
// are accepted; anything else is an error, not a launch.
func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid link: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q link", u.Scheme)
	}

	argv, ok := openers[runtime.GOOS]
	if !ok {
		argv = openers["linux"]
	}
	return exec.Command(argv[0], append(argv[1:], rawURL)...).Start()
}
