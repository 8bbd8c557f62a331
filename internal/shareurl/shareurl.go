// Package shareurl normalizes user-supplied conversation links into the
// canonical, publicly fetchable share-URL form.
package shareurl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidInput indicates the raw URL is empty, malformed, or not a
// recognized share link. It is never retried; callers surface it verbatim.
var ErrInvalidInput = errors.New("invalid share URL")

// Hosts accepted as conversation sources. Anything else is rejected.
var allowedHosts = []string{
	"chat.openai.com",
	"chatgpt.com",
}

// Normalize trims, forces HTTPS, validates the host against the allow-list,
// and rewrites host-specific path forms into the share form. The result is
// stable: normalizing an already-normalized URL returns it unchanged.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: URL cannot be empty", ErrInvalidInput)
	}

	// Force the secure scheme regardless of what was supplied.
	if !strings.HasPrefix(raw, "https://") {
		if i := strings.Index(raw, "://"); i >= 0 {
			raw = "https://" + raw[i+len("://"):]
		} else {
			raw = "https://" + raw
		}
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: malformed URL %q", ErrInvalidInput, raw)
	}

	host := strings.ToLower(u.Hostname())
	if !hostAllowed(host) {
		return "", fmt.Errorf("%w: URL must be from one of: %s", ErrInvalidInput, strings.Join(allowedHosts, ", "))
	}

	out := u.String()
	switch host {
	case "chat.openai.com":
		switch {
		case strings.Contains(out, "/share/"):
			// already in share form
		case strings.Contains(out, "/c/"):
			// legacy conversation-id path
			out = strings.Replace(out, "/c/", "/share/", 1)
		default:
			out = strings.TrimRight(out, "/") + "/share/"
		}
	case "chatgpt.com":
		if !strings.Contains(out, "/share/") {
			out = strings.TrimRight(out, "/") + "/share/"
		}
	}

	if !strings.Contains(out, "chatgpt.com/share/") &&
		!strings.Contains(out, "chat.openai.com/share/") &&
		!strings.Contains(out, "chat.openai.com/g/") {
		return "", fmt.Errorf("%w: URL must be a shared conversation link (…/share/…) or a GPT link (chat.openai.com/g/…)", ErrInvalidInput)
	}
	return out, nil
}

func hostAllowed(host string) bool {
	for _, h := range allowedHosts {
		if host == h {
			return true
		}
	}
	return false
}
