package webhook

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ValidateURL checks a subscriber endpoint. In production it must be https and must not point
// at loopback, private, link-local or unspecified addresses. Host names are not resolved.
func ValidateURL(raw string, production bool) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}
	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	if !production {
		return nil
	}

	if u.Scheme != "https" {
		return fmt.Errorf("%w: https is required", ErrInvalidURL)
	}
	lower := strings.ToLower(host)
	if lower == "localhost" || strings.HasSuffix(lower, ".localhost") ||
		strings.HasSuffix(lower, ".local") || strings.HasSuffix(lower, ".internal") {
		return fmt.Errorf("%w: private host %q", ErrInvalidURL, host)
	}
	if ip := net.ParseIP(host); ip != nil {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
			return fmt.Errorf("%w: private address %s", ErrInvalidURL, host)
		}
	}
	return nil
}
