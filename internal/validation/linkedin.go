package validation

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	MsgRequired       = "URL is required"
	MsgInvalidURL     = "Please enter a valid URL"
	MsgNotLinkedIn    = "Please enter a valid LinkedIn URL"
	MsgNotCompanyPage = "Please enter a LinkedIn company page URL"
)

type Result struct {
	Valid bool   `json:"isValid"`
	Error string `json:"error,omitempty"`
}

func invalid(msg string) Result { return Result{Error: msg} }

// LinkedInURL checks that raw points at a LinkedIn company page. Rules are
// applied in order and the first failure wins.
func LinkedInURL(raw string) Result {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return invalid(MsgRequired)
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return invalid(MsgInvalidURL)
	}

	host := strings.ToLower(u.Hostname())
	if host != "linkedin.com" && host != "www.linkedin.com" {
		return invalid(MsgNotLinkedIn)
	}

	// Percent-escapes stay encoded for this check.
	if !strings.Contains(u.EscapedPath(), "/company/") {
		return invalid(MsgNotCompanyPage)
	}
	return Result{Valid: true}
}

// CompanySlug returns the path segment following "company".
func CompanySlug(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	parts := strings.Split(u.EscapedPath(), "/")
	for i, p := range parts {
		if p == "company" && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1], true
		}
	}
	return "", false
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}
