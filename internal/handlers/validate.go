package handlers

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"adforge/internal/models"
)

// Validation limits for account and project fields.
const (
	maxTitleLen    = 300
	maxHeadlineLen = 300
	maxBodyTextLen = 5_000
	maxCTALen      = 100
	maxPromptLen   = 2_000
	minPasswordLen = 8
)

// validateCredentials checks registration inputs and returns the first
// error found, or "" when valid.
func validateCredentials(email, password string) string {
	if _, err := mail.ParseAddress(email); err != nil {
		return "a valid email address is required"
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "password must be at least 8 characters"
	}
	return ""
}

// validateProjectSave checks a full project save and returns the first
// error found, or "" when valid. Absent content fields are always valid;
// only fields the client actually sent are checked.
func validateProjectSave(title string, content models.Content) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}

	if content.Headline != nil && utf8.RuneCountInString(*content.Headline) > maxHeadlineLen {
		return "headline is too long (max 300 characters)"
	}
	if content.BodyText != nil && utf8.RuneCountInString(*content.BodyText) > maxBodyTextLen {
		return "body text is too long (max 5,000 characters)"
	}
	if content.CTA != nil && utf8.RuneCountInString(*content.CTA) > maxCTALen {
		return "call to action is too long (max 100 characters)"
	}
	if content.BgColor != nil && *content.BgColor != "" && !validHexColor(*content.BgColor) {
		return "background colour must be a #RGB or #RRGGBB hex value"
	}
	if content.ImageURL != nil && *content.ImageURL != "" && !validAbsoluteURL(*content.ImageURL) {
		return "image URL must be an absolute http(s) URL"
	}
	return ""
}

// validateGenerate checks copy-generation inputs.
func validateGenerate(prompt, adType, tone string) string {
	if prompt == "" {
		return "prompt is required"
	}
	if utf8.RuneCountInString(prompt) > maxPromptLen {
		return "prompt is too long (max 2,000 characters)"
	}
	if strings.TrimSpace(adType) == "" {
		return "adType is required"
	}
	if strings.TrimSpace(tone) == "" {
		return "tone is required"
	}
	return ""
}

// validHexColor reports whether s is a #RGB or #RRGGBB hex colour.
func validHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// validAbsoluteURL reports whether s parses as an absolute http(s) URL.
func validAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
