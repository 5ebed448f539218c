package transform

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	dotsRegex       = regexp.MustCompile(`\.+`)

	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

// Apply runs value through fns in order.
func Apply[T any](value T, fns ...func(T) T) T {
	for _, fn := range fns {
		value = fn(value)
	}
	return value
}

// Compose chains fns into one function.
func Compose[T any](fns ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, fns...)
	}
}

func Trim(s string) string { return strings.TrimSpace(s) }

func ToLower(s string) string { return strings.ToLower(s) }

func ToUpper(s string) string { return strings.ToUpper(s) }

// NormalizeWhitespace collapses runs of whitespace into one space and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// RemoveControlChars drops control characters except newlines and tabs.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// KeepDigits drops everything but digits.
func KeepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// NormalizeEmail trims and lowercases an address and collapses repeated
// dots in its local part. Input without exactly one @ is only trimmed
// and lowercased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}
	local = strings.Trim(dotsRegex.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}

// StripHTML removes all markup and returns plain text.
func StripHTML(s string) string {
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// SanitizeHTML keeps the markup safe for user generated content and drops
// scripts, event handlers and unsafe links.
func SanitizeHTML(s string) string {
	return ugcPolicy.Sanitize(s)
}

// MaxLength truncates s to n runes.
func MaxLength(n int) func(string) string {
	return func(s string) string {
		if n < 0 {
			return s
		}
		runes := []rune(s)
		if len(runes) <= n {
			return s
		}
		return string(runes[:n])
	}
}
