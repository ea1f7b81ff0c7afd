package cache

import (
	"regexp"
	"strings"
)

var keySanitizer = regexp.MustCompile(`[^a-z0-9-]`)

// DeriveKey computes the cache identity for an analysis: lower-cased,
// trimmed parts joined with "-", with everything outside [a-z0-9-]
// replaced by "-". Two requests that normalize to the same key are the
// same analyzable entity regardless of casing or whitespace.
func DeriveKey(company, product, url string) string {
	parts := []string{strings.ToLower(strings.TrimSpace(company))}
	if product != "" {
		parts = append(parts, strings.ToLower(strings.TrimSpace(product)))
	}
	if url != "" {
		parts = append(parts, strings.ToLower(strings.TrimSpace(url)))
	}
	return keySanitizer.ReplaceAllString(strings.Join(parts, "-"), "-")
}
