// Package resolve turns an arbitrary incoming URL fragment into the content
// record it refers to, and computes the canonical URL for that record.
package resolve

import "regexp"

var (
	directKeyPattern   = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	embeddedKeyPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	trailingHexPattern = regexp.MustCompile(`[0-9a-fA-F]{6,}$`)
)

// IsDirectKey reports whether the entire identifier is a content key.
func IsDirectKey(id string) bool {
	return directKeyPattern.MatchString(id)
}

// ExtractEmbeddedKey returns the first content key found anywhere inside the
// identifier, or "" when none exists. When the match is the whole identifier
// the caller already has a direct key; callers skip the embedded strategy in
// that case.
func ExtractEmbeddedKey(id string) string {
	return embeddedKeyPattern.FindString(id)
}

// ExtractTrailingHash returns the longest trailing run of six or more
// hexadecimal characters, or "". Editor-assigned slugs sometimes carry a
// short hash suffix; the run is the only fingerprint left to match on.
func ExtractTrailingHash(id string) string {
	return trailingHexPattern.FindString(id)
}
