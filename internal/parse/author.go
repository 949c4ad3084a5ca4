package parse

import "strings"

// NormalizeAuthor derives an author identifier from a display name:
// trimmed, lowercased, spaces replaced by hyphens. Distinct names may
// collide.
func NormalizeAuthor(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
