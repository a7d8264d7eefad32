package domain

import "strings"

// IsMatch reports whether existing is a potential counterpart of created:
// a different item of the opposite type in the same category whose title
// contains, or is contained in, the other title (case-insensitive).
func IsMatch(created, existing *Item) bool {
	if existing.ItemID == created.ItemID {
		return false
	}
	if existing.Type != created.Type.Opposite() {
		return false
	}
	if existing.Category != created.Category {
		return false
	}
	a := strings.ToLower(created.Title)
	b := strings.ToLower(existing.Title)
	return strings.Contains(a, b) || strings.Contains(b, a)
}
