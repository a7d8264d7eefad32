package domain

import (
	"strings"
	"time"
)

// ItemFilter is the store-level catalog filter. All set fields must match.
// Type is deliberately absent: callers post-filter with FilterByType.
type ItemFilter struct {
	IsVerified *bool
	Category   string
	StartDate  *time.Time
	EndDate    *time.Time
	Query      string
}

// Match reports whether item satisfies every set field of f. Dates compare
// at calendar-day granularity with both bounds inclusive; an item whose date
// cannot be parsed never satisfies a date bound.
func (f ItemFilter) Match(item *Item) bool {
	if f.IsVerified != nil && item.IsVerified != *f.IsVerified {
		return false
	}
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if f.StartDate != nil || f.EndDate != nil {
		day, err := ParseDay(item.Date)
		if err != nil {
			return false
		}
		if f.StartDate != nil && day.Before(*f.StartDate) {
			return false
		}
		if f.EndDate != nil && day.After(*f.EndDate) {
			return false
		}
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(item.Title), q) &&
			!strings.Contains(strings.ToLower(item.Description), q) &&
			!strings.Contains(strings.ToLower(item.Location), q) {
			return false
		}
	}
	return true
}

// ParseDay parses a YYYY-MM-DD calendar day in UTC.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, s, time.UTC)
}

// FilterByType keeps items of type t. An empty type keeps everything.
func FilterByType(items []Item, t ItemType) []Item {
	if t == "" {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Type == t {
			out = append(out, it)
		}
	}
	return out
}

// IsCategory reports whether c is one of Categories.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
