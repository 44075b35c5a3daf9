package estimates

import (
	"strings"
	"time"
)

// ListFilter narrows the estimate list. Zero fields match everything.
type ListFilter struct {
	Search string
	Status Status
	// From and To bound the creation date, inclusive, compared by day.
	From time.Time
	To   time.Time
}

// IsZero reports whether the filter matches everything.
func (f ListFilter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" && f.Status == "" && f.From.IsZero() && f.To.IsZero()
}

// Match reports whether d passes the filter.
func (f ListFilter) Match(d Document) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		hay := []string{d.Version, d.Project, d.Client}
		found := false
		for _, h := range hay {
			if strings.Contains(strings.ToLower(h), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		created := truncateDay(d.CreatedAt)
		if !f.From.IsZero() && created.Before(truncateDay(f.From)) {
			return false
		}
		if !f.To.IsZero() && created.After(truncateDay(f.To)) {
			return false
		}
	}
	return true
}

// Apply returns the documents that pass the filter, preserving order.
func (f ListFilter) Apply(docs []Document) []Document {
	if f.IsZero() {
		return docs
	}
	var out []Document
	for _, d := range docs {
		if f.Match(d) {
			out = append(out, d)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
