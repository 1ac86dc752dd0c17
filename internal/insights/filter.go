// Package insights holds the pure functions that filter task lists and
// derive dashboard numbers from them. Both the server views and the terminal
// client use it.
package insights

import (
	"github.com/dmitrijs2005/edupilot/internal/records"
)

// Filter selects tasks. A zero field means "any".
type Filter struct {
	Status   records.Status
	Priority records.Priority
	Tag      string
}

// IsZero reports whether f matches every task.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether t passes every set criterion.
func (f Filter) Match(t records.Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Tag != "" && !hasTag(t.Tags, f.Tag) {
		return false
	}
	return true
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
