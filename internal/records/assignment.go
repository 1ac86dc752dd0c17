package records

import "time"

// Assignment is one column of a partial update.
type Assignment struct {
	Column string
	Value  any
}

// Touch returns the updatedAt to store for a record last updated at prev
// when it is modified at now. It never goes backwards.
func Touch(prev, now time.Time) time.Time {
	if now.Before(prev) {
		return prev
	}
	return now
}
