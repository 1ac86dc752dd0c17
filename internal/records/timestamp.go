package records

import (
	"encoding/json"
	"fmt"
	"time"
)

// inputLayouts are accepted for dates in request bodies, most specific first.
var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// Timestamp is a date-time read from a request body. It accepts RFC 3339
// as well as the shorter forms HTML date inputs produce.
type Timestamp time.Time

// ParseTimestamp parses s with the accepted layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp(t.UTC()), nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid date %q", s)
}

func (t Timestamp) Time() time.Time { return time.Time(t) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string")
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// At wraps tm as a Timestamp pointer.
func At(tm time.Time) *Timestamp {
	ts := Timestamp(tm)
	return &ts
}
