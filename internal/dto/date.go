package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date parses a calendar date ("2006-01-02") from JSON. Transactions carry no
// time component; the parsed value is midnight UTC of that day.
type Date struct{ t *time.Time }

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return fmt.Errorf("date: use YYYY-MM-DD")
	}
	parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	d.t = &parsed
	return nil
}

// Ptr returns *time.Time for use in service/domain. Nil when absent.
func (d Date) Ptr() *time.Time { return d.t }

// IsZero reports whether no date was supplied.
func (d Date) IsZero() bool { return d.t == nil }

// ParseDateQuery parses an optional YYYY-MM-DD query parameter.
// Empty input yields (nil, nil).
func ParseDateQuery(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("date: use YYYY-MM-DD")
	}
	parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	return &parsed, nil
}

// FormatDate renders a date-only value for responses.
func FormatDate(t time.Time) string { return t.Format(dateLayout) }
