package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the editable plain-date form
const DateLayout = "2006-01-02"

// wireLayout is midnight UTC with an explicit zone, the form the backend expects
const wireLayout = "2006-01-02T15:04:05Z"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date is a calendar date without time of day
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses strict YYYY-MM-DD text into a Date
func ParseDate(text string) (Date, error) {
	if !datePattern.MatchString(text) {
		return Date{}, fmt.Errorf("date %q must use the YYYY-MM-DD format", text)
	}
	t, err := time.Parse(DateLayout, text)
	if err != nil {
		return Date{}, fmt.Errorf("date %q is not a calendar date", text)
	}
	return DateOf(t), nil
}

// DateOf keeps the calendar part of t as seen in t's own location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is the zero Date
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns midnight UTC on d
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Text returns YYYY-MM-DD
func (d Date) Text() string {
	return d.Time().Format(DateLayout)
}

// Wire returns the explicit midnight-UTC timestamp sent to the backend
func (d Date) Wire() string {
	return d.Time().Format(wireLayout)
}

// AddDays returns d shifted by n days
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) String() string {
	return d.Text()
}

// MarshalJSON encodes d as "YYYY-MM-DDT00:00:00Z"
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Wire())
}

// UnmarshalJSON accepts RFC 3339, zone-less timestamps and plain dates.
// Only the date part is kept.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	parsed, err := parseWireDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// parseWireDate reads the date portion of whatever timestamp the backend sent.
// The calendar date is taken literally; no zone conversion happens.
func parseWireDate(s string) (Date, error) {
	if len(s) < len(DateLayout) {
		return Date{}, fmt.Errorf("date: cannot parse %q", s)
	}
	head := s[:len(DateLayout)]
	rest := s[len(DateLayout):]
	if rest != "" && !strings.HasPrefix(rest, "T") && !strings.HasPrefix(rest, " ") {
		return Date{}, fmt.Errorf("date: cannot parse %q", s)
	}
	return ParseDate(head)
}

// DatePtr is a helper for optional dates
func DatePtr(d Date) *Date {
	return &d
}

// FormatOptionalDate renders an optional date for forms and tables
func FormatOptionalDate(d *Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.Text()
}
