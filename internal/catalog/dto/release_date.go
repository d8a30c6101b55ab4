package dto

import (
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the layout release dates are written with.
const DateLayout = "2006-01-02"

// ReleaseDate is a custom time type that handles the release dates stored by
// the backend: "2024-03-25", "2024-03-25 00:00:00", "2024.03.25" or RFC 3339.
//
// Dates that cannot be parsed decode to the zero time. A bad date on one row
// must not make a whole page undecodable.
type ReleaseDate struct {
	time.Time
}

var releaseDateFormats = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006.01.02",
	"2006.01.02.",
	"20060102",
}

// ParseReleaseDate parses s with the accepted layouts.
func ParseReleaseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, format := range releaseDateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}

	// "2024-03-25 00:00:00.000000" and friends
	if len(s) > len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// UnmarshalJSON accepts a string or null.
func (rd *ReleaseDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		rd.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	rd.Time, _ = ParseReleaseDate(s)
	return nil
}

// MarshalJSON writes "YYYY-MM-DD", or "" for the zero time.
func (rd ReleaseDate) MarshalJSON() ([]byte, error) {
	if rd.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(rd.Format(DateLayout))
}
