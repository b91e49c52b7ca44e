// Package types contains shared value types used across storage, use case
// and API layers.
package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeFormat is the wire and storage format of TimeString values.
const TimeFormat = "15:04"

// ErrInvalidTimeString is returned when a string does not parse as "HH:MM".
var ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

// TimeString is a wall-clock time of day ("HH:MM") without a date component.
// It is stored in the database as a string and compared lexically, which is
// correct for the zero-padded 24-hour format.
type TimeString string

// NewTimeString builds a TimeString from the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString parses and validates s as "HH:MM".
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate reports whether the value is a well-formed "HH:MM" time.
// The width check matters: time.Parse accepts "9:30", but lexical
// comparison is only correct for zero-padded values.
func (t TimeString) Validate() error {
	if len(t) != len(TimeFormat) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if _, err := time.Parse(TimeFormat, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// Hour returns the hour component (0-23). Returns 0 for malformed values.
func (t TimeString) Hour() int {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()
}

// Minutes returns the number of minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns a new TimeString shifted forward by the given number of
// minutes. The result wraps around midnight.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return TimeString(parsed.Add(time.Duration(minutes) * time.Minute).Format(TimeFormat)), nil
}

// IsBefore reports whether t is strictly earlier in the day than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later in the day than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// On anchors the time of day to the given date in the date's location.
func (t TimeString) On(date time.Time) (time.Time, error) {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Accepts TEXT, BYTEA and TIME column values.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		// Время из колонок TIME приходит как "HH:MM:SS" - обрезаем секунды
		if len(v) > len(TimeFormat) {
			v = v[:len(TimeFormat)]
		}
		*t = TimeString(v)
		return t.Validate()
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
}
