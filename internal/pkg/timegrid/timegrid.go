// Package timegrid implements minute-granular wall-clock arithmetic for the
// booking calendar. All values live inside a single day; ranges never cross
// midnight.
package timegrid

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Step is the increment used by the console's time steppers.
const Step = 15

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time with minute granularity, carried on the wire
// and in the database as an "HH:MM" string.
type TimeOfDay int

// Parse parses an "HH:MM" string.
func Parse(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// MustParse parses an "HH:MM" string and panics on malformed input. Malformed
// time literals are programmer errors, not recoverable conditions.
func MustParse(s string) TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the "HH:MM" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Shift adds delta minutes, wrapping within the day. Negative deltas subtract.
func (t TimeOfDay) Shift(delta int) TimeOfDay {
	v := (int(t) + delta) % minutesPerDay
	if v < 0 {
		v += minutesPerDay
	}
	return TimeOfDay(v)
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

// After reports whether t is strictly later than other.
func (t TimeOfDay) After(other TimeOfDay) bool { return t > other }

// Sub returns t − start in minutes. Callers guarantee t >= start; there is no
// cross-midnight correction here.
func (t TimeOfDay) Sub(start TimeOfDay) int { return int(t) - int(start) }

// At anchors the time of day on a calendar date.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(t)/60, int(t)%60, 0, 0, date.Location())
}

// MarshalJSON encodes as the quoted "HH:MM" form.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes from the quoted "HH:MM" form.
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid time literal %s", b)
	}
	v, err := Parse(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Value implements driver.Valuer; stored as "HH:MM" text.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner. Postgres returns time columns as "HH:MM:SS";
// the seconds part is ignored.
func (t *TimeOfDay) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*t = TimeOfDay(v.Hour()*60 + v.Minute())
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
	if len(s) > 5 {
		s = s[:5]
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
