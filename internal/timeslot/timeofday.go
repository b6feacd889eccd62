// Package timeslot holds the pure time arithmetic the scheduling core is
// built on: wall-clock times of day, half-open minute intervals, and the
// slot enumeration used for availability lookups. Nothing in this package
// touches the database or the clock.
package timeslot

import (
	"errors"
	"fmt"
	"time"
)

const (
	// MinutesPerDay bounds every interval in this package.
	MinutesPerDay = 24 * 60
)

var (
	ErrInvalidTime = errors.New("time must be in HH:mm format")
	ErrOutOfRange  = errors.New("minute offset out of range")
)

// TimeOfDay is a wall-clock time with minute precision. The zero value is
// midnight.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses strict HH:mm with two digits for each component.
// Single-digit hours ("9:00") are rejected on purpose: loosely parsed times
// are a recurring source of scheduling defects.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// Minutes returns the offset from midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// FromMinutes converts a midnight offset back to a TimeOfDay. Offsets at or
// past 1440 have no wall-clock meaning and are rejected.
func FromMinutes(m int) (TimeOfDay, error) {
	if m < 0 || m >= MinutesPerDay {
		return TimeOfDay{}, fmt.Errorf("%w: %d", ErrOutOfRange, m)
	}
	return TimeOfDay{Hour: m / 60, Minute: m % 60}, nil
}

// String renders the canonical HH:mm form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalJSON renders the time as an "HH:mm" JSON string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON accepts a strict "HH:mm" JSON string.
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidTime, b)
	}
	parsed, err := ParseTimeOfDay(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Weekday normalizes Go's Sunday=0 numbering to the Monday=0..Sunday=6 scheme
// the weekly schedule tables use. Every call site goes through this function;
// the remap lives nowhere else.
func Weekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}
