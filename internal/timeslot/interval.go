package timeslot

import (
	"errors"
	"fmt"
)

var ErrInvalidInterval = errors.New("interval start must precede end within one day")

// Interval is a half-open span [Start, End) of minute offsets from local
// midnight. The half-open convention is what lets back-to-back appointments
// share a boundary without conflicting.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewInterval validates 0 <= start < end <= 1440. Zero-length and inverted
// spans are rejected at construction so the predicates below never see them.
func NewInterval(start, end int) (Interval, error) {
	if start < 0 || end > MinutesPerDay || start >= end {
		return Interval{}, fmt.Errorf("%w: [%d,%d)", ErrInvalidInterval, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Between builds the interval spanning two times of day.
func Between(start, end TimeOfDay) (Interval, error) {
	return NewInterval(start.Minutes(), end.Minutes())
}

// Overlaps reports whether the two spans share any minute. Touching at a
// boundary (a.End == b.Start) is not an overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Contains reports whether inner sits fully inside i, boundaries included.
func (i Interval) Contains(inner Interval) bool {
	return i.Start <= inner.Start && inner.End <= i.End
}

// Duration returns the span length in minutes.
func (i Interval) Duration() int {
	return i.End - i.Start
}

func (i Interval) String() string {
	s, _ := FromMinutes(i.Start)
	if i.End == MinutesPerDay {
		return fmt.Sprintf("%s-24:00", s)
	}
	e, _ := FromMinutes(i.End)
	return fmt.Sprintf("%s-%s", s, e)
}
