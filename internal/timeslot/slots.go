package timeslot

import (
	"errors"
	"fmt"
)

// DefaultStep is the candidate spacing used by availability lookups.
const DefaultStep = 30

var ErrInvalidStep = errors.New("duration must be within one day and step positive")

// Slots enumerates bookable start times inside working: candidates begin at
// working.Start and advance by step while the candidate's full duration still
// fits before working.End. A candidate survives only if its interval overlaps
// none of the occupied spans. Results are ascending and recomputed fresh on
// every call; callers decide policy questions (day off, no schedule row)
// before invoking this.
func Slots(working Interval, duration, step int, occupied []Interval) ([]TimeOfDay, error) {
	// The cap keeps start+duration from wrapping around on oversized input.
	if duration <= 0 || duration > MinutesPerDay || step <= 0 {
		return nil, fmt.Errorf("%w: duration=%d step=%d", ErrInvalidStep, duration, step)
	}

	var out []TimeOfDay
	for start := working.Start; start+duration <= working.End; start += step {
		candidate := Interval{Start: start, End: start + duration}
		if conflicts(candidate, occupied) {
			continue
		}
		t, err := FromMinutes(start)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func conflicts(candidate Interval, occupied []Interval) bool {
	for _, o := range occupied {
		if candidate.Overlaps(o) {
			return true
		}
	}
	return false
}
