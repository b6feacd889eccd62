// Package roster holds the data that decides when a practitioner is
// reachable: the weekly working hours, full-day absences, and breaks.
package roster

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/timeslot"
)

// WeeklySchedule is one practitioner's working window on one weekday.
// Weekday uses the Monday=0..Sunday=6 convention from timeslot.Weekday.
// At most one row exists per (practitioner, weekday).
type WeeklySchedule struct {
	ID             uuid.UUID          `db:"id" json:"id"`
	PractitionerID uuid.UUID          `db:"practitioner_id" json:"practitioner_id"`
	Weekday        int                `db:"weekday" json:"weekday"`
	StartTime      timeslot.TimeOfDay `db:"start_time" json:"start_time"`
	EndTime        timeslot.TimeOfDay `db:"end_time" json:"end_time"`
	CreatedAt      time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `db:"updated_at" json:"updated_at"`
}

// WorkingInterval returns the schedule row's window in minute offsets.
func (w *WeeklySchedule) WorkingInterval() (timeslot.Interval, error) {
	return timeslot.Between(w.StartTime, w.EndTime)
}

// DayOff marks a full calendar date as unbookable for a practitioner.
type DayOff struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PractitionerID uuid.UUID `db:"practitioner_id" json:"practitioner_id"`
	Date           time.Time `db:"date" json:"date"`
	Reason         *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Break blocks an absolute time range, which may span midnight or
// several days. It is projected onto a single date when consulted.
type Break struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PractitionerID uuid.UUID `db:"practitioner_id" json:"practitioner_id"`
	StartAt        time.Time `db:"start_at" json:"start_at"`
	EndAt          time.Time `db:"end_at" json:"end_at"`
	Reason         *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Project maps the break onto the given date's minute offsets, clamped to
// [0,1440). The second return value is false when the break does not touch
// the date at all.
func (b *Break) Project(date time.Time) (timeslot.Interval, bool) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	start := b.StartAt
	if start.Before(dayStart) {
		start = dayStart
	}
	end := b.EndAt
	if end.After(dayEnd) {
		end = dayEnd
	}
	if !start.Before(end) {
		return timeslot.Interval{}, false
	}

	startMin := int(start.Sub(dayStart) / time.Minute)
	endMin := int(end.Sub(dayStart) / time.Minute)
	if endMin > timeslot.MinutesPerDay {
		endMin = timeslot.MinutesPerDay
	}
	if startMin >= endMin {
		return timeslot.Interval{}, false
	}
	return timeslot.Interval{Start: startMin, End: endMin}, true
}
