package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/timeslot"
)

const (
	StatusBooked    = "booked"
	StatusArrived   = "arrived"
	StatusFulfilled = "fulfilled"
	StatusCancelled = "cancelled"
	StatusNoShow    = "noshow"
)

var validStatuses = map[string]bool{
	StatusBooked: true, StatusArrived: true, StatusFulfilled: true,
	StatusCancelled: true, StatusNoShow: true,
}

// occupyingStatuses are the appointment states that keep their time range
// blocked. Cancelled and no-show appointments free the interval.
var occupyingStatuses = []string{StatusBooked, StatusArrived, StatusFulfilled}

func isOccupying(status string) bool {
	for _, s := range occupyingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Appointment is a booked visit: one practitioner, one patient, one
// contiguous time range on a single calendar date.
type Appointment struct {
	ID             uuid.UUID          `db:"id" json:"id"`
	PractitionerID uuid.UUID          `db:"practitioner_id" json:"practitioner_id"`
	PatientID      uuid.UUID          `db:"patient_id" json:"patient_id"`
	Date           time.Time          `db:"date" json:"date"`
	StartTime      timeslot.TimeOfDay `db:"start_min" json:"start_time"`
	Duration       int                `db:"duration_min" json:"duration_minutes"`
	Status         string             `db:"status" json:"status"`
	Reason         *string            `db:"reason" json:"reason,omitempty"`
	CreatedAt      time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `db:"updated_at" json:"updated_at"`
}

// Interval returns the appointment's time range in minute offsets.
func (a *Appointment) Interval() timeslot.Interval {
	start := a.StartTime.Minutes()
	return timeslot.Interval{Start: start, End: start + a.Duration}
}
