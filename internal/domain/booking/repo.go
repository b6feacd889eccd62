package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when no appointment matches the id.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// UpdateTime rewrites date, start and duration after a reschedule.
	UpdateTime(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// ListOccupying returns the appointments that block time on the given
	// practitioner's date (booked, arrived, fulfilled).
	ListOccupying(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]*Appointment, error)
	ListByPractitionerDate(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]*Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
}
