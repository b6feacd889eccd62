package roster

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when no record matches.
var ErrNotFound = errors.New("record not found")

type ScheduleRepository interface {
	Upsert(ctx context.Context, w *WeeklySchedule) error
	GetByPractitionerDay(ctx context.Context, practitionerID uuid.UUID, weekday int) (*WeeklySchedule, error)
	ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*WeeklySchedule, error)
	Delete(ctx context.Context, practitionerID uuid.UUID, weekday int) error
}

type DayOffRepository interface {
	Create(ctx context.Context, d *DayOff) error
	Exists(ctx context.Context, practitionerID uuid.UUID, date time.Time) (bool, error)
	ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*DayOff, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BreakRepository interface {
	Create(ctx context.Context, b *Break) error
	ListTouchingDate(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]*Break, error)
	ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*Break, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
