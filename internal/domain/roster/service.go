package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/timeslot"
)

type Service struct {
	schedules ScheduleRepository
	daysOff   DayOffRepository
	breaks    BreakRepository
}

func NewService(schedules ScheduleRepository, daysOff DayOffRepository, breaks BreakRepository) *Service {
	return &Service{schedules: schedules, daysOff: daysOff, breaks: breaks}
}

// -- Weekly schedule --

// SetWeeklySchedule creates or replaces the working window for one weekday.
// Start and end arrive as HH:mm strings and must form a non-empty window.
func (s *Service) SetWeeklySchedule(ctx context.Context, practitionerID uuid.UUID, weekday int, start, end string) (*WeeklySchedule, error) {
	if practitionerID == uuid.Nil {
		return nil, fmt.Errorf("practitioner_id is required")
	}
	if weekday < 0 || weekday > 6 {
		return nil, fmt.Errorf("weekday must be 0 (Monday) through 6 (Sunday), got %d", weekday)
	}
	startTime, err := timeslot.ParseTimeOfDay(start)
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	endTime, err := timeslot.ParseTimeOfDay(end)
	if err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}
	if _, err := timeslot.Between(startTime, endTime); err != nil {
		return nil, fmt.Errorf("start_time must be before end_time")
	}

	w := &WeeklySchedule{
		PractitionerID: practitionerID,
		Weekday:        weekday,
		StartTime:      startTime,
		EndTime:        endTime,
	}
	if err := s.schedules.Upsert(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) GetWeeklySchedule(ctx context.Context, practitionerID uuid.UUID) ([]*WeeklySchedule, error) {
	return s.schedules.ListByPractitioner(ctx, practitionerID)
}

func (s *Service) DeleteWeeklySchedule(ctx context.Context, practitionerID uuid.UUID, weekday int) error {
	if weekday < 0 || weekday > 6 {
		return fmt.Errorf("weekday must be 0 (Monday) through 6 (Sunday), got %d", weekday)
	}
	return s.schedules.Delete(ctx, practitionerID, weekday)
}

// WorkingInterval returns the practitioner's working window on the given
// date. The second return value is false when no schedule row exists for
// that weekday.
func (s *Service) WorkingInterval(ctx context.Context, practitionerID uuid.UUID, date time.Time) (timeslot.Interval, bool, error) {
	w, err := s.schedules.GetByPractitionerDay(ctx, practitionerID, timeslot.Weekday(date))
	if errors.Is(err, ErrNotFound) {
		return timeslot.Interval{}, false, nil
	}
	if err != nil {
		return timeslot.Interval{}, false, err
	}
	iv, err := w.WorkingInterval()
	if err != nil {
		return timeslot.Interval{}, false, err
	}
	return iv, true, nil
}

// -- Day off --

func (s *Service) AddDayOff(ctx context.Context, d *DayOff) error {
	if d.PractitionerID == uuid.Nil {
		return fmt.Errorf("practitioner_id is required")
	}
	if d.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	d.Date = truncateToDate(d.Date)
	return s.daysOff.Create(ctx, d)
}

func (s *Service) IsDayOff(ctx context.Context, practitionerID uuid.UUID, date time.Time) (bool, error) {
	return s.daysOff.Exists(ctx, practitionerID, truncateToDate(date))
}

func (s *Service) ListDaysOff(ctx context.Context, practitionerID uuid.UUID) ([]*DayOff, error) {
	return s.daysOff.ListByPractitioner(ctx, practitionerID)
}

func (s *Service) RemoveDayOff(ctx context.Context, id uuid.UUID) error {
	return s.daysOff.Delete(ctx, id)
}

// -- Break --

func (s *Service) AddBreak(ctx context.Context, b *Break) error {
	if b.PractitionerID == uuid.Nil {
		return fmt.Errorf("practitioner_id is required")
	}
	if b.StartAt.IsZero() || b.EndAt.IsZero() {
		return fmt.Errorf("start_at and end_at are required")
	}
	if !b.StartAt.Before(b.EndAt) {
		return fmt.Errorf("start_at must be before end_at")
	}
	return s.breaks.Create(ctx, b)
}

func (s *Service) ListBreaks(ctx context.Context, practitionerID uuid.UUID) ([]*Break, error) {
	return s.breaks.ListByPractitioner(ctx, practitionerID)
}

func (s *Service) RemoveBreak(ctx context.Context, id uuid.UUID) error {
	return s.breaks.Delete(ctx, id)
}

// BreaksFor projects the practitioner's breaks onto the given date and
// returns them as minute-offset intervals.
func (s *Service) BreaksFor(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]timeslot.Interval, error) {
	breaks, err := s.breaks.ListTouchingDate(ctx, practitionerID, date)
	if err != nil {
		return nil, err
	}
	var intervals []timeslot.Interval
	for _, b := range breaks {
		if iv, ok := b.Project(date); ok {
			intervals = append(intervals, iv)
		}
	}
	return intervals, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
