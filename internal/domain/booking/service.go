package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/timeslot"
)

// Rejections produced by the booking pipeline. Handlers map each to a
// distinct HTTP response; anything else is a store failure.
var (
	ErrInvalidInput         = errors.New("invalid booking input")
	ErrPractitionerNotFound = errors.New("practitioner not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrNotWorkingDay        = errors.New("practitioner does not work on this day")
	ErrDayOff               = errors.New("practitioner has a day off on this date")
	ErrOutsideHours         = errors.New("requested time falls outside working hours")
	ErrBreakConflict        = errors.New("requested time overlaps a break")
	ErrDoubleBooked         = errors.New("requested time overlaps an existing appointment")
	ErrAppointmentNotFound  = errors.New("appointment not found")
)

// Roster supplies the schedule data the validation pipeline consults.
type Roster interface {
	WorkingInterval(ctx context.Context, practitionerID uuid.UUID, date time.Time) (timeslot.Interval, bool, error)
	IsDayOff(ctx context.Context, practitionerID uuid.UUID, date time.Time) (bool, error)
	BreaksFor(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]timeslot.Interval, error)
}

// Directory answers existence checks for the people involved in a booking.
type Directory interface {
	PractitionerExists(ctx context.Context, id uuid.UUID) (bool, error)
	PatientExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// TxRunner executes fn atomically against the store. Production wiring uses
// db.WithTx; tests pass nil for straight-through execution.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// keyedMutex serializes goroutines working on the same (practitioner, date)
// pair. The transaction alone does not stop two handler goroutines from both
// passing the conflict check before either insert commits. Entries are
// refcounted and removed once the last holder releases, so the map stays
// bounded by the number of in-flight bookings.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*lockEntry)}
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &lockEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

type Service struct {
	appointments Repository
	roster       Roster
	directory    Directory
	runTx        TxRunner
	step         int
	locks        *keyedMutex
}

func NewService(appointments Repository, roster Roster, directory Directory, runTx TxRunner, step int) *Service {
	if runTx == nil {
		runTx = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	if step <= 0 {
		step = timeslot.DefaultStep
	}
	return &Service{
		appointments: appointments,
		roster:       roster,
		directory:    directory,
		runTx:        runTx,
		step:         step,
		locks:        newKeyedMutex(),
	}
}

// CreateRequest is a booking attempt as it arrives from the transport.
type CreateRequest struct {
	PractitionerID uuid.UUID `json:"practitioner_id"`
	PatientID      uuid.UUID `json:"patient_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	Duration       int       `json:"duration_minutes"`
	Reason         *string   `json:"reason,omitempty"`
}

// AvailableSlots lists the start times still bookable for the practitioner
// on the given date. A missing schedule row or a day off yields an empty
// list, not an error.
func (s *Service) AvailableSlots(ctx context.Context, practitionerID uuid.UUID, date time.Time, duration int) ([]timeslot.TimeOfDay, error) {
	if practitionerID == uuid.Nil {
		return nil, fmt.Errorf("%w: practitioner_id is required", ErrInvalidInput)
	}
	if duration <= 0 || duration > timeslot.MinutesPerDay {
		return nil, fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, timeslot.MinutesPerDay)
	}
	date = truncateToDate(date)

	working, ok, err := s.roster.WorkingInterval(ctx, practitionerID, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []timeslot.TimeOfDay{}, nil
	}
	off, err := s.roster.IsDayOff(ctx, practitionerID, date)
	if err != nil {
		return nil, err
	}
	if off {
		return []timeslot.TimeOfDay{}, nil
	}

	occupied, err := s.occupiedIntervals(ctx, practitionerID, date, uuid.Nil)
	if err != nil {
		return nil, err
	}

	slots, err := timeslot.Slots(working, duration, s.step, occupied)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if slots == nil {
		slots = []timeslot.TimeOfDay{}
	}
	return slots, nil
}

// CreateAppointment runs the full validation pipeline and inserts the
// appointment. Checks run in a fixed order so a request failing several ways
// always reports the same rejection. The conflict check and the insert are
// one atomic unit: a transaction against the store, a keyed lock against
// sibling goroutines.
func (s *Service) CreateAppointment(ctx context.Context, req CreateRequest) (*Appointment, error) {
	date, start, err := s.validateRequest(req.PractitionerID, req.PatientID, req.Date, req.StartTime, req.Duration)
	if err != nil {
		return nil, err
	}

	if err := s.checkParticipants(ctx, req.PractitionerID, req.PatientID); err != nil {
		return nil, err
	}

	a := &Appointment{
		PractitionerID: req.PractitionerID,
		PatientID:      req.PatientID,
		Date:           date,
		StartTime:      start,
		Duration:       req.Duration,
		Status:         StatusBooked,
		Reason:         req.Reason,
	}

	unlock := s.locks.lock(lockKey(req.PractitionerID, date))
	defer unlock()

	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.checkCalendar(ctx, a, uuid.Nil); err != nil {
			return err
		}
		return s.appointments.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Reschedule moves an appointment to a new date/time/duration. The change
// re-enters the same validation pipeline; the appointment's own interval
// does not count against it.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, dateStr, startStr string, duration int) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}

	date, start, err := s.validateRequest(a.PractitionerID, a.PatientID, dateStr, startStr, duration)
	if err != nil {
		return nil, err
	}

	moved := *a
	moved.Date = date
	moved.StartTime = start
	moved.Duration = duration

	unlock := s.locks.lock(lockKey(a.PractitionerID, date))
	defer unlock()

	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.checkCalendar(ctx, &moved, a.ID); err != nil {
			return err
		}
		return s.appointments.UpdateTime(ctx, &moved)
	})
	if err != nil {
		return nil, err
	}
	return &moved, nil
}

// Cancel releases the appointment's interval.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	err := s.appointments.UpdateStatus(ctx, id, StatusCancelled)
	if errors.Is(err, ErrNotFound) {
		return ErrAppointmentNotFound
	}
	return err
}

// SetStatus moves the appointment to one of the known states. Reviving a
// cancelled or no-show appointment puts its interval back into the occupying
// set, so that transition re-runs the calendar checks under the same lock
// and transaction as a fresh booking; the slot may have been taken since.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	a, err := s.appointments.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return ErrAppointmentNotFound
	}
	if err != nil {
		return err
	}

	if !isOccupying(a.Status) && isOccupying(status) {
		unlock := s.locks.lock(lockKey(a.PractitionerID, a.Date))
		defer unlock()

		err = s.runTx(ctx, func(ctx context.Context) error {
			if err := s.checkCalendar(ctx, a, a.ID); err != nil {
				return err
			}
			return s.appointments.UpdateStatus(ctx, id, status)
		})
	} else {
		err = s.appointments.UpdateStatus(ctx, id, status)
	}
	if errors.Is(err, ErrNotFound) {
		return ErrAppointmentNotFound
	}
	return err
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrAppointmentNotFound
	}
	return a, err
}

func (s *Service) ListByPractitionerDate(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]*Appointment, error) {
	return s.appointments.ListByPractitionerDate(ctx, practitionerID, truncateToDate(date))
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByPatient(ctx, patientID, limit, offset)
}

// -- pipeline pieces --

func (s *Service) validateRequest(practitionerID, patientID uuid.UUID, dateStr, startStr string, duration int) (time.Time, timeslot.TimeOfDay, error) {
	var zero timeslot.TimeOfDay
	if practitionerID == uuid.Nil {
		return time.Time{}, zero, fmt.Errorf("%w: practitioner_id is required", ErrInvalidInput)
	}
	if patientID == uuid.Nil {
		return time.Time{}, zero, fmt.Errorf("%w: patient_id is required", ErrInvalidInput)
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, zero, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	start, err := timeslot.ParseTimeOfDay(startStr)
	if err != nil {
		return time.Time{}, zero, fmt.Errorf("%w: start_time %v", ErrInvalidInput, err)
	}
	if duration <= 0 || duration > timeslot.MinutesPerDay {
		return time.Time{}, zero, fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, timeslot.MinutesPerDay)
	}
	return date, start, nil
}

func (s *Service) checkParticipants(ctx context.Context, practitionerID, patientID uuid.UUID) error {
	ok, err := s.directory.PractitionerExists(ctx, practitionerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPractitionerNotFound
	}
	ok, err = s.directory.PatientExists(ctx, patientID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPatientNotFound
	}
	return nil
}

// checkCalendar runs the schedule-dependent checks in their fixed order:
// working day, day off, working hours, breaks, existing appointments.
// excludeID skips one appointment in the conflict scan (reschedules).
func (s *Service) checkCalendar(ctx context.Context, a *Appointment, excludeID uuid.UUID) error {
	working, ok, err := s.roster.WorkingInterval(ctx, a.PractitionerID, a.Date)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotWorkingDay
	}

	off, err := s.roster.IsDayOff(ctx, a.PractitionerID, a.Date)
	if err != nil {
		return err
	}
	if off {
		return ErrDayOff
	}

	requested := a.Interval()
	if requested.End > timeslot.MinutesPerDay || !working.Contains(requested) {
		return ErrOutsideHours
	}

	breaks, err := s.roster.BreaksFor(ctx, a.PractitionerID, a.Date)
	if err != nil {
		return err
	}
	for _, b := range breaks {
		if requested.Overlaps(b) {
			return ErrBreakConflict
		}
	}

	existing, err := s.appointments.ListOccupying(ctx, a.PractitionerID, a.Date)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.ID == excludeID {
			continue
		}
		if requested.Overlaps(e.Interval()) {
			return ErrDoubleBooked
		}
	}
	return nil
}

func (s *Service) occupiedIntervals(ctx context.Context, practitionerID uuid.UUID, date time.Time, excludeID uuid.UUID) ([]timeslot.Interval, error) {
	existing, err := s.appointments.ListOccupying(ctx, practitionerID, date)
	if err != nil {
		return nil, err
	}
	var occupied []timeslot.Interval
	for _, e := range existing {
		if e.ID == excludeID {
			continue
		}
		occupied = append(occupied, e.Interval())
	}
	breaks, err := s.roster.BreaksFor(ctx, practitionerID, date)
	if err != nil {
		return nil, err
	}
	occupied = append(occupied, breaks...)
	return occupied, nil
}

func lockKey(practitionerID uuid.UUID, date time.Time) string {
	return practitionerID.String() + "@" + date.Format("2006-01-02")
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
