package roster

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicbook/clinicbook/internal/platform/db"
	"github.com/clinicbook/clinicbook/internal/timeslot"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Schedule Repository ===========

type scheduleRepoPG struct{ pool *pgxpool.Pool }

func NewScheduleRepoPG(pool *pgxpool.Pool) ScheduleRepository { return &scheduleRepoPG{pool: pool} }

func (r *scheduleRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// Working hours are stored as minute offsets so that range comparisons stay
// plain integer arithmetic in SQL.
const schedCols = `id, practitioner_id, weekday, start_min, end_min, created_at, updated_at`

func (r *scheduleRepoPG) scanSchedule(row pgx.Row) (*WeeklySchedule, error) {
	var w WeeklySchedule
	var startMin, endMin int
	err := row.Scan(&w.ID, &w.PractitionerID, &w.Weekday, &startMin, &endMin, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if w.StartTime, err = timeslot.FromMinutes(startMin); err != nil {
		return nil, err
	}
	if w.EndTime, err = timeslot.FromMinutes(endMin); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *scheduleRepoPG) Upsert(ctx context.Context, w *WeeklySchedule) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO weekly_schedule (id, practitioner_id, weekday, start_min, end_min)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (practitioner_id, weekday)
		DO UPDATE SET start_min = EXCLUDED.start_min, end_min = EXCLUDED.end_min, updated_at = NOW()`,
		w.ID, w.PractitionerID, w.Weekday, w.StartTime.Minutes(), w.EndTime.Minutes())
	return err
}

func (r *scheduleRepoPG) GetByPractitionerDay(ctx context.Context, practitionerID uuid.UUID, weekday int) (*WeeklySchedule, error) {
	w, err := r.scanSchedule(r.conn(ctx).QueryRow(ctx,
		`SELECT `+schedCols+` FROM weekly_schedule WHERE practitioner_id = $1 AND weekday = $2`,
		practitionerID, weekday))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return w, err
}

func (r *scheduleRepoPG) ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*WeeklySchedule, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+schedCols+` FROM weekly_schedule WHERE practitioner_id = $1 ORDER BY weekday`,
		practitionerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*WeeklySchedule
	for rows.Next() {
		w, err := r.scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

func (r *scheduleRepoPG) Delete(ctx context.Context, practitionerID uuid.UUID, weekday int) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM weekly_schedule WHERE practitioner_id = $1 AND weekday = $2`,
		practitionerID, weekday)
	return err
}

// =========== DayOff Repository ===========

type dayOffRepoPG struct{ pool *pgxpool.Pool }

func NewDayOffRepoPG(pool *pgxpool.Pool) DayOffRepository { return &dayOffRepoPG{pool: pool} }

func (r *dayOffRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const dayOffCols = `id, practitioner_id, date, reason, created_at`

func (r *dayOffRepoPG) scanDayOff(row pgx.Row) (*DayOff, error) {
	var d DayOff
	err := row.Scan(&d.ID, &d.PractitionerID, &d.Date, &d.Reason, &d.CreatedAt)
	return &d, err
}

func (r *dayOffRepoPG) Create(ctx context.Context, d *DayOff) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO day_off (id, practitioner_id, date, reason)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (practitioner_id, date) DO NOTHING`,
		d.ID, d.PractitionerID, d.Date, d.Reason)
	return err
}

func (r *dayOffRepoPG) Exists(ctx context.Context, practitionerID uuid.UUID, date time.Time) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM day_off WHERE practitioner_id = $1 AND date = $2)`,
		practitionerID, date).Scan(&exists)
	return exists, err
}

func (r *dayOffRepoPG) ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*DayOff, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+dayOffCols+` FROM day_off WHERE practitioner_id = $1 ORDER BY date`,
		practitionerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*DayOff
	for rows.Next() {
		d, err := r.scanDayOff(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *dayOffRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM day_off WHERE id = $1`, id)
	return err
}

// =========== Break Repository ===========

type breakRepoPG struct{ pool *pgxpool.Pool }

func NewBreakRepoPG(pool *pgxpool.Pool) BreakRepository { return &breakRepoPG{pool: pool} }

func (r *breakRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const breakCols = `id, practitioner_id, start_at, end_at, reason, created_at`

func (r *breakRepoPG) scanBreak(row pgx.Row) (*Break, error) {
	var b Break
	err := row.Scan(&b.ID, &b.PractitionerID, &b.StartAt, &b.EndAt, &b.Reason, &b.CreatedAt)
	return &b, err
}

func (r *breakRepoPG) Create(ctx context.Context, b *Break) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO break (id, practitioner_id, start_at, end_at, reason)
		VALUES ($1,$2,$3,$4,$5)`,
		b.ID, b.PractitionerID, b.StartAt, b.EndAt, b.Reason)
	return err
}

func (r *breakRepoPG) ListTouchingDate(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]*Break, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+breakCols+` FROM break
		 WHERE practitioner_id = $1 AND start_at < $3 AND end_at > $2
		 ORDER BY start_at`,
		practitionerID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Break
	for rows.Next() {
		b, err := r.scanBreak(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *breakRepoPG) ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*Break, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+breakCols+` FROM break WHERE practitioner_id = $1 ORDER BY start_at`,
		practitionerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Break
	for rows.Next() {
		b, err := r.scanBreak(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *breakRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM break WHERE id = $1`, id)
	return err
}
