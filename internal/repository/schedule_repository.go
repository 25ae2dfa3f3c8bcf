package repository

// The recycling subsystem keeps its own schedule table, separate from
// collection_schedules: a simple day/time/frequency tuple keyed by UUID
// that recycle log entries reference.

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Schedule mirrors the 'schedules' table.
type Schedule struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"`
	Time      time.Time `json:"time"`
	Frequency string    `json:"frequency"`
}

// SchedulePatch carries optional partial-update fields.
type SchedulePatch struct {
	Day       *string
	Time      *time.Time
	Frequency *string
}

var ErrScheduleNotFound = errors.New("schedule not found")

type ScheduleRepo struct{ db *sql.DB }

func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

// Create inserts a schedule under a fresh UUID and fills it into s.
func (r *ScheduleRepo) Create(ctx context.Context, s *Schedule) error {
	s.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO schedules (id, day, time, frequency) VALUES (?,?,?,?)",
		s.ID, s.Day, s.Time, s.Frequency)
	return err
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id string) (*Schedule, error) {
	const q = "SELECT id, day, time, frequency FROM schedules WHERE id = ?"
	var s Schedule
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Day, &s.Time, &s.Frequency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Exists reports whether a schedule row is present. Existence gate for
// recycle log writes referencing this schedule.
func (r *ScheduleRepo) Exists(ctx context.Context, id string) (bool, error) {
	return queryExists(ctx, r.db, "SELECT 1 FROM schedules WHERE id = ? LIMIT 1", id)
}

func (r *ScheduleRepo) List(ctx context.Context) ([]*Schedule, error) {
	return r.list(ctx, "SELECT id, day, time, frequency FROM schedules ORDER BY day, time")
}

// ListPage returns one offset/limit page. The accompanying Count runs as a
// separate statement, so the total can lag the page under concurrent
// writes; accepted for this table's write volume.
func (r *ScheduleRepo) ListPage(ctx context.Context, skip, limit int) ([]*Schedule, error) {
	return r.list(ctx, "SELECT id, day, time, frequency FROM schedules ORDER BY day, time LIMIT ? OFFSET ?", limit, skip)
}

// Count returns the full-table row count.
func (r *ScheduleRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schedules").Scan(&n)
	return n, err
}

func (r *ScheduleRepo) list(ctx context.Context, q string, args ...any) ([]*Schedule, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Schedule
	for rows.Next() {
		s := new(Schedule)
		if err := rows.Scan(&s.ID, &s.Day, &s.Time, &s.Frequency); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies non-nil patch fields and returns the refreshed row.
func (r *ScheduleRepo) Update(ctx context.Context, id string, patch SchedulePatch) (*Schedule, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if patch.Day != nil {
		sets = append(sets, "day = ?")
		args = append(args, *patch.Day)
	}
	if patch.Time != nil {
		sets = append(sets, "time = ?")
		args = append(args, *patch.Time)
	}
	if patch.Frequency != nil {
		sets = append(sets, "frequency = ?")
		args = append(args, *patch.Frequency)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	q := "UPDATE schedules SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a schedule and returns the removed row, mirroring the
// subsystem's convention of echoing deleted entities in the response.
func (r *ScheduleRepo) Delete(ctx context.Context, id string) (*Schedule, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM schedules WHERE id = ?", id); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ScheduleRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM schedules")
	return err
}
