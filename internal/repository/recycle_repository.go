package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recycle mirrors the 'recycle' table: one log entry per recycled batch,
// attached to a schedule in the recycling subsystem.
type Recycle struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Quantity   float64   `json:"quantity"`
	Date       time.Time `json:"date"`
	ScheduleID string    `json:"schedule_id"`
}

// RecyclePatch carries optional partial-update fields.
type RecyclePatch struct {
	Type       *string
	Quantity   *float64
	Date       *time.Time
	ScheduleID *string
}

var ErrRecycleNotFound = errors.New("recycling log not found")

type RecycleRepo struct{ db *sql.DB }

func NewRecycleRepo(db *sql.DB) *RecycleRepo { return &RecycleRepo{db: db} }

const recycleCols = "id, type, quantity, date, schedule_id"

// Create inserts a recycle log under a fresh UUID and fills it into rec.
func (r *RecycleRepo) Create(ctx context.Context, rec *Recycle) error {
	rec.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO recycle (id, type, quantity, date, schedule_id) VALUES (?,?,?,?,?)",
		rec.ID, rec.Type, rec.Quantity, rec.Date, rec.ScheduleID)
	return err
}

func (r *RecycleRepo) GetByID(ctx context.Context, id string) (*Recycle, error) {
	q := "SELECT " + recycleCols + " FROM recycle WHERE id = ?"
	var rec Recycle
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rec.ID, &rec.Type, &rec.Quantity, &rec.Date, &rec.ScheduleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecycleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecycleRepo) List(ctx context.Context) ([]*Recycle, error) {
	return r.list(ctx, "SELECT "+recycleCols+" FROM recycle ORDER BY date")
}

// ListPage returns one offset/limit page; see ScheduleRepo.ListPage for the
// count staleness trade-off.
func (r *RecycleRepo) ListPage(ctx context.Context, skip, limit int) ([]*Recycle, error) {
	return r.list(ctx, "SELECT "+recycleCols+" FROM recycle ORDER BY date LIMIT ? OFFSET ?", limit, skip)
}

// Count returns the full-table row count.
func (r *RecycleRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM recycle").Scan(&n)
	return n, err
}

func (r *RecycleRepo) list(ctx context.Context, q string, args ...any) ([]*Recycle, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Recycle
	for rows.Next() {
		rec := new(Recycle)
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.Quantity, &rec.Date, &rec.ScheduleID); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies non-nil patch fields and returns the refreshed row.
func (r *RecycleRepo) Update(ctx context.Context, id string, patch RecyclePatch) (*Recycle, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if patch.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *patch.Type)
	}
	if patch.Quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *patch.Quantity)
	}
	if patch.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *patch.Date)
	}
	if patch.ScheduleID != nil {
		sets = append(sets, "schedule_id = ?")
		args = append(args, *patch.ScheduleID)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	q := "UPDATE recycle SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a recycle log and returns the removed row.
func (r *RecycleRepo) Delete(ctx context.Context, id string) (*Recycle, error) {
	rec, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM recycle WHERE id = ?", id); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *RecycleRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM recycle")
	return err
}
