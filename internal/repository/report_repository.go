package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Report mirrors the 'reports' table: free-text report payloads produced by
// the recycling subsystem with a type tag and a point in time.
type Report struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Time time.Time `json:"time"`
	Data string    `json:"data"`
}

// ReportPatch carries optional partial-update fields.
type ReportPatch struct {
	Type *string
	Time *time.Time
	Data *string
}

var ErrReportNotFound = errors.New("report not found")

type ReportRepo struct{ db *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// Create inserts a report under a fresh UUID and fills it into rep.
func (r *ReportRepo) Create(ctx context.Context, rep *Report) error {
	rep.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO reports (id, type, time, data) VALUES (?,?,?,?)",
		rep.ID, rep.Type, rep.Time, rep.Data)
	return err
}

func (r *ReportRepo) GetByID(ctx context.Context, id string) (*Report, error) {
	const q = "SELECT id, type, time, data FROM reports WHERE id = ?"
	var rep Report
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rep.ID, &rep.Type, &rep.Time, &rep.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepo) List(ctx context.Context) ([]*Report, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, type, time, data FROM reports ORDER BY time")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Report
	for rows.Next() {
		rep := new(Report)
		if err := rows.Scan(&rep.ID, &rep.Type, &rep.Time, &rep.Data); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies non-nil patch fields and returns the refreshed row.
func (r *ReportRepo) Update(ctx context.Context, id string, patch ReportPatch) (*Report, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if patch.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *patch.Type)
	}
	if patch.Time != nil {
		sets = append(sets, "time = ?")
		args = append(args, *patch.Time)
	}
	if patch.Data != nil {
		sets = append(sets, "data = ?")
		args = append(args, *patch.Data)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	q := "UPDATE reports SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a report and returns the removed row.
func (r *ReportRepo) Delete(ctx context.Context, id string) (*Report, error) {
	rep, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id); err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *ReportRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM reports")
	return err
}
