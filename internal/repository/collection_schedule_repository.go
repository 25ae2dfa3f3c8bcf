package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

// CollectionSchedule mirrors the 'collection_schedules' table. It ties a
// collection point to a waste type with a recurrence descriptor and a date
// range. Both referenced rows must exist whenever a schedule is written;
// the handlers enforce that through the point and waste type Exists gates.
type CollectionSchedule struct {
	ID                int64  `json:"id"`
	CollectionPointID int64  `json:"collection_point_id"`
	WasteTypeID       int64  `json:"waste_type_id"`
	Schedule          string `json:"schedule"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// CollectionSchedulePatch carries optional partial-update fields.
type CollectionSchedulePatch struct {
	CollectionPointID *int64
	WasteTypeID       *int64
	Schedule          *string
	StartDate         *string
	EndDate           *string
}

var ErrCollectionScheduleNotFound = errors.New("collection schedule not found")

type CollectionScheduleRepo struct {
	db    *sql.DB
	audit *AuditLogRepo
}

func NewCollectionScheduleRepo(db *sql.DB, audit *AuditLogRepo) *CollectionScheduleRepo {
	return &CollectionScheduleRepo{db: db, audit: audit}
}

const collectionScheduleCols = "id, collection_point_id, waste_type_id, schedule, start_date, end_date, created_at, updated_at"

// Create inserts a new schedule and re-reads the row for timestamps.
func (r *CollectionScheduleRepo) Create(ctx context.Context, s *CollectionSchedule) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO collection_schedules (collection_point_id, waste_type_id, schedule, start_date, end_date) VALUES (?,?,?,?,?)",
		s.CollectionPointID, s.WasteTypeID, s.Schedule, s.StartDate, s.EndDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	got, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*s = *got
	return nil
}

func (r *CollectionScheduleRepo) GetByID(ctx context.Context, id int64) (*CollectionSchedule, error) {
	q := "SELECT " + collectionScheduleCols + " FROM collection_schedules WHERE id = ?"
	var s CollectionSchedule
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.CollectionPointID, &s.WasteTypeID, &s.Schedule, &s.StartDate, &s.EndDate, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCollectionScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Exists reports whether a schedule row is present. Existence gate for
// collection records referencing this schedule.
func (r *CollectionScheduleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return queryExists(ctx, r.db, "SELECT 1 FROM collection_schedules WHERE id = ? LIMIT 1", id)
}

func (r *CollectionScheduleRepo) List(ctx context.Context) ([]*CollectionSchedule, error) {
	q := "SELECT " + collectionScheduleCols + " FROM collection_schedules ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*CollectionSchedule
	for rows.Next() {
		s := new(CollectionSchedule)
		if err := rows.Scan(&s.ID, &s.CollectionPointID, &s.WasteTypeID, &s.Schedule, &s.StartDate, &s.EndDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
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
func (r *CollectionScheduleRepo) Update(ctx context.Context, id int64, patch CollectionSchedulePatch) (*CollectionSchedule, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if patch.CollectionPointID != nil {
		sets = append(sets, "collection_point_id = ?")
		args = append(args, *patch.CollectionPointID)
	}
	if patch.WasteTypeID != nil {
		sets = append(sets, "waste_type_id = ?")
		args = append(args, *patch.WasteTypeID)
	}
	if patch.Schedule != nil {
		sets = append(sets, "schedule = ?")
		args = append(args, *patch.Schedule)
	}
	if patch.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, *patch.StartDate)
	}
	if patch.EndDate != nil {
		sets = append(sets, "end_date = ?")
		args = append(args, *patch.EndDate)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	sets = append(sets, "updated_at = UTC_TIMESTAMP()")
	args = append(args, id)
	q := "UPDATE collection_schedules SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete writes the audit snapshot and removes the row in one transaction.
func (r *CollectionScheduleRepo) Delete(ctx context.Context, id int64) (err error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if err = r.audit.InsertTx(ctx, tx, "delete", "CollectionSchedule", strconv.FormatInt(id, 10), s); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM collection_schedules WHERE id = ?", id)
	return err
}

func (r *CollectionScheduleRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM collection_schedules")
	return err
}
