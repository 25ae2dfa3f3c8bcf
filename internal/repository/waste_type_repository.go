// This file defines the WasteType model and repository methods for CRUD and
// lookup operations. A waste type categorizes collected material (plastic,
// glass, organic, ...) and is referenced by collection schedules, so other
// repositories consult Exists before writing rows that point at it.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values
	"strconv"
	"strings"
)

// WasteType represents a waste category persisted in the database. The ID
// field is the primary key and is auto-incremented by the DB. Code is the
// optional numeric identifier used on collection labels.
type WasteType struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      *int64 `json:"code"`
	CreatedAt string `json:"created_at"`
}

// WasteTypePatch carries the optional fields of a partial update; nil means
// "leave unchanged".
type WasteTypePatch struct {
	Name *string
	Code *int64
}

// ErrWasteTypeNotFound is returned when a waste type cannot be found in the DB.
var ErrWasteTypeNotFound = errors.New("waste type not found")

// WasteTypeRepo encapsulates all database queries related to waste types.
// It depends on a sql.DB connection which should be configured elsewhere.
type WasteTypeRepo struct {
	db    *sql.DB
	audit *AuditLogRepo
}

// NewWasteTypeRepo constructs a WasteTypeRepo with the provided DB handle
// and audit writer. This function allows dependency injection of the
// database in tests and at startup.
func NewWasteTypeRepo(db *sql.DB, audit *AuditLogRepo) *WasteTypeRepo {
	return &WasteTypeRepo{db: db, audit: audit}
}

// Create inserts a new waste type. On success the ID field is populated with
// the auto-generated value and a follow-up SELECT fills the server-assigned
// creation timestamp so callers receive a fully populated record.
func (r *WasteTypeRepo) Create(ctx context.Context, w *WasteType) error {
	const qInsert = "INSERT INTO waste_types (name, code) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, w.Name, w.Code)
	if err != nil {
		return err // propagate DB errors to the caller
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.ID = id

	const qSelect = "SELECT name, code, created_at FROM waste_types WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, w.ID).Scan(&w.Name, &w.Code, &w.CreatedAt)
}

// GetByID fetches a waste type by its ID. It returns ErrWasteTypeNotFound
// if no row is found.
func (r *WasteTypeRepo) GetByID(ctx context.Context, id int64) (*WasteType, error) {
	const q = "SELECT id, name, code, created_at FROM waste_types WHERE id = ?"
	var w WasteType
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&w.ID, &w.Name, &w.Code, &w.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWasteTypeNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Exists reports whether a waste type row with the given id is present.
// Used as the existence gate before creating or updating schedules that
// reference this waste type.
func (r *WasteTypeRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return queryExists(ctx, r.db, "SELECT 1 FROM waste_types WHERE id = ? LIMIT 1", id)
}

// List returns all waste types ordered by id.
func (r *WasteTypeRepo) List(ctx context.Context) ([]*WasteType, error) {
	const q = "SELECT id, name, code, created_at FROM waste_types ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*WasteType
	for rows.Next() {
		w := new(WasteType)
		if err := rows.Scan(&w.ID, &w.Name, &w.Code, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the non-nil patch fields and returns the refreshed row.
// It returns ErrWasteTypeNotFound when the target row is absent.
func (r *WasteTypeRepo) Update(ctx context.Context, id int64, p WasteTypePatch) (*WasteType, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Code != nil {
		sets = append(sets, "code = ?")
		args = append(args, *p.Code)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	q := "UPDATE waste_types SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a waste type after writing an audit log entry capturing
// the row's field snapshot. Snapshot insert and delete share one
// transaction so the log never refers to a row that was not removed.
func (r *WasteTypeRepo) Delete(ctx context.Context, id int64) (err error) {
	w, err := r.GetByID(ctx, id)
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
	if err = r.audit.InsertTx(ctx, tx, "delete", "WasteType", strconv.FormatInt(id, 10), w); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM waste_types WHERE id = ?", id)
	return err
}

// DeleteAll wipes the table without existence checks or audit entries.
func (r *WasteTypeRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM waste_types")
	return err
}
