package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

// CollectionPoint mirrors the 'collection_points' table. A point is a
// physical drop-off or pickup location referenced by collection schedules.
type CollectionPoint struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CollectionPointPatch carries optional partial-update fields.
type CollectionPointPatch struct {
	Name    *string
	Address *string
}

var ErrCollectionPointNotFound = errors.New("collection point not found")

type CollectionPointRepo struct {
	db    *sql.DB
	audit *AuditLogRepo
}

func NewCollectionPointRepo(db *sql.DB, audit *AuditLogRepo) *CollectionPointRepo {
	return &CollectionPointRepo{db: db, audit: audit}
}

// Create inserts a new collection point and re-reads the row so the
// server-assigned timestamps are returned to the caller.
func (r *CollectionPointRepo) Create(ctx context.Context, p *CollectionPoint) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO collection_points (name, address) VALUES (?, ?)", p.Name, p.Address)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	const q = "SELECT name, address, created_at, updated_at FROM collection_points WHERE id = ?"
	return r.db.QueryRowContext(ctx, q, p.ID).Scan(&p.Name, &p.Address, &p.CreatedAt, &p.UpdatedAt)
}

func (r *CollectionPointRepo) GetByID(ctx context.Context, id int64) (*CollectionPoint, error) {
	const q = "SELECT id, name, address, created_at, updated_at FROM collection_points WHERE id = ?"
	var p CollectionPoint
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.Address, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCollectionPointNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Exists reports whether a collection point row is present. Existence gate
// for schedule writes referencing this point.
func (r *CollectionPointRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return queryExists(ctx, r.db, "SELECT 1 FROM collection_points WHERE id = ? LIMIT 1", id)
}

func (r *CollectionPointRepo) List(ctx context.Context) ([]*CollectionPoint, error) {
	const q = "SELECT id, name, address, created_at, updated_at FROM collection_points ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*CollectionPoint
	for rows.Next() {
		p := new(CollectionPoint)
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies non-nil patch fields and returns the refreshed row.
func (r *CollectionPointRepo) Update(ctx context.Context, id int64, patch CollectionPointPatch) (*CollectionPoint, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *patch.Address)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	sets = append(sets, "updated_at = UTC_TIMESTAMP()")
	args = append(args, id)
	q := "UPDATE collection_points SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete writes the audit snapshot and removes the row in one transaction.
func (r *CollectionPointRepo) Delete(ctx context.Context, id int64) (err error) {
	p, err := r.GetByID(ctx, id)
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
	if err = r.audit.InsertTx(ctx, tx, "delete", "CollectionPoint", strconv.FormatInt(id, 10), p); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM collection_points WHERE id = ?", id)
	return err
}

func (r *CollectionPointRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM collection_points")
	return err
}
