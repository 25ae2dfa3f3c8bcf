package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

// CollectionRecord mirrors the 'collection_records' table. One row per
// completed pickup: what schedule it belonged to, when it ran, how much was
// collected and which share of it was recycled.
type CollectionRecord struct {
	ID                   int64   `json:"id"`
	CollectionScheduleID int64   `json:"collection_schedule_id"`
	CollectionDate       string  `json:"collection_date"`
	QuantityCollected    int64   `json:"quantity_collected"`
	RecycleRate          float64 `json:"recycle_rate"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

// CollectionRecordPatch carries optional partial-update fields.
type CollectionRecordPatch struct {
	CollectionScheduleID *int64
	CollectionDate       *string
	QuantityCollected    *int64
	RecycleRate          *float64
}

var ErrCollectionRecordNotFound = errors.New("collection record not found")

type CollectionRecordRepo struct {
	db    *sql.DB
	audit *AuditLogRepo
}

func NewCollectionRecordRepo(db *sql.DB, audit *AuditLogRepo) *CollectionRecordRepo {
	return &CollectionRecordRepo{db: db, audit: audit}
}

const collectionRecordCols = "id, collection_schedule_id, collection_date, quantity_collected, recycle_rate, created_at, updated_at"

// Create inserts a new record and re-reads the row for timestamps.
func (r *CollectionRecordRepo) Create(ctx context.Context, rec *CollectionRecord) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO collection_records (collection_schedule_id, collection_date, quantity_collected, recycle_rate) VALUES (?,?,?,?)",
		rec.CollectionScheduleID, rec.CollectionDate, rec.QuantityCollected, rec.RecycleRate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*rec = *got
	return nil
}

func (r *CollectionRecordRepo) GetByID(ctx context.Context, id int64) (*CollectionRecord, error) {
	q := "SELECT " + collectionRecordCols + " FROM collection_records WHERE id = ?"
	var rec CollectionRecord
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rec.ID, &rec.CollectionScheduleID, &rec.CollectionDate, &rec.QuantityCollected, &rec.RecycleRate, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCollectionRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *CollectionRecordRepo) List(ctx context.Context) ([]*CollectionRecord, error) {
	q := "SELECT " + collectionRecordCols + " FROM collection_records ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*CollectionRecord
	for rows.Next() {
		rec := new(CollectionRecord)
		if err := rows.Scan(&rec.ID, &rec.CollectionScheduleID, &rec.CollectionDate, &rec.QuantityCollected, &rec.RecycleRate, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
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
func (r *CollectionRecordRepo) Update(ctx context.Context, id int64, patch CollectionRecordPatch) (*CollectionRecord, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if patch.CollectionScheduleID != nil {
		sets = append(sets, "collection_schedule_id = ?")
		args = append(args, *patch.CollectionScheduleID)
	}
	if patch.CollectionDate != nil {
		sets = append(sets, "collection_date = ?")
		args = append(args, *patch.CollectionDate)
	}
	if patch.QuantityCollected != nil {
		sets = append(sets, "quantity_collected = ?")
		args = append(args, *patch.QuantityCollected)
	}
	if patch.RecycleRate != nil {
		sets = append(sets, "recycle_rate = ?")
		args = append(args, *patch.RecycleRate)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	sets = append(sets, "updated_at = UTC_TIMESTAMP()")
	args = append(args, id)
	q := "UPDATE collection_records SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete writes the audit snapshot and removes the row in one transaction.
func (r *CollectionRecordRepo) Delete(ctx context.Context, id int64) (err error) {
	rec, err := r.GetByID(ctx, id)
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
	if err = r.audit.InsertTx(ctx, tx, "delete", "CollectionRecord", strconv.FormatInt(id, 10), rec); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM collection_records WHERE id = ?", id)
	return err
}

func (r *CollectionRecordRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM collection_records")
	return err
}
