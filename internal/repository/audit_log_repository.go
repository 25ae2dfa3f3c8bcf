package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// LogEntry mirrors the 'logs' table. One row is appended for every audited
// delete, capturing a JSON snapshot of the removed row so it can be traced
// after the physical delete.
type LogEntry struct {
	ID         int64           `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Timestamp  time.Time       `json:"timestamp"`
	Data       json.RawMessage `json:"data"`
}

type AuditLogRepo struct{ DB *sql.DB }

func NewAuditLogRepo(db *sql.DB) *AuditLogRepo { return &AuditLogRepo{DB: db} }

// InsertTx appends a log row inside the caller's transaction so the
// snapshot and the delete commit or roll back together. The snapshot is
// marshalled to JSON here; callers pass the row struct as-is.
func (r *AuditLogRepo) InsertTx(ctx context.Context, tx *sql.Tx, action, entityType, entityID string, snapshot any) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO logs (action, entity_type, entity_id, timestamp, data) VALUES (?,?,?,UTC_TIMESTAMP(),?)",
		action, entityType, entityID, data)
	return err
}

// List returns all audit entries ordered newest first.
func (r *AuditLogRepo) List(ctx context.Context) ([]*LogEntry, error) {
	const q = "SELECT id, action, entity_type, entity_id, timestamp, data FROM logs ORDER BY id DESC"
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*LogEntry
	for rows.Next() {
		e := new(LogEntry)
		if err := rows.Scan(&e.ID, &e.Action, &e.EntityType, &e.EntityID, &e.Timestamp, &e.Data); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
