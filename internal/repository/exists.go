package repository

// exists.go implements the entity-existence gate shared by the
// repositories. Every write that references another entity (a collection
// schedule pointing at a waste type, a recycle log pointing at a schedule)
// first asks the referenced repository whether the row is present, so a
// dangling foreign key surfaces as a not-found error instead of a database
// constraint violation.

import (
	"context"
	"database/sql"
	"errors"
)

// queryExists runs a `SELECT 1 ... LIMIT 1` style query and reports whether
// at least one row matched. The query string is always a compile-time
// constant at the call site; only values travel as placeholders.
func queryExists(ctx context.Context, db *sql.DB, query string, args ...any) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
