package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogRepoList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepo(db)

	at := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, action, entity_type, entity_id, timestamp, data FROM logs ORDER BY id DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "entity_type", "entity_id", "timestamp", "data"}).
			AddRow(int64(2), "delete", "CollectionPoint", "4", at, []byte(`{"id":4,"name":"Depot"}`)).
			AddRow(int64(1), "delete", "WasteType", "7", at, []byte(`{"id":7,"name":"Plastic"}`)))

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "CollectionPoint", entries[0].EntityType)
	assert.JSONEq(t, `{"id":7,"name":"Plastic"}`, string(entries[1].Data))

	require.NoError(t, mock.ExpectationsWereMet())
}
