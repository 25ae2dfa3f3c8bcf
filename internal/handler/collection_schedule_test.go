package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrack/waste-collection-api/internal/repository"
)

func newCollectionHandler(t *testing.T) (*CollectionHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	audit := repository.NewAuditLogRepo(db)
	return NewCollectionHandler(
		repository.NewWasteTypeRepo(db, audit),
		repository.NewCollectionPointRepo(db, audit),
		repository.NewCollectionScheduleRepo(db, audit),
		repository.NewCollectionRecordRepo(db, audit),
	), mock
}

func TestCreateCollectionSchedule(t *testing.T) {
	const body = `{"collection_point_id":2,"waste_type_id":1,"schedule":"weekly","start_date":"2026-01-01","end_date":"2026-06-30"}`

	t.Run("missing waste type yields not found", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectQuery(`SELECT 1 FROM waste_types WHERE id = \? LIMIT 1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}))

		rec := doJSON(t, h.CreateCollectionSchedule, http.MethodPost, "/collection-schedules", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "waste type not found")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing collection point yields not found", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectQuery(`SELECT 1 FROM waste_types WHERE id = \? LIMIT 1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		mock.ExpectQuery(`SELECT 1 FROM collection_points WHERE id = \? LIMIT 1`).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}))

		rec := doJSON(t, h.CreateCollectionSchedule, http.MethodPost, "/collection-schedules", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "collection point not found")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("valid references create the schedule", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectQuery(`SELECT 1 FROM waste_types WHERE id = \? LIMIT 1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		mock.ExpectQuery(`SELECT 1 FROM collection_points WHERE id = \? LIMIT 1`).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		mock.ExpectExec(`INSERT INTO collection_schedules`).
			WithArgs(int64(2), int64(1), "weekly", "2026-01-01", "2026-06-30").
			WillReturnResult(sqlmock.NewResult(9, 1))
		mock.ExpectQuery(`SELECT .* FROM collection_schedules WHERE id = \?`).
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "collection_point_id", "waste_type_id", "schedule", "start_date", "end_date", "created_at", "updated_at"}).
				AddRow(int64(9), int64(2), int64(1), "weekly", "2026-01-01", "2026-06-30", "2026-01-01 00:00:00", "2026-01-01 00:00:00"))

		rec := doJSON(t, h.CreateCollectionSchedule, http.MethodPost, "/collection-schedules", body)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":9`)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing required fields rejected", func(t *testing.T) {
		h, _ := newCollectionHandler(t)
		rec := doJSON(t, h.CreateCollectionSchedule, http.MethodPost, "/collection-schedules",
			`{"collection_point_id":2,"waste_type_id":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
