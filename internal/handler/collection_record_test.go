package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "collection_schedule_id", "collection_date", "quantity_collected", "recycle_rate", "created_at", "updated_at",
	}).AddRow(id, int64(3), "2026-02-01", int64(120), 0.4, "2026-02-01 08:00:00", "2026-02-01 08:00:00")
}

func TestCreateCollectionRecord(t *testing.T) {
	const body = `{"collection_schedule_id":3,"collection_date":"2026-02-01","quantity_collected":120,"recycle_rate":0.4}`

	t.Run("missing schedule yields not found", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectQuery(`SELECT 1 FROM collection_schedules WHERE id = \? LIMIT 1`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}))

		rec := doJSON(t, h.CreateCollectionRecord, http.MethodPost, "/collection-records", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "collection schedule not found")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing schedule creates the record", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectQuery(`SELECT 1 FROM collection_schedules WHERE id = \? LIMIT 1`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		mock.ExpectExec(`INSERT INTO collection_records`).
			WithArgs(int64(3), "2026-02-01", int64(120), 0.4).
			WillReturnResult(sqlmock.NewResult(7, 1))
		mock.ExpectQuery(`SELECT .* FROM collection_records WHERE id = \?`).
			WithArgs(int64(7)).
			WillReturnRows(recordRow(7))

		rec := doJSON(t, h.CreateCollectionRecord, http.MethodPost, "/collection-records", body)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":7`)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing collection_date rejected", func(t *testing.T) {
		h, _ := newCollectionHandler(t)
		rec := doJSON(t, h.CreateCollectionRecord, http.MethodPost, "/collection-records",
			`{"collection_schedule_id":3}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetCollectionRecord(t *testing.T) {
	t.Run("record whose schedule vanished yields not found", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectQuery(`SELECT .* FROM collection_records WHERE id = \?`).
			WithArgs(int64(7)).
			WillReturnRows(recordRow(7))
		mock.ExpectQuery(`SELECT 1 FROM collection_schedules WHERE id = \? LIMIT 1`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}))

		rec := doJSONWithID(t, h.GetCollectionRecord, http.MethodGet, "/collection-records/7", "7", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "collection schedule not found")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("intact reference returns the record", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectQuery(`SELECT .* FROM collection_records WHERE id = \?`).
			WithArgs(int64(7)).
			WillReturnRows(recordRow(7))
		mock.ExpectQuery(`SELECT 1 FROM collection_schedules WHERE id = \? LIMIT 1`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

		rec := doJSONWithID(t, h.GetCollectionRecord, http.MethodGet, "/collection-records/7", "7", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":7`)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateCollectionRecord(t *testing.T) {
	t.Run("repointing to a missing schedule yields not found", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectQuery(`SELECT .* FROM collection_records WHERE id = \?`).
			WithArgs(int64(7)).
			WillReturnRows(recordRow(7))
		mock.ExpectQuery(`SELECT 1 FROM collection_schedules WHERE id = \? LIMIT 1`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}))

		rec := doJSONWithID(t, h.UpdateCollectionRecord, http.MethodPut, "/collection-records/7", "7",
			`{"collection_schedule_id":99}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "collection schedule not found")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("patch without schedule keeps the current reference", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectQuery(`SELECT .* FROM collection_records WHERE id = \?`).
			WithArgs(int64(7)).
			WillReturnRows(recordRow(7))
		mock.ExpectQuery(`SELECT 1 FROM collection_schedules WHERE id = \? LIMIT 1`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		mock.ExpectQuery(`SELECT .* FROM collection_records WHERE id = \?`).
			WithArgs(int64(7)).
			WillReturnRows(recordRow(7))
		mock.ExpectExec(`UPDATE collection_records SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT .* FROM collection_records WHERE id = \?`).
			WithArgs(int64(7)).
			WillReturnRows(recordRow(7))

		rec := doJSONWithID(t, h.UpdateCollectionRecord, http.MethodPut, "/collection-records/7", "7",
			`{"quantity_collected":200}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
