package handler

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCollectionPoint(t *testing.T) {
	t.Run("valid body creates the point", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectExec(`INSERT INTO collection_points`).
			WithArgs("Depot North", "12 Recycling Way").
			WillReturnResult(sqlmock.NewResult(4, 1))
		mock.ExpectQuery(`SELECT name, address, created_at, updated_at FROM collection_points WHERE id = \?`).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"name", "address", "created_at", "updated_at"}).
				AddRow("Depot North", "12 Recycling Way", "2026-01-02 10:00:00", "2026-01-02 10:00:00"))

		rec := doJSON(t, h.CreateCollectionPoint, http.MethodPost, "/collection-points",
			`{"name":"Depot North","address":"12 Recycling Way"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":4`)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blank name rejected", func(t *testing.T) {
		h, _ := newCollectionHandler(t)
		rec := doJSON(t, h.CreateCollectionPoint, http.MethodPost, "/collection-points",
			`{"name":"  ","address":"12 Recycling Way"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetCollectionPoint(t *testing.T) {
	t.Run("missing row yields not found", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectQuery(`SELECT id, name, address, created_at, updated_at FROM collection_points WHERE id = \?`).
			WithArgs(int64(42)).
			WillReturnError(sql.ErrNoRows)

		rec := doJSONWithID(t, h.GetCollectionPoint, http.MethodGet, "/collection-points/42", "42", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "collection point not found")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing row is returned", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectQuery(`SELECT id, name, address, created_at, updated_at FROM collection_points WHERE id = \?`).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "created_at", "updated_at"}).
				AddRow(int64(4), "Depot North", "12 Recycling Way", "2026-01-02 10:00:00", "2026-01-02 10:00:00"))

		rec := doJSONWithID(t, h.GetCollectionPoint, http.MethodGet, "/collection-points/4", "4", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Depot North")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
