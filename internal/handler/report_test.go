package handler

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReport(t *testing.T) {
	t.Run("valid body creates the report", func(t *testing.T) {
		h, mock := newRecyclingHandler(t)
		mock.ExpectExec(`INSERT INTO reports`).
			WithArgs(sqlmock.AnyArg(), "monthly", sqlmock.AnyArg(), "tonnage up 4%").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rec := doJSON(t, h.CreateReport, http.MethodPost, "/reports",
			`{"type":"monthly","time":"2026-02-01T00:00:00Z","data":"tonnage up 4%"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "monthly")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing type rejected", func(t *testing.T) {
		h, _ := newRecyclingHandler(t)
		rec := doJSON(t, h.CreateReport, http.MethodPost, "/reports",
			`{"time":"2026-02-01T00:00:00Z"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("zero time rejected", func(t *testing.T) {
		h, _ := newRecyclingHandler(t)
		rec := doJSON(t, h.CreateReport, http.MethodPost, "/reports", `{"type":"monthly"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetReport(t *testing.T) {
	t.Run("missing report yields not found", func(t *testing.T) {
		h, mock := newRecyclingHandler(t)
		mock.ExpectQuery(`SELECT id, type, time, data FROM reports WHERE id = \?`).
			WithArgs("r-404").
			WillReturnError(sql.ErrNoRows)

		rec := doJSONWithID(t, h.GetReport, http.MethodGet, "/reports/r-404", "r-404", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "report not found")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing report is returned", func(t *testing.T) {
		h, mock := newRecyclingHandler(t)
		when := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT id, type, time, data FROM reports WHERE id = \?`).
			WithArgs("r-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "type", "time", "data"}).
				AddRow("r-1", "monthly", when, "tonnage up 4%"))

		rec := doJSONWithID(t, h.GetReport, http.MethodGet, "/reports/r-1", "r-1", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"r-1"`)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteReport(t *testing.T) {
	t.Run("delete echoes the removed row", func(t *testing.T) {
		h, mock := newRecyclingHandler(t)
		when := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT id, type, time, data FROM reports WHERE id = \?`).
			WithArgs("r-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "type", "time", "data"}).
				AddRow("r-1", "monthly", when, "tonnage up 4%"))
		mock.ExpectExec(`DELETE FROM reports WHERE id = \?`).
			WithArgs("r-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rec := doJSONWithID(t, h.DeleteReport, http.MethodDelete, "/reports/r-1", "r-1", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "monthly")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
