package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSONWithID(t *testing.T, h echo.HandlerFunc, method, path, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h(c))
	return rec
}

func TestCreateWasteType(t *testing.T) {
	t.Run("valid body creates the type", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectExec(`INSERT INTO waste_types`).
			WithArgs("Plastic", int64(1)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery(`SELECT name, code, created_at FROM waste_types WHERE id = \?`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"name", "code", "created_at"}).
				AddRow("Plastic", int64(1), "2026-01-02 10:00:00"))

		rec := doJSON(t, h.CreateWasteType, http.MethodPost, "/waste-types", `{"name":"Plastic","code":1}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":1`)
		assert.Contains(t, rec.Body.String(), `"name":"Plastic"`)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blank name rejected", func(t *testing.T) {
		h, _ := newCollectionHandler(t)
		rec := doJSON(t, h.CreateWasteType, http.MethodPost, "/waste-types", `{"name":"  "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateWasteType(t *testing.T) {
	t.Run("omitted fields stay untouched", func(t *testing.T) {
		h, mock := newCollectionHandler(t)
		mock.ExpectQuery(`SELECT id, name, code, created_at FROM waste_types WHERE id = \?`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "created_at"}).
				AddRow(int64(3), "Glass", int64(2), "2026-01-02 10:00:00"))
		mock.ExpectExec(`UPDATE waste_types SET name = \? WHERE id = \?`).
			WithArgs("Clear glass", int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT id, name, code, created_at FROM waste_types WHERE id = \?`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "created_at"}).
				AddRow(int64(3), "Clear glass", int64(2), "2026-01-02 10:00:00"))

		rec := doJSONWithID(t, h.UpdateWasteType, http.MethodPut, "/waste-types/3", "3", `{"name":"Clear glass"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":2`)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("explicit empty name rejected", func(t *testing.T) {
		h, _ := newCollectionHandler(t)
		rec := doJSONWithID(t, h.UpdateWasteType, http.MethodPut, "/waste-types/3", "3", `{"name":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-numeric id rejected", func(t *testing.T) {
		h, _ := newCollectionHandler(t)
		rec := doJSONWithID(t, h.UpdateWasteType, http.MethodPut, "/waste-types/abc", "abc", `{"name":"Glass"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
