package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestWasteTypeRepo(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWasteTypeRepo(db, NewAuditLogRepo(db))
	ctx := context.Background()

	t.Run("Create fills generated id and timestamp", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO waste_types`).
			WithArgs("Plastic", int64(1)).
			WillReturnResult(sqlmock.NewResult(7, 1))
		mock.ExpectQuery(`SELECT name, code, created_at FROM waste_types WHERE id = \?`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"name", "code", "created_at"}).
				AddRow("Plastic", int64(1), "2026-01-02 10:00:00"))

		code := int64(1)
		w := &WasteType{Name: "Plastic", Code: &code}
		require.NoError(t, repo.Create(ctx, w))
		assert.Equal(t, int64(7), w.ID)
		assert.Equal(t, "2026-01-02 10:00:00", w.CreatedAt)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetByID missing row maps to sentinel", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, code, created_at FROM waste_types WHERE id = \?`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 99)
		assert.True(t, errors.Is(err, ErrWasteTypeNotFound))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Exists", func(t *testing.T) {
		mock.ExpectQuery(`SELECT 1 FROM waste_types WHERE id = \? LIMIT 1`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		ok, err := repo.Exists(ctx, 3)
		require.NoError(t, err)
		assert.True(t, ok)

		mock.ExpectQuery(`SELECT 1 FROM waste_types WHERE id = \? LIMIT 1`).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}))
		ok, err = repo.Exists(ctx, 4)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update writes only patched columns", func(t *testing.T) {
		rows := func() *sqlmock.Rows {
			return sqlmock.NewRows([]string{"id", "name", "code", "created_at"}).
				AddRow(int64(3), "Glass", nil, "2026-01-02 10:00:00")
		}
		mock.ExpectQuery(`SELECT id, name, code, created_at FROM waste_types WHERE id = \?`).
			WithArgs(int64(3)).
			WillReturnRows(rows())
		mock.ExpectExec(`UPDATE waste_types SET name = \? WHERE id = \?`).
			WithArgs("Green glass", int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT id, name, code, created_at FROM waste_types WHERE id = \?`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "created_at"}).
				AddRow(int64(3), "Green glass", nil, "2026-01-02 10:00:00"))

		name := "Green glass"
		w, err := repo.Update(ctx, 3, WasteTypePatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Green glass", w.Name)
		assert.Nil(t, w.Code)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update with empty patch is a read", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			mock.ExpectQuery(`SELECT id, name, code, created_at FROM waste_types WHERE id = \?`).
				WithArgs(int64(3)).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "created_at"}).
					AddRow(int64(3), "Glass", nil, "2026-01-02 10:00:00"))
		}

		w, err := repo.Update(ctx, 3, WasteTypePatch{})
		require.NoError(t, err)
		assert.Equal(t, "Glass", w.Name)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete writes audit row and delete in one tx", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, code, created_at FROM waste_types WHERE id = \?`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "created_at"}).
				AddRow(int64(5), "Organic", int64(2), "2026-01-02 10:00:00"))
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO logs`).
			WithArgs("delete", "WasteType", "5", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`DELETE FROM waste_types WHERE id = \?`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Delete(ctx, 5))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete rolls back when audit insert fails", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, code, created_at FROM waste_types WHERE id = \?`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "created_at"}).
				AddRow(int64(5), "Organic", int64(2), "2026-01-02 10:00:00"))
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO logs`).
			WillReturnError(errors.New("logs table gone"))
		mock.ExpectRollback()

		err := repo.Delete(ctx, 5)
		assert.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete surfaces commit failure", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, code, created_at FROM waste_types WHERE id = \?`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "created_at"}).
				AddRow(int64(5), "Organic", int64(2), "2026-01-02 10:00:00"))
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO logs`).
			WithArgs("delete", "WasteType", "5", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`DELETE FROM waste_types WHERE id = \?`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(errors.New("deadlock on commit"))

		err := repo.Delete(ctx, 5)
		assert.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete of missing row maps to sentinel", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, code, created_at FROM waste_types WHERE id = \?`).
			WithArgs(int64(42)).
			WillReturnError(sql.ErrNoRows)

		err := repo.Delete(ctx, 42)
		assert.True(t, errors.Is(err, ErrWasteTypeNotFound))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteAll", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM waste_types`).
			WillReturnResult(sqlmock.NewResult(0, 3))
		require.NoError(t, repo.DeleteAll(ctx))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
