package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestTokenRepository_FindValid_FiltersExpired(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTokenRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "token", "user_id", "created_at", "expires_at"}).
		AddRow(1, "123456", 7, now, now.Add(10*time.Minute))

	// The expiry filter must be part of the lookup itself, not left to the
	// sweeper.
	mock.ExpectQuery(`SELECT \* FROM "tokens" WHERE token = \$1 AND expires_at > \$2`).
		WithArgs("123456", sqlmock.AnyArg()).
		WillReturnRows(rows)

	token, err := repo.FindValid("123456")
	require.NoError(t, err)
	require.Equal(t, uint64(7), token.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_FindValid_UnknownCode(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTokenRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "tokens" WHERE token = \$1 AND expires_at > \$2`).
		WithArgs("000000", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "user_id", "created_at", "expires_at"}))

	_, err := repo.FindValid("000000")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_DeleteExpired(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTokenRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tokens" WHERE expires_at <= \$1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	deleted, err := repo.DeleteExpired()
	require.NoError(t, err)
	require.Equal(t, int64(3), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
