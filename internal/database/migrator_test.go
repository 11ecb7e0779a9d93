package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"portfolio-backend/internal/database"
)

func setupMigrator(t *testing.T) (*database.Migrator, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return database.NewMigrator(db), mock, db
}

func expectStatus(mock sqlmock.Sqlmock, name string, count int) {
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM schema_migrations WHERE name = \$1`).
		WithArgs(name).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func TestMigrations(t *testing.T) {
	names, err := database.Migrations()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_portfolio.sql", "002_storage_buckets.sql"}, names)
}

func TestMigrator_Run(t *testing.T) {
	migrator, mock, db := setupMigrator(t)
	defer db.Close()

	t.Run("applies pending migrations in order", func(t *testing.T) {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		expectStatus(mock, "001_portfolio.sql", 1)
		expectStatus(mock, "002_storage_buckets.sql", 0)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO storage.buckets`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO schema_migrations`).
			WithArgs("002_storage_buckets.sql").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		applied, err := migrator.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"002_storage_buckets.sql"}, applied)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing pending", func(t *testing.T) {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		expectStatus(mock, "001_portfolio.sql", 1)
		expectStatus(mock, "002_storage_buckets.sql", 1)

		applied, err := migrator.Run(context.Background())
		require.NoError(t, err)
		assert.Empty(t, applied)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMigrator_RunRollsBackFailedMigration(t *testing.T) {
	migrator, mock, db := setupMigrator(t)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	expectStatus(mock, "001_portfolio.sql", 0)
	expectStatus(mock, "002_storage_buckets.sql", 0)

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS projects`).
		WillReturnError(errors.New("permission denied for schema public"))
	mock.ExpectRollback()

	applied, err := migrator.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_portfolio.sql")
	assert.Empty(t, applied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_Pending(t *testing.T) {
	migrator, mock, db := setupMigrator(t)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	expectStatus(mock, "001_portfolio.sql", 0)
	expectStatus(mock, "002_storage_buckets.sql", 0)

	pending, err := migrator.Pending(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_SetAdminPassword(t *testing.T) {
	migrator, mock, db := setupMigrator(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO admin_settings`).
		WithArgs("$2a$10$hash").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, migrator.SetAdminPassword(context.Background(), "$2a$10$hash"))
	require.NoError(t, mock.ExpectationsWereMet())
}
