package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripshield/backend/internal/models"
	appErr "github.com/tripshield/backend/pkg/errors"
)

func TestUsageLogList_CapsLimitAt100(t *testing.T) {
	mock, db := setupMockDB(t)
	repo := NewUsageLogRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "usage_logs" WHERE action ILIKE \$1`).
		WithArgs("%login%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(150))

	rows := sqlmock.NewRows([]string{"id", "action", "metadata", "user_id", "created_at"})
	mock.ExpectQuery(`SELECT \* FROM "usage_logs" WHERE action ILIKE \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("%login%", 100).
		WillReturnRows(rows)

	out, total, err := repo.List(context.Background(), UsageLogListQuery{Action: "login", Limit: 1000})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.EqualValues(t, 150, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsageLogList_DefaultsLimitTo50(t *testing.T) {
	mock, db := setupMockDB(t)
	repo := NewUsageLogRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "usage_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectQuery(`SELECT \* FROM "usage_logs" ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "metadata", "user_id", "created_at"}))

	_, total, err := repo.List(context.Background(), UsageLogListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsageLogCreate_UnknownUserIsNotFound(t *testing.T) {
	mock, db := setupMockDB(t)
	repo := NewUsageLogRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "usage_logs"`).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "fk_usage_logs_user"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.UsageLog{Action: "login"})
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	var ae *appErr.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "User not found", ae.Message)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsageLogDeleteOlderThan_ReportsRowCount(t *testing.T) {
	mock, db := setupMockDB(t)
	repo := NewUsageLogRepository(db)

	cutoff := time.Now().AddDate(0, 0, -90)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "usage_logs" WHERE created_at < \$1`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 42))
	mock.ExpectCommit()

	n, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 42, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsageLogCountByAction(t *testing.T) {
	mock, db := setupMockDB(t)
	repo := NewUsageLogRepository(db)

	rows := sqlmock.NewRows([]string{"action", "count"}).
		AddRow("login", 12).
		AddRow("view_tourist", 5)

	mock.ExpectQuery(`SELECT action, COUNT\(\*\) AS count FROM "usage_logs" GROUP BY "action" ORDER BY count DESC`).
		WillReturnRows(rows)

	out, err := repo.CountByAction(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "login", out[0].Action)
	assert.EqualValues(t, 12, out[0].Count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
