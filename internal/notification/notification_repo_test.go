package notification_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-hr-admin/internal/notification"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (notification.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: db, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	return notification.NewRepository(gdb), mock
}

func TestNotificationRepository_ListByEmployee_Unread(t *testing.T) {
	repo, mock := setupRepoTest(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notifications` WHERE employee_code = ? AND read_at IS NULL ORDER BY created_at DESC, id DESC LIMIT ?")).
		WithArgs("EMP001", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "employee_code", "kind", "message"}).
			AddRow(4, "e-4", "EMP001", notification.KindLeaveDecided, "m"))

	rows, err := repo.ListByEmployee(context.Background(), "EMP001", true, 20)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "e-4", rows[0].EventID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	repo, mock := setupRepoTest(t)
	at := time.Date(2025, 1, 11, 8, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `notifications` SET `read_at`=? WHERE id = ? AND employee_code = ? AND read_at IS NULL")).
		WithArgs(at, 3, "EMP001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := repo.MarkRead(context.Background(), 3, "EMP001", at)

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
