package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-manager/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockTaskRepository(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

func TestMarkCompleted_UpdatesTaskAndAssigneeInOneTransaction(t *testing.T) {
	repo, mock := newMockTaskRepository(t)
	assignee := uint64(7)
	task := &models.Task{ID: 3, AssigneeID: &assignee}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET `is_completed`=\\? WHERE \\(?id = \\? AND is_completed = \\?").
		WithArgs(true, task.ID, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `workers` SET `completed_tasks`=completed_tasks \\+ \\? WHERE id = \\?").
		WithArgs(1, assignee).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	transitioned, err := repo.MarkCompleted(task)
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.True(t, task.IsCompleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkCompleted_AlreadyCompletedSkipsCounter(t *testing.T) {
	repo, mock := newMockTaskRepository(t)
	assignee := uint64(7)
	task := &models.Task{ID: 3, AssigneeID: &assignee, IsCompleted: true}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET `is_completed`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	transitioned, err := repo.MarkCompleted(task)
	require.NoError(t, err)
	assert.False(t, transitioned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkCompleted_RollsBackWhenCounterFails(t *testing.T) {
	repo, mock := newMockTaskRepository(t)
	assignee := uint64(7)
	task := &models.Task{ID: 3, AssigneeID: &assignee}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET `is_completed`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `workers` SET `completed_tasks`").
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	transitioned, err := repo.MarkCompleted(task)
	require.Error(t, err)
	assert.False(t, transitioned)
	assert.False(t, task.IsCompleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
