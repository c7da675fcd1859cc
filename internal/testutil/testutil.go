// Package testutil builds in-memory databases and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-manager/internal/database"
	"github.com/yukikurage/task-manager/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain text password of every fixture worker.
const Password = "ytrewq123"

// NewDB opens a migrated in-memory sqlite database closed with the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// Every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func CreateProject(t testing.TB, db *gorm.DB, name string) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, Description: "Description for project"}
	require.NoError(t, db.Create(project).Error)
	return project
}

func CreatePosition(t testing.TB, db *gorm.DB, name string) *models.Position {
	t.Helper()
	position := &models.Position{Name: name}
	require.NoError(t, db.Create(position).Error)
	return position
}

func CreateTaskType(t testing.TB, db *gorm.DB, name string) *models.TaskType {
	t.Helper()
	taskType := &models.TaskType{Name: name}
	require.NoError(t, db.Create(taskType).Error)
	return taskType
}

type WorkerOption func(*models.Worker)

func Superuser() WorkerOption {
	return func(w *models.Worker) {
		w.IsSuperuser = true
		w.IsStaff = true
	}
}

func WithPosition(id uint64) WorkerOption {
	return func(w *models.Worker) { w.PositionID = &id }
}

func WithProject(id uint64) WorkerOption {
	return func(w *models.Worker) { w.ProjectID = &id }
}

func CreateWorker(t testing.TB, db *gorm.DB, username string, opts ...WorkerOption) *models.Worker {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	worker := &models.Worker{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	for _, opt := range opts {
		opt(worker)
	}
	require.NoError(t, db.Create(worker).Error)
	return worker
}

type TaskOption func(*models.Task)

func AssignedTo(w *models.Worker) TaskOption {
	return func(task *models.Task) { task.AssigneeID = &w.ID }
}

func CreatedBy(w *models.Worker) TaskOption {
	return func(task *models.Task) { task.CreatedByID = &w.ID }
}

func WithPriority(p models.Priority) TaskOption {
	return func(task *models.Task) { task.Priority = p }
}

func WithTaskType(id uint64) TaskOption {
	return func(task *models.Task) { task.TaskTypeID = &id }
}

func WithDeadline(deadline time.Time) TaskOption {
	return func(task *models.Task) { task.Deadline = deadline }
}

func Completed() TaskOption {
	return func(task *models.Task) { task.IsCompleted = true }
}

// CreateTask creates a LOW priority task due in 45 minutes unless options say otherwise.
func CreateTask(t testing.TB, db *gorm.DB, name string, projectID uint64, opts ...TaskOption) *models.Task {
	t.Helper()

	task := &models.Task{
		Name:        name,
		Description: "Description for Task",
		Deadline:    time.Now().Add(45 * time.Minute),
		Priority:    models.PriorityLow,
		ProjectID:   projectID,
	}
	for _, opt := range opts {
		opt(task)
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
