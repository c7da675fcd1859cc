package repository

import (
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/utils"
)

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Name string
}

// WorkerFilter holds filtering options for listing workers
type WorkerFilter struct {
	PositionID *uint64
	ProjectID  *uint64
	Username   string
}

// TaskFilter holds filtering options for listing tasks.
// AssignedToMe and CreatedByMe compare against ActorID; false means "not the actor".
type TaskFilter struct {
	ActorID      uint64
	AssignedToMe *bool
	CreatedByMe  *bool
	Completed    *bool
	Priority     *models.Priority
	TaskTypeID   *uint64
	ProjectID    *uint64
	Name         string
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindByName finds a project by its exact name
	FindByName(name string) (*models.Project, error)

	// List retrieves one page of projects with worker and task counts
	List(filter ProjectFilter, params utils.PaginationParams) ([]models.Project, error)

	// Count counts projects matching the filter
	Count(filter ProjectFilter) (int64, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project and its tasks, detaching its workers
	Delete(id uint64) error
}

// WorkerRepository defines the interface for worker data access
type WorkerRepository interface {
	// Create creates a new worker
	Create(worker *models.Worker) error

	// FindByID finds a worker by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Worker, error)

	// FindByUsername finds a worker by username
	FindByUsername(username string) (*models.Worker, error)

	// List retrieves one page of workers with their assigned task counts
	List(filter WorkerFilter, params utils.PaginationParams) ([]models.Worker, error)

	// Count counts workers matching the filter
	Count(filter WorkerFilter) (int64, error)

	// Update updates a worker
	Update(worker *models.Worker) error

	// UpdateLastLogin records a successful login
	UpdateLastLogin(worker *models.Worker) error

	// Delete deletes a worker, detaching the tasks it was assigned or created
	Delete(id uint64) error
}

// PositionRepository defines the interface for position data access
type PositionRepository interface {
	Create(position *models.Position) error
	FindByID(id uint64) (*models.Position, error)
	FindByName(name string) (*models.Position, error)
	List(params utils.PaginationParams) ([]models.Position, error)
	Count() (int64, error)

	// Delete deletes a position, detaching its workers
	Delete(id uint64) error
}

// TaskTypeRepository defines the interface for task type data access
type TaskTypeRepository interface {
	Create(taskType *models.TaskType) error
	FindByID(id uint64) (*models.TaskType, error)
	FindByName(name string) (*models.TaskType, error)
	List(params utils.PaginationParams) ([]models.TaskType, error)
	Count() (int64, error)

	// Delete deletes a task type, detaching its tasks
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves one page of tasks ordered by deadline
	List(filter TaskFilter, params utils.PaginationParams) ([]models.Task, error)

	// Count counts tasks matching the filter
	Count(filter TaskFilter) (int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error

	// MarkCompleted flips is_completed to true and reports whether the task
	// transitioned. The assignee's completed_tasks counter moves with it.
	MarkCompleted(task *models.Task) (bool, error)
}
