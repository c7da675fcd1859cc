package repository

import (
	"github.com/yukikurage/task-manager/internal/database"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *GormTaskRepository) filtered(filter TaskFilter) *gorm.DB {
	query := r.db.Model(&models.Task{})

	if filter.AssignedToMe != nil {
		if *filter.AssignedToMe {
			query = query.Where("tasks.assignee_id = ?", filter.ActorID)
		} else {
			query = query.Where("(tasks.assignee_id IS NULL OR tasks.assignee_id <> ?)", filter.ActorID)
		}
	}
	if filter.CreatedByMe != nil {
		if *filter.CreatedByMe {
			query = query.Where("tasks.created_by_id = ?", filter.ActorID)
		} else {
			query = query.Where("(tasks.created_by_id IS NULL OR tasks.created_by_id <> ?)", filter.ActorID)
		}
	}
	if filter.Completed != nil {
		query = query.Where("tasks.is_completed = ?", *filter.Completed)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.TaskTypeID != nil {
		query = query.Where("tasks.task_type_id = ?", *filter.TaskTypeID)
	}
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}

	return query.Scopes(database.ContainsFold("tasks.name", filter.Name))
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter, params utils.PaginationParams) ([]models.Task, error) {
	var tasks []models.Task
	err := r.filtered(filter).
		Preload("TaskType").
		Preload("Project").
		Preload("Assignee").
		Order("tasks.deadline ASC, tasks.id ASC").
		Scopes(database.Paginate(params)).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) Count(filter TaskFilter) (int64, error) {
	var total int64
	err := r.filtered(filter).Count(&total).Error
	return total, err
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	res := r.db.Delete(&models.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkCompleted uses a conditional update so concurrent completions
// transition the row, and bump the counter, exactly once.
func (r *GormTaskRepository) MarkCompleted(task *models.Task) (bool, error) {
	transitioned := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Task{}).
			Where("id = ? AND is_completed = ?", task.ID, false).
			UpdateColumn("is_completed", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		transitioned = true

		if task.AssigneeID == nil {
			return nil
		}
		return tx.Model(&models.Worker{}).
			Where("id = ?", *task.AssigneeID).
			UpdateColumn("completed_tasks", gorm.Expr("completed_tasks + ?", 1)).Error
	})
	if err != nil {
		return false, err
	}

	task.IsCompleted = true
	return transitioned, nil
}
