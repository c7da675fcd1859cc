package repository

import (
	"time"

	"github.com/yukikurage/task-manager/internal/database"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkerRepository is a GORM implementation of WorkerRepository
type GormWorkerRepository struct {
	db *gorm.DB
}

// NewWorkerRepository creates a new WorkerRepository
func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &GormWorkerRepository{db: db}
}

const workerCountsSelect = "workers.*, " +
	"(SELECT COUNT(*) FROM tasks WHERE tasks.assignee_id = workers.id) AS tasks_count"

func (r *GormWorkerRepository) Create(worker *models.Worker) error {
	return r.db.Omit(clause.Associations).Create(worker).Error
}

func (r *GormWorkerRepository) FindByID(id uint64, preload ...string) (*models.Worker, error) {
	var worker models.Worker
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&worker, id).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *GormWorkerRepository) FindByUsername(username string) (*models.Worker, error) {
	var worker models.Worker
	if err := r.db.Where("username = ?", username).First(&worker).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *GormWorkerRepository) filtered(filter WorkerFilter) *gorm.DB {
	query := r.db.Model(&models.Worker{})

	if filter.PositionID != nil {
		query = query.Where("workers.position_id = ?", *filter.PositionID)
	}
	if filter.ProjectID != nil {
		query = query.Where("workers.project_id = ?", *filter.ProjectID)
	}

	return query.Scopes(database.ContainsFold("workers.username", filter.Username))
}

// List retrieves workers with the number of tasks assigned to each
func (r *GormWorkerRepository) List(filter WorkerFilter, params utils.PaginationParams) ([]models.Worker, error) {
	var workers []models.Worker
	err := r.filtered(filter).
		Select(workerCountsSelect).
		Preload("Position").
		Preload("Project").
		Order("workers.username ASC").
		Scopes(database.Paginate(params)).
		Find(&workers).Error
	if err != nil {
		return nil, err
	}
	return workers, nil
}

func (r *GormWorkerRepository) Count(filter WorkerFilter) (int64, error) {
	var total int64
	err := r.filtered(filter).Count(&total).Error
	return total, err
}

// Update saves the worker's profile. The counters maintained by other
// writes are left untouched.
func (r *GormWorkerRepository) Update(worker *models.Worker) error {
	return r.db.Omit(clause.Associations, "CompletedTasks", "LastLogin").Save(worker).Error
}

func (r *GormWorkerRepository) UpdateLastLogin(worker *models.Worker) error {
	now := time.Now()
	if err := r.db.Model(worker).UpdateColumn("last_login", now).Error; err != nil {
		return err
	}
	worker.LastLogin = &now
	return nil
}

// Delete detaches the worker from its tasks and deletes it in one transaction
func (r *GormWorkerRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("assignee_id = ?", id).
			UpdateColumn("assignee_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).
			Where("created_by_id = ?", id).
			UpdateColumn("created_by_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Worker{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
