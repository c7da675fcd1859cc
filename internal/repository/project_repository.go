package repository

import (
	"github.com/yukikurage/task-manager/internal/database"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

const projectCountsSelect = "projects.*, " +
	"(SELECT COUNT(*) FROM workers WHERE workers.project_id = projects.id) AS workers_count, " +
	"(SELECT COUNT(*) FROM tasks WHERE tasks.project_id = projects.id) AS tasks_count"

func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Omit(clause.Associations).Create(project).Error
}

func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Select(projectCountsSelect).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) FindByName(name string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("name = ?", name).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) filtered(filter ProjectFilter) *gorm.DB {
	return r.db.Model(&models.Project{}).Scopes(database.ContainsFold("projects.name", filter.Name))
}

// List retrieves projects with per-row worker and task counts
func (r *GormProjectRepository) List(filter ProjectFilter, params utils.PaginationParams) ([]models.Project, error) {
	var projects []models.Project
	err := r.filtered(filter).
		Select(projectCountsSelect).
		Order("projects.name ASC").
		Scopes(database.Paginate(params)).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *GormProjectRepository) Count(filter ProjectFilter) (int64, error) {
	var total int64
	err := r.filtered(filter).Count(&total).Error
	return total, err
}

func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Omit(clause.Associations).Save(project).Error
}

// Delete removes the project's tasks, detaches its workers and deletes the project in one transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Worker{}).
			Where("project_id = ?", id).
			UpdateColumn("project_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Project{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
