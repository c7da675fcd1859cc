package repository

import (
	"github.com/yukikurage/task-manager/internal/database"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/utils"
	"gorm.io/gorm"
)

// GormPositionRepository is a GORM implementation of PositionRepository
type GormPositionRepository struct {
	db *gorm.DB
}

// NewPositionRepository creates a new PositionRepository
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &GormPositionRepository{db: db}
}

func (r *GormPositionRepository) Create(position *models.Position) error {
	return r.db.Create(position).Error
}

func (r *GormPositionRepository) FindByID(id uint64) (*models.Position, error) {
	var position models.Position
	if err := r.db.First(&position, id).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *GormPositionRepository) FindByName(name string) (*models.Position, error) {
	var position models.Position
	if err := r.db.Where("name = ?", name).First(&position).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *GormPositionRepository) List(params utils.PaginationParams) ([]models.Position, error) {
	var positions []models.Position
	if err := r.db.Order("name ASC").Scopes(database.Paginate(params)).Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (r *GormPositionRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Position{}).Count(&total).Error
	return total, err
}

func (r *GormPositionRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Worker{}).
			Where("position_id = ?", id).
			UpdateColumn("position_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Position{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GormTaskTypeRepository is a GORM implementation of TaskTypeRepository
type GormTaskTypeRepository struct {
	db *gorm.DB
}

// NewTaskTypeRepository creates a new TaskTypeRepository
func NewTaskTypeRepository(db *gorm.DB) TaskTypeRepository {
	return &GormTaskTypeRepository{db: db}
}

func (r *GormTaskTypeRepository) Create(taskType *models.TaskType) error {
	return r.db.Create(taskType).Error
}

func (r *GormTaskTypeRepository) FindByID(id uint64) (*models.TaskType, error) {
	var taskType models.TaskType
	if err := r.db.First(&taskType, id).Error; err != nil {
		return nil, err
	}
	return &taskType, nil
}

func (r *GormTaskTypeRepository) FindByName(name string) (*models.TaskType, error) {
	var taskType models.TaskType
	if err := r.db.Where("name = ?", name).First(&taskType).Error; err != nil {
		return nil, err
	}
	return &taskType, nil
}

func (r *GormTaskTypeRepository) List(params utils.PaginationParams) ([]models.TaskType, error) {
	var taskTypes []models.TaskType
	if err := r.db.Order("name ASC").Scopes(database.Paginate(params)).Find(&taskTypes).Error; err != nil {
		return nil, err
	}
	return taskTypes, nil
}

func (r *GormTaskTypeRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.TaskType{}).Count(&total).Error
	return total, err
}

func (r *GormTaskTypeRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("task_type_id = ?", id).
			UpdateColumn("task_type_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.TaskType{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
