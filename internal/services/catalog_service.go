package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-manager/internal/constants"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/policy"
	"github.com/yukikurage/task-manager/internal/repository"
	"github.com/yukikurage/task-manager/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrPositionNotFound = errors.New("position not found")
	ErrTaskTypeNotFound = errors.New("task type not found")
)

const (
	msgPositionNameTaken = "Position with this Name already exists."
	msgTaskTypeNameTaken = "Task type with this Name already exists."
)

// CatalogService manages the position and task type lookup tables.
type CatalogService struct {
	positionRepo repository.PositionRepository
	taskTypeRepo repository.TaskTypeRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(positionRepo repository.PositionRepository, taskTypeRepo repository.TaskTypeRepository) *CatalogService {
	return &CatalogService{
		positionRepo: positionRepo,
		taskTypeRepo: taskTypeRepo,
	}
}

// NameInput is the form shared by positions and task types
type NameInput struct {
	Name string
}

func (s *CatalogService) ListPositions(page string) (*Page[models.Position], error) {
	return paginate(page, constants.CatalogPageSize, s.positionRepo.Count, s.positionRepo.List)
}

func (s *CatalogService) AllPositions() ([]models.Position, error) {
	positions, err := s.positionRepo.List(allRows)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	return positions, nil
}

func (s *CatalogService) GetPosition(id uint64) (*models.Position, error) {
	position, err := s.positionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, fmt.Errorf("failed to find position: %w", err)
	}
	return position, nil
}

func (s *CatalogService) CreatePosition(actor *models.Worker, input NameInput) (*models.Position, error) {
	if !policy.CanManageCatalog(actor) {
		return nil, ErrForbidden
	}

	name, err := checkName(input.Name, msgPositionNameTaken, func(name string) error {
		_, err := s.positionRepo.FindByName(name)
		return err
	})
	if err != nil {
		return nil, err
	}

	position := &models.Position{Name: name}
	if err := validation.Struct(position); err != nil {
		return nil, err
	}
	if err := s.positionRepo.Create(position); err != nil {
		return nil, saveError(fmt.Errorf("failed to create position: %w", err), "name", msgPositionNameTaken)
	}
	return position, nil
}

// DeletePosition deletes a position; its workers keep their accounts without one
func (s *CatalogService) DeletePosition(actor *models.Worker, id uint64) error {
	if !policy.CanManageCatalog(actor) {
		return ErrForbidden
	}

	if err := s.positionRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPositionNotFound
		}
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return nil
}

func (s *CatalogService) ListTaskTypes(page string) (*Page[models.TaskType], error) {
	return paginate(page, constants.CatalogPageSize, s.taskTypeRepo.Count, s.taskTypeRepo.List)
}

func (s *CatalogService) AllTaskTypes() ([]models.TaskType, error) {
	taskTypes, err := s.taskTypeRepo.List(allRows)
	if err != nil {
		return nil, fmt.Errorf("failed to list task types: %w", err)
	}
	return taskTypes, nil
}

func (s *CatalogService) GetTaskType(id uint64) (*models.TaskType, error) {
	taskType, err := s.taskTypeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskTypeNotFound
		}
		return nil, fmt.Errorf("failed to find task type: %w", err)
	}
	return taskType, nil
}

func (s *CatalogService) CreateTaskType(actor *models.Worker, input NameInput) (*models.TaskType, error) {
	if !policy.CanManageCatalog(actor) {
		return nil, ErrForbidden
	}

	name, err := checkName(input.Name, msgTaskTypeNameTaken, func(name string) error {
		_, err := s.taskTypeRepo.FindByName(name)
		return err
	})
	if err != nil {
		return nil, err
	}

	taskType := &models.TaskType{Name: name}
	if err := validation.Struct(taskType); err != nil {
		return nil, err
	}
	if err := s.taskTypeRepo.Create(taskType); err != nil {
		return nil, saveError(fmt.Errorf("failed to create task type: %w", err), "name", msgTaskTypeNameTaken)
	}
	return taskType, nil
}

// DeleteTaskType deletes a task type; its tasks are kept untyped
func (s *CatalogService) DeleteTaskType(actor *models.Worker, id uint64) error {
	if !policy.CanManageCatalog(actor) {
		return ErrForbidden
	}

	if err := s.taskTypeRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskTypeNotFound
		}
		return fmt.Errorf("failed to delete task type: %w", err)
	}
	return nil
}

// checkName trims a catalog name and checks it is present and unused.
func checkName(raw, takenMessage string, find func(name string) error) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", validation.Errors{"name": {msgRequired}}
	}

	err := find(name)
	if err == nil {
		return "", validation.Errors{"name": {takenMessage}}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to check name: %w", err)
	}
	return name, nil
}
