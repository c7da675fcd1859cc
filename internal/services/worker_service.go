package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-manager/internal/constants"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/policy"
	"github.com/yukikurage/task-manager/internal/repository"
	"github.com/yukikurage/task-manager/internal/utils"
	"github.com/yukikurage/task-manager/internal/validation"
	"gorm.io/gorm"
)

var ErrWorkerNotFound = errors.New("worker not found")

// WorkerService handles worker business logic
type WorkerService struct {
	workerRepo   repository.WorkerRepository
	positionRepo repository.PositionRepository
	projectRepo  repository.ProjectRepository
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(workerRepo repository.WorkerRepository, positionRepo repository.PositionRepository, projectRepo repository.ProjectRepository) *WorkerService {
	return &WorkerService{
		workerRepo:   workerRepo,
		positionRepo: positionRepo,
		projectRepo:  projectRepo,
	}
}

// WorkerInput represents the editable profile fields of a worker.
// Position and Project carry the raw id submitted by the form.
type WorkerInput struct {
	Username  string
	Position  string
	Project   string
	FirstName string
	LastName  string
	Email     string
}

// CreateWorkerInput represents the form a superuser fills to add a worker
type CreateWorkerInput struct {
	WorkerInput
	Password1 string
	Password2 string
}

// ListWorkers returns one page of workers matching the search form
func (s *WorkerService) ListWorkers(search WorkerSearch, page string) (*Page[models.Worker], error) {
	filter, err := WorkerFilter(search, s.positionRepo, s.projectRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve worker filter: %w", err)
	}

	return paginate(page, constants.WorkerPageSize,
		func() (int64, error) { return s.workerRepo.Count(filter) },
		func(params utils.PaginationParams) ([]models.Worker, error) { return s.workerRepo.List(filter, params) },
	)
}

// AllWorkers returns every worker, for form choices
func (s *WorkerService) AllWorkers() ([]models.Worker, error) {
	workers, err := s.workerRepo.List(repository.WorkerFilter{}, allRows)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	return workers, nil
}

// GetWorker returns a worker with its position and project
func (s *WorkerService) GetWorker(id uint64) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByID(id, "Position", "Project")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}
	return worker, nil
}

// CreateWorker creates a worker account; only superusers may
func (s *WorkerService) CreateWorker(actor *models.Worker, input CreateWorkerInput) (*models.Worker, error) {
	if !policy.CanManageWorkers(actor) {
		return nil, ErrForbidden
	}

	worker := &models.Worker{IsActive: true}
	errs := validation.Errors{}
	if err := checkAccount(s.workerRepo, errs, strings.TrimSpace(input.Username), input.Password1, input.Password2); err != nil {
		return nil, err
	}
	if err := s.apply(errs, worker, input.WorkerInput); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password1)
	if err != nil {
		return nil, err
	}
	worker.PasswordHash = hash

	if err := s.workerRepo.Create(worker); err != nil {
		return nil, saveError(fmt.Errorf("failed to create worker: %w", err), "username", msgUsernameTaken)
	}
	return worker, nil
}

// UpdateWorker updates another worker's profile; only superusers may
func (s *WorkerService) UpdateWorker(actor *models.Worker, id uint64, input WorkerInput) (*models.Worker, error) {
	if !policy.CanManageWorkers(actor) {
		return nil, ErrForbidden
	}

	worker, err := s.GetWorker(id)
	if err != nil {
		return nil, err
	}
	return s.update(worker, input)
}

// UpdateProfile updates the acting worker's own profile
func (s *WorkerService) UpdateProfile(actor *models.Worker, input WorkerInput) (*models.Worker, error) {
	worker, err := s.GetWorker(actor.ID)
	if err != nil {
		return nil, err
	}
	return s.update(worker, input)
}

// DeleteWorker deletes a worker; their tasks stay, unassigned; only superusers may
func (s *WorkerService) DeleteWorker(actor *models.Worker, id uint64) error {
	if !policy.CanManageWorkers(actor) {
		return ErrForbidden
	}

	if err := s.workerRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkerNotFound
		}
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	return nil
}

func (s *WorkerService) update(worker *models.Worker, input WorkerInput) (*models.Worker, error) {
	errs := validation.Errors{}

	username := strings.TrimSpace(input.Username)
	if username != "" && username != worker.Username {
		if _, err := s.workerRepo.FindByUsername(username); err == nil {
			errs.Add("username", msgUsernameTaken)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
	}

	if err := s.apply(errs, worker, input); err != nil {
		return nil, err
	}

	if err := s.workerRepo.Update(worker); err != nil {
		return nil, saveError(fmt.Errorf("failed to update worker: %w", err), "username", msgUsernameTaken)
	}

	// The preloaded relations may point at the previous position or project
	return s.GetWorker(worker.ID)
}

// apply resolves the form's references, validates the result and copies it
// into worker when errs stays empty.
func (s *WorkerService) apply(errs validation.Errors, worker *models.Worker, input WorkerInput) error {
	positionID, err := checkRef(errs, "position", input.Position, false, existsBy(s.positionRepo.FindByID))
	if err != nil {
		return fmt.Errorf("failed to resolve position: %w", err)
	}
	projectID, err := checkRef(errs, "project", input.Project, false, existsBy(s.projectRepo.FindByID))
	if err != nil {
		return fmt.Errorf("failed to resolve project: %w", err)
	}

	candidate := *worker
	candidate.Username = strings.TrimSpace(input.Username)
	candidate.FirstName = strings.TrimSpace(input.FirstName)
	candidate.LastName = strings.TrimSpace(input.LastName)
	candidate.Email = strings.TrimSpace(input.Email)
	candidate.PositionID = positionID
	candidate.ProjectID = projectID
	candidate.Position = nil
	candidate.Project = nil

	if err := modelErrors(errs, &candidate); err != nil {
		return err
	}
	if err := errs.Err(); err != nil {
		return err
	}

	*worker = candidate
	return nil
}
