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

var ErrProjectNotFound = errors.New("project not found")

const msgProjectNameTaken = "Project with this Name already exists."

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// ProjectInput represents the project form
type ProjectInput struct {
	Name        string
	Description string
}

// ListProjects returns one page of projects matching the search form
func (s *ProjectService) ListProjects(search ProjectSearch, page string) (*Page[models.Project], error) {
	filter := ProjectFilter(search)
	return paginate(page, constants.ProjectPageSize,
		func() (int64, error) { return s.projectRepo.Count(filter) },
		func(params utils.PaginationParams) ([]models.Project, error) {
			return s.projectRepo.List(filter, params)
		},
	)
}

// AllProjects returns every project, for form choices
func (s *ProjectService) AllProjects() ([]models.Project, error) {
	projects, err := s.projectRepo.List(repository.ProjectFilter{}, allRows)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project with its worker and task counts
func (s *ProjectService) GetProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// CreateProject creates a project; only superusers may
func (s *ProjectService) CreateProject(actor *models.Worker, input ProjectInput) (*models.Project, error) {
	if !policy.CanManageProjects(actor) {
		return nil, ErrForbidden
	}

	project := &models.Project{}
	if err := s.apply(project, input); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, saveError(fmt.Errorf("failed to create project: %w", err), "name", msgProjectNameTaken)
	}
	return project, nil
}

// UpdateProject updates a project's name and description; only superusers may
func (s *ProjectService) UpdateProject(actor *models.Worker, id uint64, input ProjectInput) (*models.Project, error) {
	if !policy.CanManageProjects(actor) {
		return nil, ErrForbidden
	}

	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(project, input); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, saveError(fmt.Errorf("failed to update project: %w", err), "name", msgProjectNameTaken)
	}
	return project, nil
}

// DeleteProject deletes a project together with its tasks; only superusers may
func (s *ProjectService) DeleteProject(actor *models.Worker, id uint64) error {
	if !policy.CanManageProjects(actor) {
		return ErrForbidden
	}

	if err := s.projectRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// apply validates the form against project and copies it in on success
func (s *ProjectService) apply(project *models.Project, input ProjectInput) error {
	errs := validation.Errors{}
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)

	if name == "" {
		errs.Add("name", msgRequired)
	} else if existing, err := s.projectRepo.FindByName(name); err == nil && existing.ID != project.ID {
		errs.Add("name", msgProjectNameTaken)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check project name: %w", err)
	}
	if description == "" {
		errs.Add("description", msgRequired)
	}

	candidate := *project
	candidate.Name = name
	candidate.Description = description
	if err := modelErrors(errs, &candidate); err != nil {
		return err
	}
	if err := errs.Err(); err != nil {
		return err
	}

	project.Name = name
	project.Description = description
	return nil
}
