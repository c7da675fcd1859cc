package services

import (
	"fmt"

	"github.com/yukikurage/task-manager/internal/repository"
)

// Counts summarises the size of the workspace for the landing page.
type Counts struct {
	Projects int64
	Tasks    int64
	Workers  int64
}

// HomeService serves the landing page.
type HomeService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	workerRepo  repository.WorkerRepository
}

func NewHomeService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, workerRepo repository.WorkerRepository) *HomeService {
	return &HomeService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		workerRepo:  workerRepo,
	}
}

func (s *HomeService) Counts() (Counts, error) {
	var counts Counts
	var err error

	if counts.Projects, err = s.projectRepo.Count(repository.ProjectFilter{}); err != nil {
		return Counts{}, fmt.Errorf("failed to count projects: %w", err)
	}
	if counts.Tasks, err = s.taskRepo.Count(repository.TaskFilter{}); err != nil {
		return Counts{}, fmt.Errorf("failed to count tasks: %w", err)
	}
	if counts.Workers, err = s.workerRepo.Count(repository.WorkerFilter{}); err != nil {
		return Counts{}, fmt.Errorf("failed to count workers: %w", err)
	}
	return counts, nil
}
