package dto

import (
	"time"

	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/services"
	"github.com/yukikurage/task-manager/internal/utils"
)

// WorkerDTO represents a worker in API responses
type WorkerDTO struct {
	ID             uint64     `json:"id"`
	Username       string     `json:"username"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Position       *RefDTO    `json:"position"`
	Project        *RefDTO    `json:"project"`
	CompletedTasks uint       `json:"completed_tasks"`
	TasksCount     int64      `json:"tasks_count"`
	IsSuperuser    bool       `json:"is_superuser"`
	DateJoined     time.Time  `json:"date_joined"`
	LastLogin      *time.Time `json:"last_login"`
}

// WorkerChoices lists the options of the worker form and search selects
type WorkerChoices struct {
	Positions []RefDTO `json:"positions"`
	Projects  []RefDTO `json:"projects"`
}

// WorkerListResponse represents a paginated, searchable list of workers
type WorkerListResponse struct {
	Workers    []WorkerDTO              `json:"workers"`
	Pagination utils.PaginationResponse `json:"pagination"`
	Search     services.WorkerSearch    `json:"search"`
	Choices    WorkerChoices            `json:"choices"`
}

// WorkerFormResponse is the payload of the worker create, update and profile pages
type WorkerFormResponse struct {
	Worker  *WorkerDTO    `json:"worker,omitempty"`
	Choices WorkerChoices `json:"choices"`
}

func ToWorkerDTO(worker models.Worker) WorkerDTO {
	dto := WorkerDTO{
		ID:             worker.ID,
		Username:       worker.Username,
		FirstName:      worker.FirstName,
		LastName:       worker.LastName,
		Email:          worker.Email,
		CompletedTasks: worker.CompletedTasks,
		TasksCount:     worker.TasksCount,
		IsSuperuser:    worker.IsSuperuser,
		DateJoined:     worker.DateJoined,
		LastLogin:      worker.LastLogin,
	}

	// Include relations if preloaded
	if worker.Position != nil {
		position := ToPositionRef(*worker.Position)
		dto.Position = &position
	}
	if worker.Project != nil {
		project := ToProjectRef(*worker.Project)
		dto.Project = &project
	}

	return dto
}

func ToWorkerListResponse(page *services.Page[models.Worker], search services.WorkerSearch, choices WorkerChoices) WorkerListResponse {
	items := make([]WorkerDTO, len(page.Items))
	for i, worker := range page.Items {
		items[i] = ToWorkerDTO(worker)
	}
	return WorkerListResponse{
		Workers:    items,
		Pagination: page.Pagination,
		Search:     search,
		Choices:    choices,
	}
}
