package dto

import (
	"time"

	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/services"
	"github.com/yukikurage/task-manager/internal/utils"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	WorkersCount int64     `json:"workers_count"`
	TasksCount   int64     `json:"tasks_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProjectListResponse represents a paginated, searchable list of projects
type ProjectListResponse struct {
	Projects   []ProjectDTO             `json:"projects"`
	Pagination utils.PaginationResponse `json:"pagination"`
	Search     services.ProjectSearch   `json:"search"`
}

func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:           project.ID,
		Name:         project.Name,
		Description:  project.Description,
		WorkersCount: project.WorkersCount,
		TasksCount:   project.TasksCount,
		CreatedAt:    project.CreatedAt,
		UpdatedAt:    project.UpdatedAt,
	}
}

func ToProjectListResponse(page *services.Page[models.Project], search services.ProjectSearch) ProjectListResponse {
	items := make([]ProjectDTO, len(page.Items))
	for i, project := range page.Items {
		items[i] = ToProjectDTO(project)
	}
	return ProjectListResponse{
		Projects:   items,
		Pagination: page.Pagination,
		Search:     search,
	}
}
