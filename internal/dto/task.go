package dto

import (
	"time"

	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/policy"
	"github.com/yukikurage/task-manager/internal/services"
	"github.com/yukikurage/task-manager/internal/utils"
)

// TaskDTO represents a task in API responses. CanModify and CanComplete
// describe what the requesting worker may do with it.
type TaskDTO struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Deadline    time.Time       `json:"deadline"`
	Priority    models.Priority `json:"priority"`
	IsCompleted bool            `json:"is_completed"`
	IsOverdue   bool            `json:"is_overdue"`
	TaskType    *RefDTO         `json:"task_type"`
	Project     *RefDTO         `json:"project"`
	Assignee    *WorkerRefDTO   `json:"assignee"`
	CreatedBy   *WorkerRefDTO   `json:"created_by"`
	CanModify   bool            `json:"can_modify"`
	CanComplete bool            `json:"can_complete"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TaskChoices lists the options of the task form and search selects
type TaskChoices struct {
	Priorities []ChoiceDTO    `json:"priorities"`
	TaskTypes  []RefDTO       `json:"task_types"`
	Projects   []RefDTO       `json:"projects"`
	Workers    []WorkerRefDTO `json:"workers,omitempty"`
}

// TaskListResponse represents a paginated, searchable list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
	Search     services.TaskSearch      `json:"search"`
	Choices    TaskChoices              `json:"choices"`
}

// TaskFormResponse is the payload of the task create and update pages
type TaskFormResponse struct {
	Task    *TaskDTO    `json:"task,omitempty"`
	Choices TaskChoices `json:"choices"`
}

var priorityLabels = map[models.Priority]string{
	models.PriorityLow:    "Low",
	models.PriorityMedium: "Medium",
	models.PriorityHigh:   "High",
}

// PriorityChoices returns the priority options in display order
func PriorityChoices() []ChoiceDTO {
	choices := make([]ChoiceDTO, len(models.Priorities))
	for i, p := range models.Priorities {
		choices[i] = ChoiceDTO{Value: string(p), Label: priorityLabels[p]}
	}
	return choices
}

// ToTaskDTO converts a Task model as seen by viewer at now
func ToTaskDTO(task models.Task, viewer *models.Worker, now time.Time) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Deadline:    task.Deadline,
		Priority:    task.Priority,
		IsCompleted: task.IsCompleted,
		IsOverdue:   !task.IsCompleted && task.Deadline.Before(now),
		CanModify:   policy.CanModifyTask(viewer, &task),
		CanComplete: !task.IsCompleted && policy.CanCompleteTask(viewer, &task),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include relations if preloaded
	if task.TaskType != nil {
		taskType := ToTaskTypeRef(*task.TaskType)
		dto.TaskType = &taskType
	}
	if task.Project != nil {
		project := ToProjectRef(*task.Project)
		dto.Project = &project
	}
	if task.Assignee != nil {
		assignee := ToWorkerRef(*task.Assignee)
		dto.Assignee = &assignee
	}
	if task.CreatedBy != nil {
		createdBy := ToWorkerRef(*task.CreatedBy)
		dto.CreatedBy = &createdBy
	}

	return dto
}

func ToTaskListResponse(page *services.Page[models.Task], viewer *models.Worker, now time.Time, search services.TaskSearch, choices TaskChoices) TaskListResponse {
	items := make([]TaskDTO, len(page.Items))
	for i, task := range page.Items {
		items[i] = ToTaskDTO(task, viewer, now)
	}
	return TaskListResponse{
		Tasks:      items,
		Pagination: page.Pagination,
		Search:     search,
		Choices:    choices,
	}
}
