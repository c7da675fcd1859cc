package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/task-manager/internal/constants"
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/policy"
	"github.com/yukikurage/task-manager/internal/repository"
	"github.com/yukikurage/task-manager/internal/utils"
	"github.com/yukikurage/task-manager/internal/validation"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

const msgInvalidDateTime = "Enter a valid date/time."

// DeadlineLayouts are the accepted deadline input formats, tried in order.
// Values without a zone are read in local time.
var DeadlineLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo     repository.TaskRepository
	taskTypeRepo repository.TaskTypeRepository
	projectRepo  repository.ProjectRepository
	workerRepo   repository.WorkerRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, taskTypeRepo repository.TaskTypeRepository, projectRepo repository.ProjectRepository, workerRepo repository.WorkerRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		taskTypeRepo: taskTypeRepo,
		projectRepo:  projectRepo,
		workerRepo:   workerRepo,
	}
}

// TaskInput represents the task form. References carry the raw submitted id.
// There is no created_by field: the creator is always the acting worker.
type TaskInput struct {
	Name        string
	Description string
	Deadline    string
	Priority    string
	TaskType    string
	Project     string
	Assignee    string
}

// ListTasks returns one page of tasks matching the search form as seen by actor
func (s *TaskService) ListTasks(actor *models.Worker, search TaskSearch, page string) (*Page[models.Task], error) {
	filter, err := TaskFilter(actor, search, s.taskTypeRepo, s.projectRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task filter: %w", err)
	}

	return paginate(page, constants.TaskPageSize,
		func() (int64, error) { return s.taskRepo.Count(filter) },
		func(params utils.PaginationParams) ([]models.Task, error) { return s.taskRepo.List(filter, params) },
	)
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, "TaskType", "Project", "Assignee", "CreatedBy")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates a task owned by actor
func (s *TaskService) CreateTask(actor *models.Worker, input TaskInput) (*models.Task, error) {
	if !policy.CanCreateTask(actor) {
		return nil, ErrForbidden
	}

	creatorID := actor.ID
	task := &models.Task{CreatedByID: &creatorID}
	if err := s.apply(task, input); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, saveError(fmt.Errorf("failed to create task: %w", err), "", "")
	}
	return task, nil
}

// UpdateTask updates an existing task; superusers and the task's creator may
func (s *TaskService) UpdateTask(actor *models.Worker, id uint64, input TaskInput) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyTask(actor, task) {
		return nil, ErrForbidden
	}

	if err := s.apply(task, input); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, saveError(fmt.Errorf("failed to update task: %w", err), "", "")
	}
	return s.GetTask(task.ID)
}

// DeleteTask deletes a task; superusers and the task's creator may
func (s *TaskService) DeleteTask(actor *models.Worker, id uint64) error {
	task, err := s.GetTask(id)
	if err != nil {
		return err
	}
	if !policy.CanModifyTask(actor, task) {
		return ErrForbidden
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// CompleteTask checks that actor may complete the task and, when apply is
// set, marks it completed. It reports whether the task transitioned.
func (s *TaskService) CompleteTask(actor *models.Worker, id uint64, apply bool) (bool, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return false, err
	}
	if !policy.CanCompleteTask(actor, task) {
		return false, ErrForbidden
	}
	if !apply {
		return false, nil
	}

	transitioned, err := s.taskRepo.MarkCompleted(task)
	if err != nil {
		return false, fmt.Errorf("failed to complete task: %w", err)
	}
	return transitioned, nil
}

// apply validates the form against task and copies it in on success
func (s *TaskService) apply(task *models.Task, input TaskInput) error {
	errs := validation.Errors{}
	candidate := *task
	candidate.TaskType = nil
	candidate.Project = nil
	candidate.Assignee = nil
	candidate.CreatedBy = nil

	candidate.Name = strings.TrimSpace(input.Name)
	candidate.Description = strings.TrimSpace(input.Description)
	if candidate.Description == "" {
		errs.Add("description", msgRequired)
	}

	deadline, ok := parseDeadline(input.Deadline)
	switch {
	case strings.TrimSpace(input.Deadline) == "":
		errs.Add("deadline", msgRequired)
	case !ok:
		errs.Add("deadline", msgInvalidDateTime)
	default:
		candidate.Deadline = deadline
	}

	switch raw := strings.TrimSpace(input.Priority); {
	case raw == "":
		errs.Add("priority", msgRequired)
	default:
		priority, valid := models.ParsePriority(raw)
		if !valid {
			errs.Add("priority", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", raw))
		}
		candidate.Priority = priority
	}

	var err error
	if candidate.TaskTypeID, err = checkRef(errs, "task_type", input.TaskType, false, existsBy(s.taskTypeRepo.FindByID)); err != nil {
		return fmt.Errorf("failed to resolve task type: %w", err)
	}
	projectID, err := checkRef(errs, "project", input.Project, true, existsBy(s.projectRepo.FindByID))
	if err != nil {
		return fmt.Errorf("failed to resolve project: %w", err)
	}
	if projectID != nil {
		candidate.ProjectID = *projectID
	}
	if candidate.AssigneeID, err = checkRef(errs, "assignee", input.Assignee, false, s.workerExists); err != nil {
		return fmt.Errorf("failed to resolve assignee: %w", err)
	}

	if err := modelErrors(errs, &candidate); err != nil {
		return err
	}
	if err := errs.Err(); err != nil {
		return err
	}

	*task = candidate
	return nil
}

func (s *TaskService) workerExists(id uint64) error {
	_, err := s.workerRepo.FindByID(id)
	return err
}

func parseDeadline(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range DeadlineLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
