package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager/internal/dto"
	"github.com/yukikurage/task-manager/internal/middleware"
	"github.com/yukikurage/task-manager/internal/services"
)

const taskListURL = "/tasks/"

// TaskHandler serves the task pages.
type TaskHandler struct {
	taskService    *services.TaskService
	catalogService *services.CatalogService
	projectService *services.ProjectService
	workerService  *services.WorkerService
	now            func() time.Time
}

func NewTaskHandler(taskService *services.TaskService, catalogService *services.CatalogService, projectService *services.ProjectService, workerService *services.WorkerService) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		catalogService: catalogService,
		projectService: projectService,
		workerService:  workerService,
		now:            time.Now,
	}
}

type taskForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Deadline    string `form:"deadline"`
	Priority    string `form:"priority"`
	TaskType    string `form:"task_type"`
	Project     string `form:"project"`
	Assignee    string `form:"assignee"`
}

func (f taskForm) input() services.TaskInput {
	return services.TaskInput{
		Name:        f.Name,
		Description: f.Description,
		Deadline:    f.Deadline,
		Priority:    f.Priority,
		TaskType:    f.TaskType,
		Project:     f.Project,
		Assignee:    f.Assignee,
	}
}

// choices collects the select options; workers are only listed for the form
func (h *TaskHandler) choices(withWorkers bool) (dto.TaskChoices, error) {
	taskTypes, err := h.catalogService.AllTaskTypes()
	if err != nil {
		return dto.TaskChoices{}, err
	}
	projects, err := h.projectService.AllProjects()
	if err != nil {
		return dto.TaskChoices{}, err
	}

	choices := dto.TaskChoices{
		Priorities: dto.PriorityChoices(),
		TaskTypes:  dto.ToTaskTypeRefs(taskTypes),
		Projects:   dto.ToProjectRefs(projects),
	}
	if withWorkers {
		workers, err := h.workerService.AllWorkers()
		if err != nil {
			return dto.TaskChoices{}, err
		}
		choices.Workers = dto.ToWorkerRefs(workers)
	}
	return choices, nil
}

// ListTasks returns one page of tasks, ordered by deadline
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var search services.TaskSearch
	_ = c.ShouldBindQuery(&search)

	viewer := actor(c)
	page, err := h.taskService.ListTasks(viewer, search, c.Query("page"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	choices, err := h.choices(false)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(page, viewer, h.now(), search, choices))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, actor(c), h.now()))
}

func (h *TaskHandler) CreateTaskPage(c *gin.Context) {
	choices, err := h.choices(true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskFormResponse{Choices: choices})
}

// CreateTask creates a task owned by the current worker. A submitted
// created_by is not part of the form and is dropped.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var form taskForm
	if !bindForm(c, &form) {
		return
	}

	if _, err := h.taskService.CreateTask(actor(c), form.input()); err != nil {
		respondServiceError(c, err)
		return
	}

	redirectTo(c, taskListURL)
}

// TaskFormPage returns the task loaded by RequireTaskAccess with the form
// options. It backs both the update and the delete confirmation pages.
func (h *TaskHandler) TaskFormPage(c *gin.Context) {
	task, ok := middleware.CurrentTask(c)
	if !ok {
		respondServiceError(c, services.ErrTaskNotFound)
		return
	}
	choices, err := h.choices(true)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	taskDTO := dto.ToTaskDTO(*task, actor(c), h.now())
	c.JSON(http.StatusOK, dto.TaskFormResponse{Task: &taskDTO, Choices: choices})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var form taskForm
	if !bindForm(c, &form) {
		return
	}

	if _, err := h.taskService.UpdateTask(actor(c), id, form.input()); err != nil {
		respondServiceError(c, err)
		return
	}

	redirectTo(c, taskListURL)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(actor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	redirectTo(c, taskListURL)
}

// CompleteTask marks the task completed on POST. GET only checks access.
// Both go back to the referring page.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if _, err := h.taskService.CompleteTask(actor(c), id, c.Request.Method == http.MethodPost); err != nil {
		respondServiceError(c, err)
		return
	}

	redirectTo(c, refererPath(c, taskListURL))
}
