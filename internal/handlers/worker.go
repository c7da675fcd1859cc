package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager/internal/dto"
	"github.com/yukikurage/task-manager/internal/services"
)

const (
	workerListURL = "/workers/"
	profileURL    = "/my-profile/"
)

// WorkerHandler serves the worker pages and the profile of the current worker.
type WorkerHandler struct {
	workerService  *services.WorkerService
	catalogService *services.CatalogService
	projectService *services.ProjectService
}

func NewWorkerHandler(workerService *services.WorkerService, catalogService *services.CatalogService, projectService *services.ProjectService) *WorkerHandler {
	return &WorkerHandler{
		workerService:  workerService,
		catalogService: catalogService,
		projectService: projectService,
	}
}

type workerForm struct {
	Username  string `form:"username"`
	Position  string `form:"position"`
	Project   string `form:"project"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email"`
}

func (f workerForm) input() services.WorkerInput {
	return services.WorkerInput{
		Username:  f.Username,
		Position:  f.Position,
		Project:   f.Project,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	}
}

type createWorkerForm struct {
	workerForm
	Password1 string `form:"password1"`
	Password2 string `form:"password2"`
}

func (h *WorkerHandler) choices() (dto.WorkerChoices, error) {
	positions, err := h.catalogService.AllPositions()
	if err != nil {
		return dto.WorkerChoices{}, err
	}
	projects, err := h.projectService.AllProjects()
	if err != nil {
		return dto.WorkerChoices{}, err
	}
	return dto.WorkerChoices{
		Positions: dto.ToPositionRefs(positions),
		Projects:  dto.ToProjectRefs(projects),
	}, nil
}

// ListWorkers returns one page of workers with their open task counts
func (h *WorkerHandler) ListWorkers(c *gin.Context) {
	var search services.WorkerSearch
	_ = c.ShouldBindQuery(&search)

	page, err := h.workerService.ListWorkers(search, c.Query("page"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	choices, err := h.choices()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerListResponse(page, search, choices))
}

func (h *WorkerHandler) GetWorker(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	worker, err := h.workerService.GetWorker(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerDTO(*worker))
}

// CreateWorkerPage returns the select options of an empty worker form
func (h *WorkerHandler) CreateWorkerPage(c *gin.Context) {
	choices, err := h.choices()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WorkerFormResponse{Choices: choices})
}

func (h *WorkerHandler) CreateWorker(c *gin.Context) {
	var form createWorkerForm
	if !bindForm(c, &form) {
		return
	}

	_, err := h.workerService.CreateWorker(actor(c), services.CreateWorkerInput{
		WorkerInput: form.input(),
		Password1:   form.Password1,
		Password2:   form.Password2,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	redirectTo(c, workerListURL)
}

// UpdateWorkerPage returns the worker with the form options
func (h *WorkerHandler) UpdateWorkerPage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	worker, err := h.workerService.GetWorker(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.respondForm(c, dto.ToWorkerDTO(*worker))
}

func (h *WorkerHandler) UpdateWorker(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var form workerForm
	if !bindForm(c, &form) {
		return
	}

	if _, err := h.workerService.UpdateWorker(actor(c), id, form.input()); err != nil {
		respondServiceError(c, err)
		return
	}

	redirectTo(c, workerListURL)
}

// DeleteWorker deletes the worker; their tasks lose the assignee or creator
func (h *WorkerHandler) DeleteWorker(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.workerService.DeleteWorker(actor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	redirectTo(c, workerListURL)
}

// Profile shows the current worker with the form options
func (h *WorkerHandler) Profile(c *gin.Context) {
	worker, err := h.workerService.GetWorker(actor(c).ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.respondForm(c, dto.ToWorkerDTO(*worker))
}

func (h *WorkerHandler) UpdateProfile(c *gin.Context) {
	var form workerForm
	if !bindForm(c, &form) {
		return
	}

	if _, err := h.workerService.UpdateProfile(actor(c), form.input()); err != nil {
		respondServiceError(c, err)
		return
	}

	redirectTo(c, profileURL)
}

func (h *WorkerHandler) respondForm(c *gin.Context, worker dto.WorkerDTO) {
	choices, err := h.choices()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WorkerFormResponse{Worker: &worker, Choices: choices})
}
