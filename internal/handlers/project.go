package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager/internal/dto"
	"github.com/yukikurage/task-manager/internal/services"
)

const projectListURL = "/projects/"

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type projectForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
}

func (f projectForm) input() services.ProjectInput {
	return services.ProjectInput{Name: f.Name, Description: f.Description}
}

// ListProjects returns one page of projects with their worker and task counts
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var search services.ProjectSearch
	_ = c.ShouldBindQuery(&search)

	page, err := h.projectService.ListProjects(search, c.Query("page"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(page, search))
}

// GetProject returns a project; the delete confirmation page shows the same data
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProjectPage describes the project form
func (h *ProjectHandler) CreateProjectPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": []string{"name", "description"}})
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var form projectForm
	if !bindForm(c, &form) {
		return
	}

	if _, err := h.projectService.CreateProject(actor(c), form.input()); err != nil {
		respondServiceError(c, err)
		return
	}

	redirectTo(c, projectListURL)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var form projectForm
	if !bindForm(c, &form) {
		return
	}

	if _, err := h.projectService.UpdateProject(actor(c), id, form.input()); err != nil {
		respondServiceError(c, err)
		return
	}

	redirectTo(c, projectListURL)
}

// DeleteProject deletes the project and its tasks
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(actor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	redirectTo(c, projectListURL)
}
