package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager/internal/dto"
	"github.com/yukikurage/task-manager/internal/services"
)

const (
	positionListURL = "/positions/"
	taskTypeListURL = "/task-types/"
)

// CatalogHandler serves positions and task types.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type nameForm struct {
	Name string `form:"name"`
}

// NamePage describes the single field form shared by positions and task types
func (h *CatalogHandler) NamePage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": []string{"name"}})
}

func (h *CatalogHandler) ListPositions(c *gin.Context) {
	page, err := h.catalogService.ListPositions(c.Query("page"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPositionListResponse(page))
}

func (h *CatalogHandler) GetPosition(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	position, err := h.catalogService.GetPosition(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPositionRef(*position))
}

func (h *CatalogHandler) CreatePosition(c *gin.Context) {
	var form nameForm
	if !bindForm(c, &form) {
		return
	}

	if _, err := h.catalogService.CreatePosition(actor(c), services.NameInput{Name: form.Name}); err != nil {
		respondServiceError(c, err)
		return
	}
	redirectTo(c, positionListURL)
}

func (h *CatalogHandler) DeletePosition(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeletePosition(actor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	redirectTo(c, positionListURL)
}

func (h *CatalogHandler) ListTaskTypes(c *gin.Context) {
	page, err := h.catalogService.ListTaskTypes(c.Query("page"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskTypeListResponse(page))
}

func (h *CatalogHandler) GetTaskType(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	taskType, err := h.catalogService.GetTaskType(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskTypeRef(*taskType))
}

func (h *CatalogHandler) CreateTaskType(c *gin.Context) {
	var form nameForm
	if !bindForm(c, &form) {
		return
	}

	if _, err := h.catalogService.CreateTaskType(actor(c), services.NameInput{Name: form.Name}); err != nil {
		respondServiceError(c, err)
		return
	}
	redirectTo(c, taskTypeListURL)
}

func (h *CatalogHandler) DeleteTaskType(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteTaskType(actor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	redirectTo(c, taskTypeListURL)
}
