package dto

import (
	"github.com/yukikurage/task-manager/internal/models"
	"github.com/yukikurage/task-manager/internal/services"
	"github.com/yukikurage/task-manager/internal/utils"
)

// CatalogListResponse represents a paginated list of positions or task types
type CatalogListResponse struct {
	Items      []RefDTO                 `json:"items"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func ToPositionListResponse(page *services.Page[models.Position]) CatalogListResponse {
	return CatalogListResponse{
		Items:      ToPositionRefs(page.Items),
		Pagination: page.Pagination,
	}
}

func ToTaskTypeListResponse(page *services.Page[models.TaskType]) CatalogListResponse {
	return CatalogListResponse{
		Items:      ToTaskTypeRefs(page.Items),
		Pagination: page.Pagination,
	}
}
