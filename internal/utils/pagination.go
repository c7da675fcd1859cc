package utils

import (
	"errors"
	"strconv"
)

// ErrInvalidPage is returned for a page that is not a number or is out of range.
var ErrInvalidPage = errors.New("invalid page")

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in responses
type PaginationResponse struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	NumPages    int   `json:"num_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NumPages returns the page count for total items; an empty list still has one page.
func NumPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}

// ResolvePage validates the raw `page` query value against the number of items.
// An empty value means the first page and "last" the final one.
func ResolvePage(raw string, total int64, limit int) (PaginationParams, error) {
	numPages := NumPages(total, limit)

	page := 1
	switch raw {
	case "":
	case "last":
		page = numPages
	default:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return PaginationParams{}, ErrInvalidPage
		}
		page = n
	}

	if page < 1 || page > numPages {
		return PaginationParams{}, ErrInvalidPage
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}, nil
}

// NewPaginationResponse builds the metadata for a resolved page.
func NewPaginationResponse(params PaginationParams, total int64) PaginationResponse {
	numPages := NumPages(total, params.Limit)
	return PaginationResponse{
		Page:        params.Page,
		Limit:       params.Limit,
		Total:       total,
		NumPages:    numPages,
		HasNext:     params.Page < numPages,
		HasPrevious: params.Page > 1,
	}
}
