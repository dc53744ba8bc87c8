package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Lparksi/vikunja-1/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page    int
	PerPage int
	Offset  int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

// GetPaginationParams extracts and validates pagination parameters from the
// request. Pages are 1-indexed; per_page is clamped to 1..100 with a default
// of 50.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPage)))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPage {
		page = constants.MinPage
	}
	if perPage < 1 || perPage > constants.MaxPageSize {
		perPage = constants.DefaultPageSize
	}

	offset := (page - 1) * perPage

	return PaginationParams{
		Page:    page,
		PerPage: perPage,
		Offset:  offset,
	}
}
