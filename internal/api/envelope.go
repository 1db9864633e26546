package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mealmuse/backend/internal/model"
)

// PagedResponse is the envelope every paged endpoint returns.
type PagedResponse struct {
	TotalCount  int64          `json:"totalCount"`
	Items       []model.Recipe `json:"items"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

// RelatedResponse wraps the non-paged related-recipes candidate set.
type RelatedResponse struct {
	Items []model.Recipe `json:"items"`
}

// NewPagedResponse wraps one page of results with pagination metadata.
// totalPages is ceil(totalCount/limit), 0 when nothing matched.
func NewPagedResponse(items []model.Recipe, totalCount int64, page, limit int) PagedResponse {
	if items == nil {
		items = []model.Recipe{}
	}
	totalPages := 0
	if totalCount > 0 {
		totalPages = int((totalCount + int64(limit) - 1) / int64(limit))
	}
	return PagedResponse{
		TotalCount:  totalCount,
		Items:       items,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}

func messageBody(message string) gin.H {
	return gin.H{"message": message}
}

func storeErrorBody(message string, err error) gin.H {
	return gin.H{"message": message, "error": err.Error()}
}
