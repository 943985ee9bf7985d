package dto

import (
	"time"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
type CreateCategoryRequest struct {
	Name        string              `json:"name" binding:"required,max=255"`
	Type        domain.CategoryType `json:"type" binding:"required,oneof=EXPENSE REVENUE ASSET"`
	AccountCode string              `json:"accountCode" binding:"required,max=50"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
// Use pointers to distinguish between zero-value updates and fields not provided.
// The category type is immutable since cases derive their voucher type from it.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	AccountCode *string `json:"accountCode" binding:"omitempty,max=50"`
	IsActive    *bool   `json:"isActive"`
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	Type       string `form:"type" binding:"omitempty,oneof=EXPENSE REVENUE ASSET"`
	ActiveOnly bool   `form:"activeOnly,default=false"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID    string              `json:"categoryId"`
	Name          string              `json:"name"`
	Type          domain.CategoryType `json:"type"`
	AccountCode   string              `json:"accountCode"`
	IsActive      bool                `json:"isActive"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy string              `json:"lastUpdatedBy"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    c.CategoryID,
		Name:          c.Name,
		Type:          c.Type,
		AccountCode:   c.AccountCode,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to a slice of CategoryResponse DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
