package services

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

// CategoryReaderSvc defines read operations for category data
type CategoryReaderSvc interface {
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, params dto.ListCategoriesParams) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for category data
type CategoryWriterSvc interface {
	// CreateCategory persists a new active category. Name and account code must be unique.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, actor domain.Actor) (*domain.Category, error)

	// UpdateCategory renames, recodes or (de)activates a category.
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, actor domain.Actor) (*domain.Category, error)
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
