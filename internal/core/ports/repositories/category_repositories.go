package repositories

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// FindConflictingCategory returns a category other than excludeID that
	// already uses name or accountCode, or nil when there is none.
	FindConflictingCategory(ctx context.Context, name, accountCode, excludeID string) (*domain.Category, error)

	// ListCategories retrieves categories ordered by name.
	ListCategories(ctx context.Context, filter domain.CategoryFilter) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
