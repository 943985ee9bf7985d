package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	"github.com/chonlathan-cloud/ProjectPRT/internal/models"
	"github.com/chonlathan-cloud/ProjectPRT/internal/utils/mapping"
)

const categoryColumns = `category_id, name, type, account_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	q querier
}

func newPgxCategoryRepository(q querier) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{q: q}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepositoryFacade
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) queryCategories(ctx context.Context, query string, args ...any) ([]models.Category, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	if !validID(categoryID) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("category %s not found", categoryID))
	}
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1`
	rows, err := r.q.Query(ctx, query, categoryID)
	if err != nil {
		return nil, mapError(err, "failed to query category")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("category %s not found", categoryID))
		}
		return nil, mapError(err, "failed to scan category")
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// FindConflictingCategory returns another category already using name or accountCode.
func (r *PgxCategoryRepository) FindConflictingCategory(ctx context.Context, name, accountCode, excludeID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE (name = $1 OR account_code = $2)
		  AND ($3 = '' OR category_id::text <> $3)
		ORDER BY name
		LIMIT 1`
	ms, err := r.queryCategories(ctx, query, name, accountCode, excludeID)
	if err != nil {
		return nil, mapError(err, "failed to query conflicting category")
	}
	if len(ms) == 0 {
		return nil, nil
	}
	category := mapping.ToDomainCategory(ms[0])
	return &category, nil
}

// ListCategories retrieves categories ordered by name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, filter domain.CategoryFilter) ([]domain.Category, error) {
	var conditions []string
	var args []any
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active")
	}

	query := `SELECT ` + categoryColumns + ` FROM categories`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	ms, err := r.queryCategories(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to list categories")
	}
	return mapping.ToDomainCategorySlice(ms), nil
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (category_id, name, type, account_code, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.CategoryID, m.Name, m.Type, m.AccountCode, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("category %s already exists", m.Name))
	}
	return nil
}

// UpdateCategory overwrites the mutable category fields.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		UPDATE categories
		SET name = $2, type = $3, account_code = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE category_id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.CategoryID, m.Name, m.Type, m.AccountCode, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to update category")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("category %s not found", m.CategoryID))
	}
	return nil
}
