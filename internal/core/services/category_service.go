package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

type categoryService struct {
	BaseService
	uow   portsrepo.UnitOfWork
	audit *AuditRecorder
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(uow portsrepo.UnitOfWork, audit *AuditRecorder, options ...ServiceOption) portssvc.CategorySvcFacade {
	return &categoryService{
		BaseService: newBaseService(options...),
		uow:         uow,
		audit:       audit,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, actor domain.Actor) (*domain.Category, error) {
	if err := s.Authorize(ctx, actor, domain.ActionManageCategory, nil); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	accountCode := strings.TrimSpace(req.AccountCode)
	if name == "" || accountCode == "" {
		return nil, apperrors.NewValidationError("name and accountCode are required")
	}
	if !req.Type.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown category type %s", req.Type))
	}

	now := s.Now()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        name,
		Type:        req.Type,
		AccountCode: accountCode,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if err := ensureUniqueCategory(ctx, repos, category); err != nil {
			return err
		}
		if err := repos.Categories.SaveCategory(ctx, category); err != nil {
			return err
		}
		return s.audit.Record(ctx, repos.Audit, domain.EntityCategory, category.CategoryID, domain.AuditCreate, actor, map[string]any{
			"name":        category.Name,
			"type":        string(category.Type),
			"accountCode": category.AccountCode,
		})
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID), slog.String("user_id", actor.UserID))
	return &category, nil
}

// UpdateCategory applies a partial update. Turning IsActive off is audited
// as a deactivation.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, actor domain.Actor) (*domain.Category, error) {
	if err := s.Authorize(ctx, actor, domain.ActionManageCategory, nil); err != nil {
		return nil, err
	}

	var updated domain.Category
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		existing, err := repos.Categories.FindCategoryByID(ctx, categoryID)
		if err != nil {
			return err
		}
		category := *existing
		changes := map[string]any{}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.NewValidationError("name must not be empty")
			}
			if name != category.Name {
				changes["name"] = name
				category.Name = name
			}
		}
		if req.AccountCode != nil {
			code := strings.TrimSpace(*req.AccountCode)
			if code == "" {
				return apperrors.NewValidationError("accountCode must not be empty")
			}
			if code != category.AccountCode {
				changes["accountCode"] = code
				category.AccountCode = code
			}
		}
		if req.IsActive != nil && *req.IsActive != category.IsActive {
			changes["isActive"] = *req.IsActive
			category.IsActive = *req.IsActive
		}

		if len(changes) == 0 {
			updated = category
			return nil
		}
		if err := ensureUniqueCategory(ctx, repos, category); err != nil {
			return err
		}

		category.LastUpdatedAt = s.Now()
		category.LastUpdatedBy = actor.UserID
		if err := repos.Categories.UpdateCategory(ctx, category); err != nil {
			return err
		}

		action := domain.AuditUpdate
		if existing.IsActive && !category.IsActive {
			action = domain.AuditDeactivate
		}
		if err := s.audit.Record(ctx, repos.Audit, domain.EntityCategory, category.CategoryID, action, actor, changes); err != nil {
			return err
		}
		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	var category *domain.Category
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		category, err = repos.Categories.FindCategoryByID(ctx, categoryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, params dto.ListCategoriesParams) ([]domain.Category, error) {
	filter := domain.CategoryFilter{ActiveOnly: params.ActiveOnly}
	if params.Type != "" {
		t := domain.CategoryType(params.Type)
		if !t.IsValid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown category type %s", params.Type))
		}
		filter.Type = &t
	}

	var categories []domain.Category
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		categories, err = repos.Categories.ListCategories(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// ensureUniqueCategory rejects a name or account code already used by
// another category.
func ensureUniqueCategory(ctx context.Context, repos portsrepo.Repositories, category domain.Category) error {
	conflict, err := repos.Categories.FindConflictingCategory(ctx, category.Name, category.AccountCode, category.CategoryID)
	if err != nil {
		return err
	}
	if conflict == nil {
		return nil
	}
	field := "name"
	if conflict.AccountCode == category.AccountCode {
		field = "accountCode"
	}
	return apperrors.NewConflictError(apperrors.CodeDuplicate,
		fmt.Sprintf("a category with this %s already exists", field)).
		WithDetails(map[string]any{"field": field, "categoryId": conflict.CategoryID})
}
