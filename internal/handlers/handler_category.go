package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
	"github.com/chonlathan-cloud/ProjectPRT/internal/middleware"
)

// categoryHandler handles HTTP requests related to the chart of categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

// newCategoryHandler creates a new categoryHandler.
func newCategoryHandler(cs portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{categoryService: cs}
}

// registerCategoryRoutes registers routes related to categories.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.GET("/:categoryID", h.getCategory)
		categories.PATCH("/:categoryID", h.updateCategory)
	}
}

// actorFromContext returns the authenticated caller or writes a 401.
func actorFromContext(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok || actor.UserID == "" {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized"), "authenticate")
		return domain.Actor{}, false
	}
	return actor, true
}

// listCategories godoc
// @Summary List categories
// @Description Lists categories ordered by name, optionally filtered by type and active flag
// @Tags categories
// @Produce json
// @Param type query string false "EXPENSE, REVENUE or ASSET"
// @Param activeOnly query bool false "Only active categories"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.CategoryResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	var params dto.ListCategoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	categories, err := h.categoryService.ListCategories(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list categories")
		return
	}
	respondOK(c, http.StatusOK, dto.ToListCategoryResponse(categories))
}

// createCategory godoc
// @Summary Create a category
// @Description Creates an active category. Name and account code must be unique.
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.SuccessResponse{data=dto.CategoryResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Duplicate name or account code"
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "create category")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Category created", slog.String("category_id", category.CategoryID))
	respondOK(c, http.StatusCreated, dto.ToCategoryResponse(category))
}

// getCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.CategoryResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID} [get]
func (h *categoryHandler) getCategory(c *gin.Context) {
	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), c.Param("categoryID"))
	if err != nil {
		respondError(c, err, "get category")
		return
	}
	respondOK(c, http.StatusOK, dto.ToCategoryResponse(category))
}

// updateCategory godoc
// @Summary Update a category
// @Description Renames, recodes, deactivates or reactivates a category
// @Tags categories
// @Accept json
// @Produce json
// @Param categoryID path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} dto.SuccessResponse{data=dto.CategoryResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID} [patch]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("categoryID"), req, actor)
	if err != nil {
		respondError(c, err, "update category")
		return
	}
	respondOK(c, http.StatusOK, dto.ToCategoryResponse(category))
}
