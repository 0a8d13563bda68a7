package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shop_client/internal/domain"
	"shop_client/internal/validation"
)

type CategoryHandler struct {
	repo      *Repository
	validator *validation.Validator
	log       *logrus.Logger
}

func NewCategoryHandler(repo *Repository, v *validation.Validator, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{repo: repo, validator: v, log: logger}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/admin/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.PUT("/reorder", h.ReorderCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input domain.CategoryInput
	if !bindForm(c, h.validator, h.log, &input) {
		return
	}
	category, err := h.repo.SaveCategory(applyCategoryInput(domain.Category{Active: true}, input))
	if err != nil {
		h.log.Errorf("Failed to create category '%s': %v", input.Name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create category: "+err.Error())
		return
	}
	h.log.Infof("Category created successfully: ID %s, Name %s", category.ID, category.Name)
	SuccessResponse(c, http.StatusCreated, "Category created successfully", category)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	category, err := h.repo.GetCategory(c.Param("id"))
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Category not found")
		return
	}
	SuccessResponse(c, http.StatusOK, "Category retrieved successfully", category)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	page, limit := pageParams(c)
	categories, meta := h.repo.ListCategories(page, limit)
	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", domain.CategoryPage{Categories: categories, Pagination: meta})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	existing, err := h.repo.GetCategory(c.Param("id"))
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Category not found")
		return
	}
	var input domain.CategoryInput
	if !bindForm(c, h.validator, h.log, &input) {
		return
	}
	category, err := h.repo.SaveCategory(applyCategoryInput(existing, input))
	if err != nil {
		h.log.Errorf("Failed to update category ID %s: %v", existing.ID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update category: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Category updated successfully", category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.DeleteCategory(id); err != nil {
		h.log.Warnf("Failed to delete category ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete category: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Category deleted successfully", nil)
}

func (h *CategoryHandler) ReorderCategories(c *gin.Context) {
	var input domain.ReorderInput
	if !bindForm(c, h.validator, h.log, &input) {
		return
	}
	if err := h.repo.ReorderCategories(input.IDs); err != nil {
		h.log.Warnf("Failed to reorder categories: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), err.Error())
		return
	}
	h.log.Infof("Reordered %d categories", len(input.IDs))
	SuccessResponse(c, http.StatusOK, "Categories reordered", nil)
}

func applyCategoryInput(cat domain.Category, in domain.CategoryInput) domain.Category {
	cat.Name = in.Name
	cat.Slug = in.Slug
	if cat.Slug == "" {
		cat.Slug = slugify(in.Name)
	}
	cat.ParentID = in.ParentID
	cat.Image = in.Image
	if in.Active != nil {
		cat.Active = *in.Active
	}
	return cat
}
