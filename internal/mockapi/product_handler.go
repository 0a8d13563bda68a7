package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shop_client/internal/domain"
	"shop_client/internal/validation"
)

type ProductHandler struct {
	repo      *Repository
	validator *validation.Validator
	log       *logrus.Logger
}

func NewProductHandler(repo *Repository, v *validation.Validator, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{repo: repo, validator: v, log: logger}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/admin/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProductByID)
		products.PUT("/:id", h.ReplaceProduct)
		products.PATCH("/:id", h.UpdateProduct)
		products.PATCH("/:id/stock", h.UpdateStock)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input domain.ProductInput
	if !bindForm(c, h.validator, h.log, &input) {
		return
	}
	if _, err := h.repo.GetCategory(input.CategoryID); err != nil {
		ValidationErrorResponse(c, []domain.FieldError{{Field: "categoryId", Message: "Category does not exist"}})
		return
	}

	product, err := h.repo.SaveProduct(applyProductInput(domain.Product{Status: domain.ProductStatusDraft}, input))
	if err != nil {
		h.log.Errorf("Failed to create product '%s': %v", input.Name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create product: "+err.Error())
		return
	}

	h.log.Infof("Product created successfully: ID %s, Name %s", product.ID, product.Name)
	SuccessResponse(c, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	product, err := h.repo.GetProduct(c.Param("id"))
	if err != nil {
		h.log.Warnf("Failed to get product by ID %s: %v", c.Param("id"), err)
		ErrorResponse(c, mapErrorToStatus(err), "Product not found")
		return
	}
	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, limit := pageParams(c)
	filter := productFilter{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		CategoryID: c.Query("categoryId"),
	}
	products, meta := h.repo.ListProducts(filter, page, limit)
	h.log.Infof("Retrieved %d products (page %d)", len(products), meta.Page)
	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", domain.ProductPage{Products: products, Pagination: meta})
}

func (h *ProductHandler) ReplaceProduct(c *gin.Context) {
	existing, err := h.repo.GetProduct(c.Param("id"))
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Product not found")
		return
	}
	var input domain.ProductInput
	if !bindForm(c, h.validator, h.log, &input) {
		return
	}
	h.save(c, applyProductInput(existing, input))
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	existing, err := h.repo.GetProduct(c.Param("id"))
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Product not found")
		return
	}
	var patch domain.ProductPatch
	if !bindForm(c, h.validator, h.log, &patch) {
		return
	}
	h.save(c, applyProductPatch(existing, patch))
}

type stockInput struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

func (h *ProductHandler) UpdateStock(c *gin.Context) {
	existing, err := h.repo.GetProduct(c.Param("id"))
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Product not found")
		return
	}
	var input stockInput
	if !bindForm(c, h.validator, h.log, &input) {
		return
	}
	existing.Stock = *input.Stock
	h.save(c, existing)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.DeleteProduct(id); err != nil {
		h.log.Warnf("Failed to delete product ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete product: "+err.Error())
		return
	}
	h.log.Infof("Product deleted successfully: ID %s", id)
	SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) save(c *gin.Context, p domain.Product) {
	saved, err := h.repo.SaveProduct(p)
	if err != nil {
		h.log.Errorf("Failed to update product ID %s: %v", p.ID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update product: "+err.Error())
		return
	}
	h.log.Infof("Product updated successfully: ID %s", saved.ID)
	SuccessResponse(c, http.StatusOK, "Product updated successfully", saved)
}

func applyProductInput(p domain.Product, in domain.ProductInput) domain.Product {
	p.Name = in.Name
	p.Slug = in.Slug
	if p.Slug == "" {
		p.Slug = slugify(in.Name)
	}
	p.Description = in.Description
	p.Price = in.Price
	p.SalePrice = in.SalePrice
	p.Stock = in.Stock
	p.SKU = in.SKU
	p.CategoryID = in.CategoryID
	p.StoreID = in.StoreID
	p.Images = in.Images
	if in.Status != "" {
		p.Status = in.Status
	}
	return p
}

func applyProductPatch(p domain.Product, patch domain.ProductPatch) domain.Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.SalePrice != nil {
		p.SalePrice = patch.SalePrice
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.SKU != nil {
		p.SKU = *patch.SKU
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	return p
}
