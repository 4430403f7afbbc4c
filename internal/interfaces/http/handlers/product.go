// internal/interfaces/http/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/domain/product"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// ProductHandler handles catalog and admin product endpoints
type ProductHandler struct {
	productService *product.Service
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(db *gorm.DB, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		productService: product.NewService(db, cfg),
		config:         cfg,
	}
}

// GetProducts handles GET /products with filtering, sorting and pagination
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var req product.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.productService.SearchProducts(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Products retrieved successfully", result)
}

// GetLatest handles GET /products/latest
func (h *ProductHandler) GetLatest(c *gin.Context) {
	products, err := h.productService.GetLatest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Latest products retrieved successfully", products)
}

// GetFeatured handles GET /products/featured
func (h *ProductHandler) GetFeatured(c *gin.Context) {
	products, err := h.productService.GetFeatured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Featured products retrieved successfully", products)
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	p, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Product retrieved successfully", p)
}

// GetProductBySlug handles GET /products/slug/:slug
func (h *ProductHandler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	p, err := h.productService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Product retrieved successfully", p)
}

// GetCategories handles GET /products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.productService.GetCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Categories retrieved successfully", categories)
}

// GetFilters handles GET /products/filters and returns the dimension
// values the storefront renders as filter dropdowns
func (h *ProductHandler) GetFilters(c *gin.Context) {
	respondOK(c, "Filters retrieved successfully", gin.H{
		"categories":   product.Categories,
		"styles":       product.Styles,
		"subjects":     product.Subjects,
		"mediums":      product.Mediums,
		"materials":    product.Materials,
		"sizes":        product.Sizes,
		"orientations": product.Orientations,
		"colors":       product.Colors,
		"sorts":        []string{product.SortNewest, product.SortLowest, product.SortHighest, product.SortRating},
	})
}

// AdminCreateProduct handles POST /admin/products
func (h *ProductHandler) AdminCreateProduct(c *gin.Context) {
	var req product.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Product created successfully", p)
}

// AdminUpdateProduct handles PUT /admin/products/:id
func (h *ProductHandler) AdminUpdateProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req product.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := h.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Product updated successfully", p)
}

// AdminDeleteProduct handles DELETE /admin/products/:id
func (h *ProductHandler) AdminDeleteProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Product deleted successfully", nil)
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid %s parameter %q", name, raw)
	}
	return uint(id), nil
}
