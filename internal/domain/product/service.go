// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles catalog and product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// SearchResult is one page of catalog results.
type SearchResult struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// CategoryCount is one group in the category aggregation.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// CreateRequest represents product creation data
type CreateRequest struct {
	Name          string   `json:"name" binding:"required"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Category      string   `json:"category" binding:"required"`
	Style         string   `json:"style"`
	Subject       string   `json:"subject"`
	Medium        string   `json:"medium"`
	Material      string   `json:"material"`
	Size          string   `json:"size"`
	Orientation   string   `json:"orientation"`
	Color         string   `json:"color"`
	Author        string   `json:"author"`
	AuthorCountry string   `json:"author_country"`
	Images        []string `json:"images" binding:"required,min=1"`
	PriceCents    int64    `json:"price_cents" binding:"required"`
	Stock         int      `json:"stock"`
	IsFeatured    bool     `json:"is_featured"`
	Banner        string   `json:"banner"`
}

// UpdateRequest represents partial product update data
type UpdateRequest struct {
	Name          *string   `json:"name"`
	Slug          *string   `json:"slug"`
	Description   *string   `json:"description"`
	Category      *string   `json:"category"`
	Style         *string   `json:"style"`
	Subject       *string   `json:"subject"`
	Medium        *string   `json:"medium"`
	Material      *string   `json:"material"`
	Size          *string   `json:"size"`
	Orientation   *string   `json:"orientation"`
	Color         *string   `json:"color"`
	Author        *string   `json:"author"`
	AuthorCountry *string   `json:"author_country"`
	Images        *[]string `json:"images"`
	PriceCents    *int64    `json:"price_cents"`
	Stock         *int      `json:"stock"`
	IsFeatured    *bool     `json:"is_featured"`
	Banner        *string   `json:"banner"`
}

// SearchProducts runs the catalog query: filter, sort, paginate. Read-only.
// TotalPages is computed from the filtered count.
func (s *Service) SearchProducts(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	filters, err := parseSearchRequest(req, s.config.Catalog.PageSize, s.config.Catalog.MaxSearchLimit)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.applyFilters(s.db.WithContext(ctx).Model(&Product{}), filters).Count(&total).Error; err != nil {
		return nil, apperr.Upstream(err, "failed to count products")
	}

	var products []Product
	offset := (filters.page - 1) * filters.limit
	err = s.applyFilters(s.db.WithContext(ctx).Model(&Product{}).Preload("Images", imageOrder), filters).
		Order(OrderClause(filters.sort)).
		Offset(offset).
		Limit(filters.limit).
		Find(&products).Error
	if err != nil {
		return nil, apperr.Upstream(err, "failed to retrieve products")
	}

	return &SearchResult{
		Products:   products,
		Page:       filters.page,
		PageSize:   filters.limit,
		TotalCount: total,
		TotalPages: TotalPages(total, filters.limit),
	}, nil
}

func (s *Service) applyFilters(query *gorm.DB, f *searchFilters) *gorm.DB {
	if f.query != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.query)+"%")
	}
	if f.category != "" {
		query = query.Where("category = ?", f.category)
	}
	if f.style != "" {
		query = query.Where("style = ?", f.style)
	}
	if f.subject != "" {
		query = query.Where("subject = ?", f.subject)
	}
	if f.medium != "" {
		query = query.Where("medium = ?", f.medium)
	}
	if f.material != "" {
		query = query.Where("material = ?", f.material)
	}
	if f.size != "" {
		query = query.Where("size = ?", f.size)
	}
	if f.hasPriceRange {
		query = query.Where("price_cents >= ? AND price_cents <= ?", f.minPriceCents, f.maxPriceCents)
	}
	if f.hasMinRating {
		query = query.Where("rating >= ?", f.minRating)
	}
	return query
}

func imageOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

// GetLatest returns the most recently created products.
func (s *Service) GetLatest(ctx context.Context) ([]Product, error) {
	var products []Product
	err := s.db.WithContext(ctx).
		Preload("Images", imageOrder).
		Order("created_at DESC, id ASC").
		Limit(s.config.Catalog.LatestLimit).
		Find(&products).Error
	if err != nil {
		return nil, apperr.Upstream(err, "failed to retrieve latest products")
	}
	return products, nil
}

// GetFeatured returns featured products, newest first.
func (s *Service) GetFeatured(ctx context.Context) ([]Product, error) {
	var products []Product
	err := s.db.WithContext(ctx).
		Preload("Images", imageOrder).
		Where("is_featured = ?", true).
		Order("created_at DESC, id ASC").
		Limit(s.config.Catalog.FeaturedLimit).
		Find(&products).Error
	if err != nil {
		return nil, apperr.Upstream(err, "failed to retrieve featured products")
	}
	return products, nil
}

// GetByID retrieves a single product by id.
func (s *Service) GetByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	err := s.db.WithContext(ctx).
		Preload("Images", imageOrder).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Upstream(err, "failed to retrieve product")
	}
	return &product, nil
}

// GetBySlug retrieves a single product by slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	var product Product
	err := s.db.WithContext(ctx).
		Preload("Images", imageOrder).
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Upstream(err, "failed to retrieve product")
	}
	return &product, nil
}

// GetCategories returns the category aggregation with product counts.
func (s *Service) GetCategories(ctx context.Context) ([]CategoryCount, error) {
	var counts []CategoryCount
	err := s.db.WithContext(ctx).
		Model(&Product{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("category ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, apperr.Upstream(err, "failed to aggregate categories")
	}
	return counts, nil
}

// Create creates a new product. Admin only; the route layer enforces role.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Product, error) {
	if err := validateClassification(req.Category, req.Style, req.Subject, req.Medium, req.Material, req.Size, req.Orientation, req.Color); err != nil {
		return nil, err
	}
	if req.PriceCents < 0 {
		return nil, apperr.Validation("price must not be negative")
	}
	if req.Stock < 0 {
		return nil, apperr.Validation("stock must not be negative")
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if slug == "" {
		return nil, apperr.Validation("product name yields an empty slug")
	}

	product := Product{
		Name:          req.Name,
		Slug:          slug,
		Description:   req.Description,
		Category:      req.Category,
		Style:         req.Style,
		Subject:       req.Subject,
		Medium:        req.Medium,
		Material:      req.Material,
		Size:          req.Size,
		Orientation:   req.Orientation,
		Color:         req.Color,
		Author:        req.Author,
		AuthorCountry: req.AuthorCountry,
		PriceCents:    req.PriceCents,
		Stock:         req.Stock,
		IsFeatured:    req.IsFeatured,
		Banner:        req.Banner,
	}
	for i, url := range req.Images {
		product.Images = append(product.Images, ProductImage{URL: url, SortOrder: i})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Product
		if err := tx.Where("slug = ?", slug).First(&existing).Error; err == nil {
			return apperr.Conflict("a product with slug %q already exists", slug)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Upstream(err, "failed to check slug uniqueness")
		}

		if err := tx.Create(&product).Error; err != nil {
			return apperr.Upstream(err, "failed to create product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// Update applies a partial update to an existing product.
func (s *Service) Update(ctx context.Context, id uint, req *UpdateRequest) (*Product, error) {
	var product Product

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product not found")
			}
			return apperr.Upstream(err, "failed to find product")
		}

		updates := make(map[string]interface{})

		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Slug != nil {
			if *req.Slug == "" {
				return apperr.Validation("slug must not be empty")
			}
			var other Product
			if err := tx.Where("slug = ? AND id <> ?", *req.Slug, id).First(&other).Error; err == nil {
				return apperr.Conflict("a product with slug %q already exists", *req.Slug)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Upstream(err, "failed to check slug uniqueness")
			}
			updates["slug"] = *req.Slug
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Category != nil {
			if !IsValidCategory(*req.Category) {
				return apperr.Validation("unknown category %q", *req.Category)
			}
			updates["category"] = *req.Category
		}
		if req.Style != nil {
			if *req.Style != "" && !IsValidStyle(*req.Style) {
				return apperr.Validation("unknown style %q", *req.Style)
			}
			updates["style"] = *req.Style
		}
		if req.Subject != nil {
			if *req.Subject != "" && !IsValidSubject(*req.Subject) {
				return apperr.Validation("unknown subject %q", *req.Subject)
			}
			updates["subject"] = *req.Subject
		}
		if req.Medium != nil {
			if *req.Medium != "" && !IsValidMedium(*req.Medium) {
				return apperr.Validation("unknown medium %q", *req.Medium)
			}
			updates["medium"] = *req.Medium
		}
		if req.Material != nil {
			if *req.Material != "" && !IsValidMaterial(*req.Material) {
				return apperr.Validation("unknown material %q", *req.Material)
			}
			updates["material"] = *req.Material
		}
		if req.Size != nil {
			if *req.Size != "" && !IsValidSize(*req.Size) {
				return apperr.Validation("unknown size %q", *req.Size)
			}
			updates["size"] = *req.Size
		}
		if req.Orientation != nil {
			if *req.Orientation != "" && !IsValidOrientation(*req.Orientation) {
				return apperr.Validation("unknown orientation %q", *req.Orientation)
			}
			updates["orientation"] = *req.Orientation
		}
		if req.Color != nil {
			if *req.Color != "" && !IsValidColor(*req.Color) {
				return apperr.Validation("unknown color %q", *req.Color)
			}
			updates["color"] = *req.Color
		}
		if req.Author != nil {
			updates["author"] = *req.Author
		}
		if req.AuthorCountry != nil {
			updates["author_country"] = *req.AuthorCountry
		}
		if req.PriceCents != nil {
			if *req.PriceCents < 0 {
				return apperr.Validation("price must not be negative")
			}
			updates["price_cents"] = *req.PriceCents
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				return apperr.Validation("stock must not be negative")
			}
			updates["stock"] = *req.Stock
		}
		if req.IsFeatured != nil {
			updates["is_featured"] = *req.IsFeatured
		}
		if req.Banner != nil {
			updates["banner"] = *req.Banner
		}

		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return apperr.Upstream(err, "failed to update product")
			}
		}

		// Replace the media list wholesale when images are provided
		if req.Images != nil {
			if len(*req.Images) == 0 {
				return apperr.Validation("product must have at least one image")
			}
			if err := tx.Where("product_id = ?", id).Delete(&ProductImage{}).Error; err != nil {
				return apperr.Upstream(err, "failed to replace product images")
			}
			for i, url := range *req.Images {
				img := ProductImage{ProductID: id, URL: url, SortOrder: i}
				if err := tx.Create(&img).Error; err != nil {
					return apperr.Upstream(err, "failed to replace product images")
				}
			}
		}

		return tx.Preload("Images", imageOrder).First(&product, id).Error
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// Delete soft deletes a product.
func (s *Service) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Product{})
	if result.Error != nil {
		return apperr.Upstream(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("product not found")
	}
	return nil
}

func validateClassification(category, style, subject, medium, material, size, orientation, color string) error {
	if !IsValidCategory(category) {
		return apperr.Validation("unknown category %q", category)
	}
	if style != "" && !IsValidStyle(style) {
		return apperr.Validation("unknown style %q", style)
	}
	if subject != "" && !IsValidSubject(subject) {
		return apperr.Validation("unknown subject %q", subject)
	}
	if medium != "" && !IsValidMedium(medium) {
		return apperr.Validation("unknown medium %q", medium)
	}
	if material != "" && !IsValidMaterial(material) {
		return apperr.Validation("unknown material %q", material)
	}
	if size != "" && !IsValidSize(size) {
		return apperr.Validation("unknown size %q", size)
	}
	if orientation != "" && !IsValidOrientation(orientation) {
		return apperr.Validation("unknown orientation %q", orientation)
	}
	if color != "" && !IsValidColor(color) {
		return apperr.Validation("unknown color %q", color)
	}
	return nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a product name into a URL-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
