// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents one art piece in the catalog.
// Price is stored in integer cents; rating is the review aggregate.
type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;size:255" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	// Classification dimensions, each from a fixed set
	Category    string `gorm:"not null;size:100;index" json:"category"`
	Style       string `gorm:"size:100;index" json:"style"`
	Subject     string `gorm:"size:100;index" json:"subject"`
	Medium      string `gorm:"size:100;index" json:"medium"`
	Material    string `gorm:"size:100;index" json:"material"`
	Size        string `gorm:"size:50;index" json:"size"`
	Orientation string `gorm:"size:50" json:"orientation"`
	Color       string `gorm:"size:50" json:"color"`

	Author        string `gorm:"size:255" json:"author"`
	AuthorCountry string `gorm:"size:100" json:"author_country"`

	PriceCents int64 `gorm:"not null;check:price_cents >= 0" json:"price_cents"`
	Stock      int   `gorm:"not null;default:0;check:stock >= 0" json:"stock"`

	IsFeatured bool   `gorm:"default:false" json:"is_featured"`
	Banner     string `gorm:"size:500" json:"banner,omitempty"`

	Rating     float64 `gorm:"default:0" json:"rating"`
	NumReviews int     `gorm:"default:0" json:"num_reviews"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Images  []ProductImage `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
	Reviews []Review       `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"reviews,omitempty"`
}

// ProductImage represents one media URL attached to a product. Files live
// on the external upload service; only the public URL is stored.
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"not null;size:500" json:"url"`
	AltText   string    `gorm:"size:255" json:"alt_text"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Review represents a customer review. One review per user per product;
// writes recompute the product's rating aggregate.
type Review struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProductID uint           `gorm:"not null;index:idx_reviews_product_user,unique" json:"product_id"`
	UserID    uint           `gorm:"not null;index:idx_reviews_product_user,unique" json:"user_id"`
	Rating    int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title     string         `gorm:"size:255" json:"title"`
	Comment   string         `gorm:"type:text" json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string      { return "products" }
func (ProductImage) TableName() string { return "product_images" }
func (Review) TableName() string       { return "reviews" }

// Fixed classification sets, from the storefront's constants.
var (
	Categories   = []string{"Painting", "Photography", "Drawing", "Mixed Media", "Sculpture", "Collage", "PrintMaking", "Digital", "Installation"}
	Styles       = []string{"Abstract", "Fine Art", "Abstract Expressionism", "Expresisionism", "Modern", "Figurative"}
	Subjects     = []string{"Abstract", "Landscape", "People", "Animal", "Floral", "Women"}
	Mediums      = []string{"Acrylic", "Oil", "Watercolor", "Ink", "Gesso", "Spray Paint"}
	Materials    = []string{"Canvas", "Paper", "Wood", "Cardboard", "Soft(Yarn, Cotton, Fabric)"}
	Sizes        = []string{"Small", "Medium", "Large", "Oversized"}
	Orientations = []string{"Horizontal", "Vertical", "Square"}
	Colors       = []string{"Blue", "Green", "Yellow", "Pink", "Black", "White"}
)

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

// IsValidCategory reports whether value is a known category.
func IsValidCategory(value string) bool { return contains(Categories, value) }

// IsValidStyle reports whether value is a known style.
func IsValidStyle(value string) bool { return contains(Styles, value) }

// IsValidSubject reports whether value is a known subject.
func IsValidSubject(value string) bool { return contains(Subjects, value) }

// IsValidMedium reports whether value is a known medium.
func IsValidMedium(value string) bool { return contains(Mediums, value) }

// IsValidMaterial reports whether value is a known material.
func IsValidMaterial(value string) bool { return contains(Materials, value) }

// IsValidSize reports whether value is a known size.
func IsValidSize(value string) bool { return contains(Sizes, value) }

// IsValidOrientation reports whether value is a known orientation.
func IsValidOrientation(value string) bool { return contains(Orientations, value) }

// IsValidColor reports whether value is a known color.
func IsValidColor(value string) bool { return contains(Colors, value) }

// Business methods

// IsInStock reports whether any units remain.
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// PrimaryImage returns the first media URL, or the empty string.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// FormattedPrice returns the price in whole currency units.
func (p *Product) FormattedPrice() float64 {
	return float64(p.PriceCents) / 100
}
