// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// Cart is one shopping cart, owned by exactly one identity: either an
// authenticated user id or an anonymous session token, never both.
// Totals are cached and recomputed on every mutation.
type Cart struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"uniqueIndex" json:"user_id,omitempty"`
	// Uniqueness for non-empty session ids is enforced by a partial index
	// created in CreateIndexes; gorm tags cannot express the predicate.
	SessionID string `gorm:"size:64" json:"session_id,omitempty"`

	ItemsCents    int64 `gorm:"not null;default:0" json:"items_cents"`
	TaxCents      int64 `gorm:"not null;default:0" json:"tax_cents"`
	ShippingCents int64 `gorm:"not null;default:0" json:"shipping_cents"`
	TotalCents    int64 `gorm:"not null;default:0" json:"total_cents"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Items []Item `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// Item is one cart line. Product details are denormalized at add-time so
// the cart renders without joins and survives later product edits.
type Item struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CartID         uint      `gorm:"not null;index" json:"cart_id"`
	ProductID      uint      `gorm:"not null;index" json:"product_id"`
	Name           string    `gorm:"not null;size:255" json:"name"`
	Slug           string    `gorm:"not null;size:255" json:"slug"`
	Image          string    `gorm:"size:500" json:"image"`
	UnitPriceCents int64     `gorm:"not null" json:"unit_price_cents"`
	Quantity       int       `gorm:"not null;default:1;check:quantity >= 1" json:"quantity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName overrides
func (Cart) TableName() string { return "carts" }
func (Item) TableName() string { return "cart_items" }

// Owner identifies who a cart belongs to. Exactly one field is set.
type Owner struct {
	UserID    *uint
	SessionID string
}

// UserOwner builds an Owner for an authenticated user.
func UserOwner(userID uint) Owner {
	return Owner{UserID: &userID}
}

// SessionOwner builds an Owner for an anonymous session.
func SessionOwner(sessionID string) Owner {
	return Owner{SessionID: sessionID}
}

// IsValid reports whether exactly one identity is present.
func (o Owner) IsValid() bool {
	if o.UserID != nil {
		return o.SessionID == ""
	}
	return o.SessionID != ""
}

// ItemsSubtotal sums unit price times quantity over the lines.
func ItemsSubtotal(items []Item) int64 {
	var total int64
	for _, item := range items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}
	return total
}
