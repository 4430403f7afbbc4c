// internal/domain/order/entity.go
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is an immutable snapshot of a cart taken at checkout. Only the
// paid/delivered status pairs mutate afterwards, and never by the customer.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`

	PaymentMethod string `gorm:"not null;size:50" json:"payment_method"`

	// Price breakdown in cents, frozen at checkout
	ItemsCents    int64 `gorm:"not null" json:"items_cents"`
	TaxCents      int64 `gorm:"not null" json:"tax_cents"`
	ShippingCents int64 `gorm:"not null" json:"shipping_cents"`
	TotalCents    int64 `gorm:"not null" json:"total_cents"`

	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	IsPaid      bool       `gorm:"not null;default:false" json:"is_paid"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	IsDelivered bool       `gorm:"not null;default:false" json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	PaymentResult PaymentResult `gorm:"embedded;embeddedPrefix:payment_" json:"payment_result"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []Item `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// Item is one frozen order line.
type Item struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrderID        uint      `gorm:"not null;index" json:"order_id"`
	ProductID      uint      `gorm:"not null;index" json:"product_id"`
	Name           string    `gorm:"not null;size:255" json:"name"`
	Slug           string    `gorm:"not null;size:255" json:"slug"`
	Image          string    `gorm:"size:500" json:"image"`
	UnitPriceCents int64     `gorm:"not null" json:"unit_price_cents"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	TotalCents     int64     `gorm:"not null" json:"total_cents"`
	CreatedAt      time.Time `json:"created_at"`
}

// ShippingAddress is embedded in the order snapshot.
type ShippingAddress struct {
	FullName      string `gorm:"size:255" json:"full_name"`
	StreetAddress string `gorm:"size:255" json:"street_address"`
	City          string `gorm:"size:100" json:"city"`
	PostalCode    string `gorm:"size:20" json:"postal_code"`
	Country       string `gorm:"size:100" json:"country"`
}

// PaymentResult records the provider's confirmation callback. The service
// implements no payment protocol; it only stores what the provider reports.
type PaymentResult struct {
	Provider      string     `gorm:"size:50" json:"provider,omitempty"`
	TransactionID string     `gorm:"size:255" json:"transaction_id,omitempty"`
	Status        string     `gorm:"size:50" json:"status,omitempty"`
	PayerEmail    string     `gorm:"size:255" json:"payer_email,omitempty"`
	RecordedAt    *time.Time `json:"recorded_at,omitempty"`
}

// TableName overrides
func (Order) TableName() string { return "orders" }
func (Item) TableName() string  { return "order_items" }

// Validate checks the address for the fields checkout requires.
func (a *ShippingAddress) Validate() error {
	missing := []string{}
	if strings.TrimSpace(a.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(a.StreetAddress) == "" {
		missing = append(missing, "street_address")
	}
	if strings.TrimSpace(a.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		missing = append(missing, "postal_code")
	}
	if strings.TrimSpace(a.Country) == "" {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return fmt.Errorf("shipping address missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// NewOrderNumber generates an order number of the form ART-YYYYMMDD-XXXXXXXX.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("ART-%s-%s", now.Format("20060102"), suffix)
}

// FormattedTotal returns the grand total in whole currency units.
func (o *Order) FormattedTotal() float64 {
	return float64(o.TotalCents) / 100
}
