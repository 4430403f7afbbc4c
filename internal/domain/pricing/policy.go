// internal/domain/pricing/policy.go
package pricing

import (
	"math"

	"github.com/your-org/artstore-backend/internal/config"
)

// Policy computes tax and shipping for a cart or order. All amounts are
// integer cents.
type Policy interface {
	TaxCents(itemsCents int64) int64
	ShippingCents(itemsCents int64) int64
}

// Breakdown is a full price breakdown for a set of line items.
type Breakdown struct {
	ItemsCents    int64 `json:"items_cents"`
	TaxCents      int64 `json:"tax_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// FlatRate is the configured default policy: a flat tax percentage and a
// flat shipping fee waived above a free-shipping threshold.
type FlatRate struct {
	TaxRatePercent        float64
	ShippingFlatCents     int64
	FreeShippingOverCents int64
}

// NewFlatRate builds the flat-rate policy from configuration.
func NewFlatRate(cfg *config.Config) *FlatRate {
	return &FlatRate{
		TaxRatePercent:        cfg.Pricing.TaxRatePercent,
		ShippingFlatCents:     cfg.Pricing.ShippingFlatCents,
		FreeShippingOverCents: cfg.Pricing.FreeShippingOverCents,
	}
}

// TaxCents returns the tax amount, rounded half up to the nearest cent.
func (p *FlatRate) TaxCents(itemsCents int64) int64 {
	if itemsCents <= 0 {
		return 0
	}
	return int64(math.Round(float64(itemsCents) * p.TaxRatePercent / 100))
}

// ShippingCents returns the shipping fee. An empty cart ships nothing;
// carts at or above the threshold ship free.
func (p *FlatRate) ShippingCents(itemsCents int64) int64 {
	if itemsCents <= 0 {
		return 0
	}
	if itemsCents >= p.FreeShippingOverCents {
		return 0
	}
	return p.ShippingFlatCents
}

// Compute applies a policy to an items subtotal.
func Compute(policy Policy, itemsCents int64) Breakdown {
	tax := policy.TaxCents(itemsCents)
	shipping := policy.ShippingCents(itemsCents)
	return Breakdown{
		ItemsCents:    itemsCents,
		TaxCents:      tax,
		ShippingCents: shipping,
		TotalCents:    itemsCents + tax + shipping,
	}
}
