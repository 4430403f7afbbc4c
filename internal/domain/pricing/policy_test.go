// internal/domain/pricing/policy_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPolicy() *FlatRate {
	return &FlatRate{
		TaxRatePercent:        15,
		ShippingFlatCents:     1000,
		FreeShippingOverCents: 10000,
	}
}

func TestTaxCents(t *testing.T) {
	p := testPolicy()
	assert.Equal(t, int64(0), p.TaxCents(0))
	assert.Equal(t, int64(0), p.TaxCents(-100))
	assert.Equal(t, int64(1500), p.TaxCents(10000))
	// 999 * 15% = 149.85, rounds to 150.
	assert.Equal(t, int64(150), p.TaxCents(999))
	// 10 * 15% = 1.5, rounds half up to 2.
	assert.Equal(t, int64(2), p.TaxCents(10))
}

func TestShippingCents(t *testing.T) {
	p := testPolicy()
	assert.Equal(t, int64(0), p.ShippingCents(0))
	assert.Equal(t, int64(1000), p.ShippingCents(9999))
	assert.Equal(t, int64(0), p.ShippingCents(10000))
	assert.Equal(t, int64(0), p.ShippingCents(25000))
}

func TestCompute(t *testing.T) {
	b := Compute(testPolicy(), 6000)
	assert.Equal(t, int64(6000), b.ItemsCents)
	assert.Equal(t, int64(900), b.TaxCents)
	assert.Equal(t, int64(1000), b.ShippingCents)
	assert.Equal(t, int64(7900), b.TotalCents)
}

func TestComputeFreeShippingThreshold(t *testing.T) {
	b := Compute(testPolicy(), 15000)
	assert.Equal(t, int64(2250), b.TaxCents)
	assert.Equal(t, int64(0), b.ShippingCents)
	assert.Equal(t, int64(17250), b.TotalCents)
}

func TestComputeEmptyCart(t *testing.T) {
	b := Compute(testPolicy(), 0)
	assert.Equal(t, int64(0), b.TaxCents)
	assert.Equal(t, int64(0), b.ShippingCents)
	assert.Equal(t, int64(0), b.TotalCents)
}
