// internal/domain/order/entity_test.go
package order

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2025, time.March, 9, 14, 30, 0, 0, time.UTC)
	number := NewOrderNumber(now)

	parts := strings.Split(number, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "ART", parts[0])
	assert.Equal(t, "20250309", parts[1])
	assert.Len(t, parts[2], 8)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])
}

func TestNewOrderNumberIsUnique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := NewOrderNumber(now)
		assert.False(t, seen[number], "duplicate order number %s", number)
		seen[number] = true
	}
}

func TestShippingAddressValidate(t *testing.T) {
	addr := ShippingAddress{
		FullName:      "Jane Doe",
		StreetAddress: "1 Gallery Row",
		City:          "Portland",
		PostalCode:    "97201",
		Country:       "US",
	}
	assert.NoError(t, addr.Validate())
}

func TestShippingAddressValidateReportsMissingFields(t *testing.T) {
	addr := ShippingAddress{FullName: "Jane Doe", City: "  "}
	err := addr.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "street_address")
	assert.Contains(t, err.Error(), "city")
	assert.Contains(t, err.Error(), "postal_code")
	assert.Contains(t, err.Error(), "country")
	assert.NotContains(t, err.Error(), "full_name")
}

func TestFormattedTotal(t *testing.T) {
	o := &Order{TotalCents: 17250}
	assert.Equal(t, 172.50, o.FormattedTotal())
}
