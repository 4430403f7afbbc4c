// internal/domain/order/service_test.go
package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/artstore-backend/internal/config"
)

func TestIsKnownPaymentMethod(t *testing.T) {
	s := NewService(nil, &config.Config{
		Payment: config.PaymentConfig{
			Methods: []string{"PayPal", "Stripe", "CashOnDelivery"},
		},
	})

	assert.True(t, s.isKnownPaymentMethod("PayPal"))
	assert.True(t, s.isKnownPaymentMethod("CashOnDelivery"))
	assert.False(t, s.isKnownPaymentMethod("paypal"))
	assert.False(t, s.isKnownPaymentMethod("Barter"))
	assert.False(t, s.isKnownPaymentMethod(""))
}
