// internal/domain/payment/service_test.go
package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
)

func TestOrderIDFromMetadata(t *testing.T) {
	id, err := orderIDFromMetadata(map[string]string{"order_id": "42"})
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestOrderIDFromMetadataMissing(t *testing.T) {
	for _, metadata := range []map[string]string{nil, {}, {"order_id": ""}} {
		_, err := orderIDFromMetadata(metadata)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestOrderIDFromMetadataMalformed(t *testing.T) {
	for _, raw := range []string{"abc", "-1", "4.2"} {
		_, err := orderIDFromMetadata(map[string]string{"order_id": raw})
		require.Error(t, err, "raw %q", raw)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "raw %q", raw)
	}
}
