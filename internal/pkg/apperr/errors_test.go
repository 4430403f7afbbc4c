// internal/pkg/apperr/errors_test.go
package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelMatching(t *testing.T) {
	err := NotFound("product %d not found", 42)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "product 42 not found", err.Error())
}

func TestSentinelMatchingThroughWrapping(t *testing.T) {
	inner := OutOfStock("not enough stock")
	wrapped := fmt.Errorf("add item: %w", inner)
	assert.True(t, errors.Is(wrapped, ErrOutOfStock))
	assert.Equal(t, KindOutOfStock, KindOf(wrapped))
}

func TestUpstreamWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream(cause, "failed to retrieve cart")
	assert.True(t, errors.Is(err, ErrUpstream))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "failed to retrieve cart: connection refused", err.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindConflict, KindOf(Conflict("already paid")))
	// Unclassified errors read as upstream failures.
	assert.Equal(t, KindUpstream, KindOf(errors.New("boom")))
}

func TestResultEnvelopes(t *testing.T) {
	ok := OK("order created", map[string]int{"id": 7})
	assert.True(t, ok.Success)
	assert.Equal(t, "order created", ok.Message)
	require.NotNil(t, ok.Data)

	fail := Fail(Validation("quantity must be at least 1"))
	assert.False(t, fail.Success)
	assert.Equal(t, "quantity must be at least 1", fail.Message)
	assert.Nil(t, fail.Data)
}
