// internal/interfaces/http/middleware/cors_test.go
package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOriginAllowedExactMatch(t *testing.T) {
	allowed := []string{"https://shop.example.com", "http://localhost:3000"}

	assert.True(t, isOriginAllowed("https://shop.example.com", allowed))
	assert.True(t, isOriginAllowed("http://localhost:3000", allowed))
	assert.False(t, isOriginAllowed("https://other.example.com", allowed))
	assert.False(t, isOriginAllowed("", allowed))
}

func TestIsOriginAllowedWildcardAll(t *testing.T) {
	assert.True(t, isOriginAllowed("https://anywhere.test", []string{"*"}))
	assert.False(t, isOriginAllowed("", []string{"*"}))
}

func TestIsOriginAllowedWildcardSubdomain(t *testing.T) {
	allowed := []string{"*.example.com"}

	assert.True(t, isOriginAllowed("https://app.example.com", allowed))
	assert.True(t, isOriginAllowed("https://deep.nested.example.com", allowed))

	// A lookalike domain must not pass the subdomain wildcard.
	assert.False(t, isOriginAllowed("https://evilexample.com", allowed))
	// Nor does the bare apex; list it explicitly when wanted.
	assert.False(t, isOriginAllowed("https://example.com", allowed))
}
