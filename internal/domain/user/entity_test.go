// internal/domain/user/entity_test.go
package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeforeCreateNormalizesEmailAndRole(t *testing.T) {
	u := &User{Email: "Jane.Doe@Example.COM"}
	require.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, "jane.doe@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
}

func TestBeforeCreateKeepsExplicitRole(t *testing.T) {
	u := &User{Email: "admin@example.com", Role: RoleAdmin}
	require.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, RoleAdmin, u.Role)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}

func TestGetDisplayName(t *testing.T) {
	assert.Equal(t, "Jane", (&User{Name: "Jane", Email: "jane@example.com"}).GetDisplayName())
	assert.Equal(t, "jane@example.com", (&User{Name: "  ", Email: "jane@example.com"}).GetDisplayName())
}
