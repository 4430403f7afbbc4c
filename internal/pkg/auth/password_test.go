// internal/pkg/auth/password_test.go
package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/artstore-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func testPasswordManager() *PasswordManager {
	return NewPasswordManager(&config.Config{
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	})
}

func TestHashAndVerifyPassword(t *testing.T) {
	pm := testPasswordManager()

	hash, err := pm.HashPassword("sunlit42meadow")
	require.NoError(t, err)
	assert.NotEqual(t, "sunlit42meadow", hash)

	assert.NoError(t, pm.VerifyPassword("sunlit42meadow", hash))
	assert.Error(t, pm.VerifyPassword("wrong42password", hash))
}

func TestHashPasswordRejectsWeakPasswords(t *testing.T) {
	pm := testPasswordManager()
	_, err := pm.HashPassword("short1")
	assert.Error(t, err)
}

func TestValidatePassword(t *testing.T) {
	pm := testPasswordManager()

	assert.NoError(t, pm.ValidatePassword("abcdefg1"))
	assert.NoError(t, pm.ValidatePassword("Str0ngEnough"))

	assert.Error(t, pm.ValidatePassword("abc1"), "too short")
	assert.Error(t, pm.ValidatePassword(strings.Repeat("a1", 65)), "too long")
	assert.Error(t, pm.ValidatePassword("lettersonly"), "no digits")
	assert.Error(t, pm.ValidatePassword("12345678"), "no letters")
}
