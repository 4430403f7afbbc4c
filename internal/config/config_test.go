// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Host: "localhost", Name: "artstore", User: "postgres"},
		Redis:    RedisConfig{Host: "localhost"},
		JWT:      JWTConfig{Secret: "test-secret-key-for-unit-tests-only-0123456789"},
		Catalog:  CatalogConfig{PageSize: 6},
		Payment: PaymentConfig{
			Methods:       []string{"PayPal", "Stripe", "CashOnDelivery"},
			DefaultMethod: "PayPal",
		},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsShortJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = "too-short"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateRejectsMissingRequiredFields(t *testing.T) {
	breakages := map[string]func(*Config){
		"DB_HOST":           func(c *Config) { c.Database.Host = "" },
		"DB_NAME":           func(c *Config) { c.Database.Name = "" },
		"DB_USER":           func(c *Config) { c.Database.User = "" },
		"REDIS_HOST":        func(c *Config) { c.Redis.Host = "" },
		"APP_PORT":          func(c *Config) { c.Server.Port = "" },
		"CATALOG_PAGE_SIZE": func(c *Config) { c.Catalog.PageSize = 0 },
	}
	for want, breakIt := range breakages {
		cfg := validConfig()
		breakIt(cfg)
		err := cfg.Validate()
		require.Error(t, err, want)
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateRequiresWebhookSecretInProduction(t *testing.T) {
	cfg := validConfig()
	cfg.App.Environment = "production"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_WEBHOOK_SECRET")

	cfg.Payment.StripeWebhookSecret = "whsec_test"
	assert.NoError(t, cfg.Validate())

	// Without Stripe on offer there is nothing to verify.
	cfg.Payment.StripeWebhookSecret = ""
	cfg.Payment.Methods = []string{"PayPal", "CashOnDelivery"}
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownDefaultPaymentMethod(t *testing.T) {
	cfg := validConfig()
	cfg.Payment.DefaultMethod = "Barter"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_PAYMENT_METHOD")
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "development"}}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Environment = "production"
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{
		Host: "db", Port: "5432", Name: "artstore", User: "postgres",
		Password: "secret", SSLMode: "disable",
	}
	dsn := cfg.GetDatabaseDSN()
	assert.Contains(t, dsn, "host=db")
	assert.Contains(t, dsn, "dbname=artstore")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestGetRedisAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Redis = RedisConfig{Host: "cache", Port: "6379"}
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_SLICE", "a, b ,c")

	assert.Equal(t, "value", getEnv("TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", getEnv("TEST_UNSET", "fallback"))
	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 1))
	assert.Equal(t, 1, getEnvAsInt("TEST_STRING", 1))
	assert.True(t, getEnvAsBool("TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, getEnvAsDuration("TEST_DURATION", time.Minute))
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsSlice("TEST_SLICE", nil))
	assert.Equal(t, []string{"x"}, getEnvAsSlice("TEST_UNSET", []string{"x"}))
}
