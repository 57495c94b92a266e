package auth_test

import (
	"testing"
	"time"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/auth"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret: testSecret,
		Issuer:    "tactic-fieldops",
		Audience:  "tactic-portal",
	}
}

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func baseClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":       "User-1",
		"name":      "Jane Field",
		"email":     "jane@acme.example",
		"role":      "super_admin",
		"tenant_id": "acme",
		"iss":       "tactic-fieldops",
		"aud":       "tactic-portal",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
}

func TestJWTValidator_ValidToken(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())

	userCtx, err := validator.ValidateToken(signToken(t, baseClaims(), testSecret))
	require.NoError(t, err)

	// Subject is normalized to lowercase
	assert.Equal(t, "user-1", userCtx.UserID)
	assert.Equal(t, "Jane Field", userCtx.DisplayName)
	assert.Equal(t, "jane@acme.example", userCtx.Email)
	assert.Equal(t, "super_admin", userCtx.Role)
	assert.Equal(t, "acme", userCtx.TenantID)
	assert.True(t, userCtx.IsAdmin())
}

func TestJWTValidator_ClaimFallbacks(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())

	claims := baseClaims()
	delete(claims, "sub")
	delete(claims, "name")
	delete(claims, "email")
	delete(claims, "tenant_id")
	claims["user_id"] = "user-2"
	claims["preferred_username"] = "jane.f"
	claims["upn"] = "jane.f@acme.example"
	claims["tid"] = "acme"

	userCtx, err := validator.ValidateToken(signToken(t, claims, testSecret))
	require.NoError(t, err)
	assert.Equal(t, "user-2", userCtx.UserID)
	assert.Equal(t, "jane.f", userCtx.DisplayName)
	assert.Equal(t, "jane.f@acme.example", userCtx.Email)
	assert.Equal(t, "acme", userCtx.TenantID)
}

func TestJWTValidator_Rejections(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())

	t.Run("expired token", func(t *testing.T) {
		claims := baseClaims()
		claims["exp"] = time.Now().Add(-time.Hour).Unix()

		_, err := validator.ValidateToken(signToken(t, claims, testSecret))
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := validator.ValidateToken(signToken(t, baseClaims(), "other-secret"))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := baseClaims()
		claims["iss"] = "someone-else"

		_, err := validator.ValidateToken(signToken(t, claims, testSecret))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := baseClaims()
		claims["aud"] = "other-app"

		_, err := validator.ValidateToken(signToken(t, claims, testSecret))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := baseClaims()
		delete(claims, "sub")

		_, err := validator.ValidateToken(signToken(t, claims, testSecret))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("missing tenant", func(t *testing.T) {
		claims := baseClaims()
		delete(claims, "tenant_id")

		_, err := validator.ValidateToken(signToken(t, claims, testSecret))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := validator.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("no secret configured", func(t *testing.T) {
		unconfigured := auth.NewJWTValidator(&config.AuthConfig{})
		_, err := unconfigured.ValidateToken(signToken(t, baseClaims(), testSecret))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestJWTValidator_AudienceList(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())

	claims := baseClaims()
	claims["aud"] = []string{"other-app", "tactic-portal"}

	userCtx, err := validator.ValidateToken(signToken(t, claims, testSecret))
	require.NoError(t, err)
	assert.Equal(t, "user-1", userCtx.UserID)
}
