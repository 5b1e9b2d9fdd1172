package utils

import (
	"testing"

	"paylink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := &models.UserClaims{
		UserID:       42,
		Email:        "a@b.com",
		Role:         models.RoleUser,
		IsVerified:   true,
		TokenVersion: 3,
	}

	access, refresh, err := GenerateTokens(claims)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	parsed, err := ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), parsed.UserID)
	assert.Equal(t, models.RoleUser, parsed.Role)
	assert.True(t, parsed.IsVerified)
	assert.Equal(t, 3, parsed.TokenVersion)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	access, _, err := GenerateTokens(&models.UserClaims{UserID: 1})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-two")
	_, err = ParseToken(access)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestGenerateTokensRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, _, err := GenerateTokens(&models.UserClaims{UserID: 1})
	assert.Error(t, err)
}
