package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := DefaultConfig("test-secret", 1)

	token, err := GenerateToken("uid-123", "admin", cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "uid-123", claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("uid-123", "citizen", DefaultConfig("a", 1))
	require.NoError(t, err)

	_, err = ValidateToken(token, "b")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := DefaultConfig("s", 1)
	cfg.AccessExpiry = -time.Minute

	token, err := GenerateToken("uid-123", "citizen", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, "s")
	assert.Error(t, err)
}
