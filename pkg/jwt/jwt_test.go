package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", 15, 72)

	token, err := m.GenerateAccessToken("user-1", "u@example.com", "teacher")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, "teacher", claims.Role)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	m := NewManager("secret", 15, 72)

	access, err := m.GenerateAccessToken("user-1", "u@example.com", "student")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", 15, 72).GenerateAccessToken("user-1", "u@example.com", "admin")
	require.NoError(t, err)

	_, err = NewManager("secret-b", 15, 72).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	m := NewManager("secret", -1, 72)

	token, err := m.GenerateAccessToken("user-1", "u@example.com", "student")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}
