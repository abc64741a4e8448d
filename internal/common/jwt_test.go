package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "culturlens", claims.Issuer)
}

func TestValidToken_Garbage(t *testing.T) {
	_, err := ValidToken("not.a.token")
	assert.Error(t, err)
}

func TestValidToken_Empty(t *testing.T) {
	_, err := ValidToken("")
	assert.Error(t, err)
}

func TestValidToken_Tampered(t *testing.T) {
	token, err := GenerateToken(7, "bob")
	require.NoError(t, err)

	_, err = ValidToken(token + "x")
	assert.Error(t, err)
}
