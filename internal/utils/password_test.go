package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("senha123")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword("senha123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("senha-errada", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("senha123", "not-a-hash")
	assert.Error(t, err)
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("senha123")
	require.NoError(t, err)
	second, err := HashPassword("senha123")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
