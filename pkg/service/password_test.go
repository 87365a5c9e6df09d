package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.HashPassword("secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, hasher.VerifyPassword("secret123", hash))
	assert.False(t, hasher.VerifyPassword("wrong", hash))
}

func TestHashPasswordIsSalted(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.HashPassword("secret123")
	require.NoError(t, err)
	second, err := hasher.HashPassword("secret123")
	require.NoError(t, err)

	// Одинаковые пароли дают разные хэши: соль у каждого своя.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.VerifyPassword("secret123", first))
	assert.True(t, hasher.VerifyPassword("secret123", second))
}

func TestVerifyPasswordRejectsBrokenHash(t *testing.T) {
	hasher := NewPasswordHasher()
	assert.False(t, hasher.VerifyPassword("secret123", "это не bcrypt-хэш"))
}
