package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Deterministic(t *testing.T) {
	salt := []byte("fixed-salt-value")

	h1 := HashPassword([]byte("correct horse"), salt)
	h2 := HashPassword([]byte("correct horse"), salt)

	require.Len(t, h1, argonKeyLen)
	assert.True(t, bytes.Equal(h1, h2))
}

func TestHashPassword_SaltMatters(t *testing.T) {
	h1 := HashPassword([]byte("correct horse"), []byte("salt-1"))
	h2 := HashPassword([]byte("correct horse"), []byte("salt-2"))
	assert.False(t, bytes.Equal(h1, h2))
}

func TestVerifyPassword(t *testing.T) {
	salt := NewSalt()
	require.Len(t, salt, SaltSize)

	hash := HashPassword([]byte("s3cret-pass"), salt)

	assert.True(t, VerifyPassword(hash, salt, []byte("s3cret-pass")))
	assert.False(t, VerifyPassword(hash, salt, []byte("s3cret-pasS")))
	assert.False(t, VerifyPassword(hash, salt, nil))
	assert.False(t, VerifyPassword(nil, salt, []byte("s3cret-pass")))
}
