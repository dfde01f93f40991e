package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("pw1")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "pw1", hash)

	assert.True(t, hasher.Verify("pw1", hash))
	assert.False(t, hasher.Verify("pw2", hash))
	assert.False(t, hasher.Verify("", hash))
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("same-password")
	assert.NoError(t, err)
	second, err := hasher.Hash("same-password")
	assert.NoError(t, err)

	// Each hash carries its own salt; both still verify.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("same-password", first))
	assert.True(t, hasher.Verify("same-password", second))
}

func TestBcryptHasher_VerifyGarbageHash(t *testing.T) {
	hasher := NewBcryptHasher()
	assert.False(t, hasher.Verify("pw1", "not-a-bcrypt-hash"))
}
