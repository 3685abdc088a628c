package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, hasher.Compare(hash, "secret123"))
	assert.Error(t, hasher.Compare(hash, "wrong-password"))
}

func TestHashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret123")
	require.NoError(t, err)
	second, err := hasher.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(1000)

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "secret123"))
}
