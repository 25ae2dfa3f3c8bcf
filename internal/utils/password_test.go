package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong-pass"))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "s3cret-pass"))
}

func TestHashPasswordClampsCost(t *testing.T) {
	// An out-of-range cost must still produce a verifiable hash.
	for _, cost := range []int{-1, 0, 99} {
		hash, err := HashPassword("s3cret-pass", cost)
		require.NoError(t, err)
		assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	}
}
