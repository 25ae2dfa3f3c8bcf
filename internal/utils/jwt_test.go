package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessToken(t *testing.T) {
	const secret = "test-secret"

	t.Run("round trip preserves subject and role", func(t *testing.T) {
		at, err := NewAccessToken(secret, "u-123", "staff", 15)
		require.NoError(t, err)
		require.NotEmpty(t, at.Token)
		assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

		tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		require.NoError(t, err)
		require.True(t, tok.Valid)

		claims := tok.Claims.(jwt.MapClaims)
		assert.Equal(t, "u-123", claims["sub"])
		assert.Equal(t, "staff", claims["role"])
	})

	t.Run("wrong secret fails verification", func(t *testing.T) {
		at, err := NewAccessToken(secret, "u-123", "user", 15)
		require.NoError(t, err)

		_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
			return []byte("other-secret"), nil
		})
		assert.Error(t, err)
	})

	t.Run("expired token fails validation", func(t *testing.T) {
		at, err := NewAccessToken(secret, "u-123", "user", -1)
		require.NoError(t, err)

		tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		assert.Error(t, err)
		if tok != nil {
			assert.False(t, tok.Valid)
		}
	})
}
