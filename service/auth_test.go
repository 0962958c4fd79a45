package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	const key = "mangrove-Lantern-47-quietly-Drifts"

	t.Run("Rejects weak keys", func(t *testing.T) {
		_, err := NewAuthService("password", &memTokenizer{})
		assert.ErrorIs(t, err, ErrWeakKey)
	})

	t.Run("Issues a day long operator token", func(t *testing.T) {
		tokenizer := &memTokenizer{}
		auth, err := NewAuthService(key, tokenizer)
		require.NoError(t, err)

		token, err := auth.IssueToken(key)
		require.NoError(t, err)
		assert.Equal(t, "token", token)
		assert.Equal(t, 24*time.Hour, tokenizer.ttl)
		assert.Equal(t, "operator", tokenizer.claims["role"])
	})

	t.Run("Rejects the wrong key", func(t *testing.T) {
		auth, err := NewAuthService(key, &memTokenizer{})
		require.NoError(t, err)

		_, err = auth.IssueToken("guess")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}
