package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("longenough1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "longenough1", hash)

	require.True(t, VerifyPassword(hash, "longenough1"))
	require.False(t, VerifyPassword(hash, "wrong"))
}

func TestVerifyPasswordBadHash(t *testing.T) {
	require.False(t, VerifyPassword("not-a-bcrypt-hash", "whatever"))
}
