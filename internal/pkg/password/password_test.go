package password_test

import (
	"testing"

	"boardinghouse/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.HashPasswordWithCost("password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	require.NoError(t, password.ComparePassword(hash, "password123"))
	require.ErrorIs(t, password.ComparePassword(hash, "wrong-password"), password.ErrComparisonFailed)
	require.ErrorIs(t, password.ComparePassword("", "password123"), password.ErrInvalidPassword)

	_, err = password.HashPassword("")
	require.ErrorIs(t, err, password.ErrInvalidPassword)
}
