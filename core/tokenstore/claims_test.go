package tokenstore_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurogrid/storefront/core/tokenstore"
)

func TestInspect(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user@example.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	c, ok := tokenstore.Inspect(signed)
	require.True(t, ok)
	assert.Equal(t, "user@example.com", c.Subject)
	assert.True(t, exp.Equal(c.ExpiresAt))

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	_, ok = tokenstore.Inspect(expired)
	assert.True(t, ok, "expiry is reported, not enforced")

	_, ok = tokenstore.Inspect("opaque-token")
	assert.False(t, ok)
}
