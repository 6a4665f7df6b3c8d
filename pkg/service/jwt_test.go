package service

import (
	"testing"
	"time"

	"asset-tracker/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateToken(7, "alice", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, time.Hour, svc.GetSessionTTL())
}

func TestJWTService_Rejects(t *testing.T) {
	t.Run("expired", func(t *testing.T) {
		svc := &jwtService{SecretKey: "secret", SessionExp: time.Hour, now: time.Now}
		svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := svc.GenerateToken(1, "bob", "user")
		require.NoError(t, err)

		svc.now = time.Now
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, errors.ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTService("one", time.Hour).GenerateToken(1, "bob", "user")
		require.NoError(t, err)

		_, err = NewJWTService("two", time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &JwtCustomClaim{UserID: 1})
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = NewJWTService("secret", time.Hour).ValidateToken(raw)
		assert.ErrorIs(t, err, errors.ErrInvalidSigningMethod)
	})
}
