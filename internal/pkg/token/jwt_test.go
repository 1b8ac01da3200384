package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockkeeper/internal/domain"
)

var admin = domain.Account{ExternalID: "A1", Username: "root", Role: domain.RoleAdmin}

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour)

	signed, err := svc.GenerateToken(admin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "A1", claims.AccountID)
	assert.Equal(t, "root", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestService_RejectsWrongSecret(t *testing.T) {
	signed, err := NewService("secret", time.Hour).GenerateToken(admin)
	require.NoError(t, err)

	_, err = NewService("other", time.Hour).ValidateToken(signed)
	assert.Error(t, err)
}

func TestService_RejectsExpired(t *testing.T) {
	svc := NewService("secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	signed, err := svc.GenerateToken(admin)
	require.NoError(t, err)

	_, err = NewService("secret", time.Minute).ValidateToken(signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestService_RejectsNoneAlgorithm(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, CustomClaims{Role: domain.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewService("secret", time.Hour).ValidateToken(unsigned)
	assert.Error(t, err)
}
