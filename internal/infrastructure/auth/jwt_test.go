package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "https://id.example.com")

	token, err := svc.Generate("tech-17", []string{"technician"}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "tech-17", claims.Subject)
	assert.Equal(t, []string{"technician"}, claims.Roles)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", "https://id.example.com")

	expired, err := svc.Generate("u1", []string{"admin"}, -time.Minute)
	require.NoError(t, err)

	otherIssuer, err := NewJWTService("test-secret", "https://evil.example.com").Generate("u1", nil, time.Hour)
	require.NoError(t, err)

	otherSecret, err := NewJWTService("other-secret", "https://id.example.com").Generate("u1", nil, time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", Issuer: "https://id.example.com"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://id.example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      expired,
		"wrong issuer": otherIssuer,
		"wrong secret": otherSecret,
		"no expiry":    noExpiry,
		"no subject":   noSubject,
		"garbage":      "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTService_GenerateRequiresSubject(t *testing.T) {
	_, err := NewJWTService("s", "").Generate("", nil, time.Hour)
	assert.Error(t, err)
}
