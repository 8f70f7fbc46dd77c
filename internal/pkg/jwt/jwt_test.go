//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"forget-bot/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)

	token, err := svc.GenerateToken("123456789012345678")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678", claims.Subject)
}

func TestService_ValidateToken(t *testing.T) {
	other, err := jwt.NewService("other-secret", time.Hour).GenerateToken("42")
	require.NoError(t, err)
	expired, err := jwt.NewService("secret", -time.Minute).GenerateToken("42")
	require.NoError(t, err)
	anonymous, err := jwt.NewService("secret", time.Hour).GenerateToken("")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		token    string
		expected error
	}{
		{name: "error: wrong signing key", token: other, expected: jwt.ErrInvalidToken},
		{name: "error: expired", token: expired, expected: jwt.ErrExpiredToken},
		{name: "error: missing subject", token: anonymous, expected: jwt.ErrInvalidToken},
		{name: "error: garbage", token: "not.a.jwt", expected: jwt.ErrInvalidToken},
	}

	svc := jwt.NewService("secret", time.Hour)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tc.token)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}
