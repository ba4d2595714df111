package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken(
		"user-1", "manager@barocerp.local",
		[]string{"manager"}, []string{"document:sale:post"},
		false,
	)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, expiresAt.After(time.Now()))

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", user.UserID)
	require.Equal(t, "manager@barocerp.local", user.Email)
	require.Equal(t, []string{"manager"}, user.Roles)
	require.Equal(t, []string{"document:sale:post"}, user.Permissions)
	require.False(t, user.IsAdmin)
}

func TestJWT_AdminFlagSurvives(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, _, err := svc.GenerateAccessToken("root", "admin@barocerp.local", nil, nil, true)
	require.NoError(t, err)

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.True(t, user.IsAdmin)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken("user-1", "a@b.c", nil, nil, false)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestJWT_ExpiredRejected(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken("user-1", "a@b.c", nil, nil, false)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestJWT_GarbageRejected(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}
