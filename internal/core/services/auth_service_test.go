package services

import (
	"context"
	"testing"

	"harambee-sacco/internal/config"
	"harambee-sacco/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*AuthService, *fakeUserRepo, *fakeRefreshTokenRepo) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return NewAuthService(userRepo, tokenRepo, cfg), userRepo, tokenRepo
}

func TestRegisterCreatesMemberAccount(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newAuthService()

	auth, err := svc.Register(ctx, &RegisterInput{
		Username: "wanjiku",
		Email:    "wanjiku@example.com",
		Password: "sacco-pass-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, auth.AccessToken)
	assert.NotEmpty(t, auth.RefreshToken)
	assert.Equal(t, string(domain.RoleMember), auth.User.Role)

	stored, err := userRepo.GetByUsername(ctx, "wanjiku")
	require.NoError(t, err)
	assert.NotEqual(t, "sacco-pass-1", stored.Password, "password must be hashed")
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService()

	input := &RegisterInput{Username: "otieno", Email: "otieno@example.com", Password: "sacco-pass-1"}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterInput{Username: "otieno", Email: "other@example.com", Password: "sacco-pass-1"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, &RegisterInput{Username: "other", Email: "otieno@example.com", Password: "sacco-pass-1"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginVerifiesCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService()

	_, err := svc.Register(ctx, &RegisterInput{Username: "wanjiku", Email: "w@example.com", Password: "sacco-pass-1"})
	require.NoError(t, err)

	auth, err := svc.Login(ctx, &LoginInput{Username: "wanjiku", Password: "sacco-pass-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.AccessToken)

	_, err = svc.Login(ctx, &LoginInput{Username: "wanjiku", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Username: "nobody", Password: "sacco-pass-1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesTokens(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService()

	auth, err := svc.Register(ctx, &RegisterInput{Username: "wanjiku", Email: "w@example.com", Password: "sacco-pass-1"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, auth.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, auth.RefreshToken, rotated.RefreshToken)

	// The old token is revoked by rotation
	_, err = svc.Refresh(ctx, auth.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService()

	auth, err := svc.Register(ctx, &RegisterInput{Username: "wanjiku", Email: "w@example.com", Password: "sacco-pass-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, auth.RefreshToken))

	_, err = svc.Refresh(ctx, auth.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
