package usecase

import (
	"context"
	"testing"

	"github.com/ksbmInfotechOfficial/vscct/internal/config"
	"github.com/ksbmInfotechOfficial/vscct/internal/domain"
	"github.com/ksbmInfotechOfficial/vscct/pkg/xerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminLogin_BootstrapSeedsOnFirstAttempt(t *testing.T) {
	f := newAuthFixture(t, config.OTPConfig{})
	ctx := context.Background()

	require.Empty(t, f.admins.admins)

	admin, tokens, err := f.uc.AdminLogin(ctx, "Admin@VSSCT.com", "Ksbm@12345")
	require.NoError(t, err)

	assert.Equal(t, "admin@vssct.com", admin.Email)
	assert.Equal(t, domain.RoleSuperAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	require.Len(t, f.admins.admins, 1, "record created on the same call")

	claims, err := f.tokens.VerifyAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.Hex(), claims.ID)
	assert.True(t, claims.IsAdmin)

	// Subsequent logins reuse the seeded record.
	again, _, err := f.uc.AdminLogin(ctx, "admin@vssct.com", "Ksbm@12345")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
	require.Len(t, f.admins.admins, 1)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(t, config.OTPConfig{})
	ctx := context.Background()

	_, _, err := f.uc.AdminLogin(ctx, "admin@vssct.com", "Ksbm@12345")
	require.NoError(t, err)

	_, _, err = f.uc.AdminLogin(ctx, "admin@vssct.com", "wrong-password")
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)
}

func TestAdminLogin_UnknownEmailDoesNotSeed(t *testing.T) {
	f := newAuthFixture(t, config.OTPConfig{})

	_, _, err := f.uc.AdminLogin(context.Background(), "someone@else.com", "whatever")
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)
	assert.Empty(t, f.admins.admins)
}

func TestAdminLogin_InactiveAdmin(t *testing.T) {
	f := newAuthFixture(t, config.OTPConfig{})
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, f.admins.Create(ctx, &domain.Admin{
		Email:        "ops@vssct.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     false,
	}))

	_, _, err = f.uc.AdminLogin(ctx, "ops@vssct.com", "secret123")
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)
}

func TestAdminLogin_MissingFields(t *testing.T) {
	f := newAuthFixture(t, config.OTPConfig{})

	_, _, err := f.uc.AdminLogin(context.Background(), "", "password")
	assert.ErrorIs(t, err, xerrors.ErrInvalidRequest)

	_, _, err = f.uc.AdminLogin(context.Background(), "admin@vssct.com", "")
	assert.ErrorIs(t, err, xerrors.ErrInvalidRequest)
}
