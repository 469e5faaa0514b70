package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ksbmInfotechOfficial/vscct/internal/domain"
	"github.com/ksbmInfotechOfficial/vscct/pkg/jwtutil"
	"github.com/ksbmInfotechOfficial/vscct/pkg/xerrors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// AdminLogin authenticates a panel account. When no record exists for the
// configured bootstrap email, the admin is seeded on this first login attempt
// and the call proceeds. All failure modes collapse to ErrInvalidCredentials.
func (uc *AuthUsecase) AdminLogin(ctx context.Context, email, password string) (*domain.Admin, jwtutil.TokenPair, error) {
	if email == "" || password == "" {
		return nil, jwtutil.TokenPair{}, xerrors.ErrInvalidRequest
	}
	email = strings.ToLower(email)

	admin, err := uc.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, xerrors.ErrAdminNotFound) {
			return nil, jwtutil.TokenPair{}, err
		}
		if email != strings.ToLower(uc.adminCfg.Email) {
			return nil, jwtutil.TokenPair{}, xerrors.ErrInvalidCredentials
		}
		admin, err = uc.seedBootstrapAdmin(ctx)
		if err != nil {
			return nil, jwtutil.TokenPair{}, err
		}
	}

	if !admin.IsActive {
		return nil, jwtutil.TokenPair{}, xerrors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, jwtutil.TokenPair{}, xerrors.ErrInvalidCredentials
	}

	if err := uc.adminRepo.TouchLastLogin(ctx, admin.ID); err != nil {
		uc.logger.Error("failed to record admin last login", zap.String("admin_id", admin.ID.Hex()), zap.Error(err))
	}

	tokens, err := uc.tokens.GenerateTokens(admin.ID.Hex(), true)
	if err != nil {
		return nil, jwtutil.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	uc.logger.Info("admin logged in", zap.String("admin_id", admin.ID.Hex()))
	return admin, tokens, nil
}

func (uc *AuthUsecase) seedBootstrapAdmin(ctx context.Context) (*domain.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(uc.adminCfg.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	admin := &domain.Admin{
		Email:        uc.adminCfg.Email,
		PasswordHash: string(hash),
		Name:         "Super Admin",
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := uc.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	uc.logger.Info("bootstrap admin seeded", zap.String("email", admin.Email))
	return admin, nil
}
