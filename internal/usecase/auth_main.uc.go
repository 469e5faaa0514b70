package usecase

import (
	"crypto/rand"
	"math/big"

	"github.com/ksbmInfotechOfficial/vscct/internal/config"
	"github.com/ksbmInfotechOfficial/vscct/internal/provider"
	"github.com/ksbmInfotechOfficial/vscct/internal/repository"
	"github.com/ksbmInfotechOfficial/vscct/pkg/jwtutil"

	"go.uber.org/zap"
)

// AuthUsecase owns the OTP lifecycle, login flows and token issuance for both
// principal kinds.
type AuthUsecase struct {
	otpRepo   repository.OtpRepository
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
	sender    provider.OtpSender
	tokens    *jwtutil.Manager
	otpCfg    config.OTPConfig
	adminCfg  config.AdminConfig
	logger    *zap.Logger
}

func NewAuthUsecase(
	otpRepo repository.OtpRepository,
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	sender provider.OtpSender,
	tokens *jwtutil.Manager,
	otpCfg config.OTPConfig,
	adminCfg config.AdminConfig,
	logger *zap.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		otpRepo:   otpRepo,
		userRepo:  userRepo,
		adminRepo: adminRepo,
		sender:    sender,
		tokens:    tokens,
		otpCfg:    otpCfg,
		adminCfg:  adminCfg,
		logger:    logger,
	}
}

// generateCode draws a uniform 6-digit code from [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil
}
