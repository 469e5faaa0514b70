package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ksbmInfotechOfficial/vscct/internal/domain"
	"github.com/ksbmInfotechOfficial/vscct/pkg/jwtutil"
	"github.com/ksbmInfotechOfficial/vscct/pkg/xerrors"

	"go.uber.org/zap"
)

// OtpLoginResult is the outcome of a successful verify-OTP login.
type OtpLoginResult struct {
	User      *domain.User
	IsNewUser bool
	Tokens    jwtutil.TokenPair
}

// SendOtp creates a fresh challenge for the phone, superseding any prior one,
// and delivers it over SMS. In debug mode delivery is skipped and the code is
// returned to the caller instead.
func (uc *AuthUsecase) SendOtp(ctx context.Context, phone string) (string, error) {
	if !domain.ValidPhone(phone) {
		return "", xerrors.ErrInvalidRequest
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}

	challenge := &domain.OtpChallenge{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(uc.otpCfg.Expiry),
		CreatedAt: time.Now(),
	}
	if err := uc.otpRepo.Replace(ctx, challenge); err != nil {
		return "", err
	}

	if uc.otpCfg.Debug {
		uc.logger.Warn("otp debug mode enabled, skipping sms delivery", zap.String("phone", phone))
		return code, nil
	}

	if err := uc.sender.SendOtp(ctx, phone, code); err != nil {
		uc.logger.Error("otp delivery failed", zap.String("phone", phone), zap.Error(err))
		return "", fmt.Errorf("%w: %v", xerrors.ErrOTPDelivery, err)
	}

	uc.logger.Info("otp sent", zap.String("phone", phone))
	return "", nil
}

// VerifyOtp checks the submitted code against the phone's active challenge.
// The challenge is looked up by phone alone so failed guesses are counted;
// after MaxOtpAttempts failures the challenge is burned. A successful verify
// deletes the challenge, making each code single-use.
func (uc *AuthUsecase) VerifyOtp(ctx context.Context, phone, code string) error {
	challenge, err := uc.otpRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return xerrors.ErrInvalidOTP
		}
		return err
	}

	if challenge.Attempts >= domain.MaxOtpAttempts {
		_ = uc.otpRepo.Delete(ctx, challenge.ID)
		return xerrors.ErrTooManyAttempts
	}

	if challenge.Code != code {
		if err := uc.otpRepo.IncrementAttempts(ctx, challenge.ID); err != nil {
			uc.logger.Error("failed to count otp attempt", zap.String("phone", phone), zap.Error(err))
		}
		return xerrors.ErrInvalidOTP
	}

	if challenge.Expired(time.Now()) {
		return xerrors.ErrExpiredOTP
	}

	return uc.otpRepo.Delete(ctx, challenge.ID)
}

// LoginWithOtp verifies the code, then finds or creates the user record for
// the phone and issues a token pair.
func (uc *AuthUsecase) LoginWithOtp(ctx context.Context, phone, code string) (*OtpLoginResult, error) {
	if err := uc.VerifyOtp(ctx, phone, code); err != nil {
		return nil, err
	}

	user, isNew, err := uc.userRepo.FindOrCreate(ctx, phone)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, xerrors.ErrUserInactive
	}

	if err := uc.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		uc.logger.Error("failed to record last login", zap.String("user_id", user.ID.Hex()), zap.Error(err))
	}

	tokens, err := uc.tokens.GenerateTokens(user.ID.Hex(), false)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	uc.logger.Info("user logged in",
		zap.String("user_id", user.ID.Hex()),
		zap.Bool("new_user", isNew))

	return &OtpLoginResult{User: user, IsNewUser: isNew, Tokens: tokens}, nil
}

// Refresh mints a brand-new token pair from a valid refresh token. The old
// refresh token is not tracked server-side and stays valid until its own
// expiry.
func (uc *AuthUsecase) Refresh(refreshToken string) (jwtutil.TokenPair, error) {
	claims, err := uc.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return jwtutil.TokenPair{}, xerrors.ErrInvalidToken
	}
	pair, err := uc.tokens.GenerateTokens(claims.ID, claims.IsAdmin)
	if err != nil {
		return jwtutil.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return pair, nil
}
