package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ksbmInfotechOfficial/vscct/internal/usecase"
	"github.com/ksbmInfotechOfficial/vscct/pkg/response"
	"github.com/ksbmInfotechOfficial/vscct/pkg/xerrors"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authUC *usecase.AuthUsecase
	logger *zap.Logger
}

func NewAuthHandler(authUC *usecase.AuthUsecase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authUC: authUC, logger: logger}
}

type sendOtpRequest struct {
	Phone string `json:"phone"`
}

type verifyOtpRequest struct {
	Phone string `json:"phone"`
	Otp   string `json:"otp"`
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SendOtp handles POST /api/auth/send-otp.
func (h *AuthHandler) SendOtp(w http.ResponseWriter, r *http.Request) {
	var req sendOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	debugCode, err := h.authUC.SendOtp(r.Context(), req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrInvalidRequest):
			response.Error(w, http.StatusBadRequest, "Valid 10-digit phone required")
		case errors.Is(err, xerrors.ErrOTPDelivery):
			response.Error(w, http.StatusBadGateway, "Failed to send OTP")
		default:
			h.logger.Error("send otp failed", zap.Error(err))
			response.Error(w, http.StatusInternalServerError, "Failed to send OTP")
		}
		return
	}

	var data map[string]string
	if debugCode != "" {
		// Debug mode only: the code comes back instead of going out by SMS.
		data = map[string]string{"otp": debugCode}
	}
	response.JSONMessage(w, http.StatusOK, "OTP sent successfully", data)
}

// VerifyOtp handles POST /api/auth/verify-otp.
func (h *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req verifyOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Phone == "" || req.Otp == "" {
		response.Error(w, http.StatusBadRequest, "Phone and OTP required")
		return
	}

	result, err := h.authUC.LoginWithOtp(r.Context(), req.Phone, req.Otp)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrExpiredOTP):
			response.Error(w, http.StatusBadRequest, "OTP expired")
		case errors.Is(err, xerrors.ErrTooManyAttempts):
			response.Error(w, http.StatusBadRequest, "Too many attempts")
		case errors.Is(err, xerrors.ErrInvalidOTP):
			response.Error(w, http.StatusBadRequest, "Invalid OTP")
		case errors.Is(err, xerrors.ErrUserInactive):
			response.Error(w, http.StatusUnauthorized, "Account inactive")
		default:
			h.logger.Error("verify otp failed", zap.Error(err))
			response.Error(w, http.StatusInternalServerError, "Verification failed")
		}
		return
	}

	response.JSONMessage(w, http.StatusOK, "Login successful", map[string]any{
		"user":         userSummary(result.User),
		"isNewUser":    result.IsNewUser,
		"accessToken":  result.Tokens.AccessToken,
		"refreshToken": result.Tokens.RefreshToken,
	})
}

// AdminLogin handles POST /api/auth/admin/login.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Email and password required")
		return
	}

	admin, tokens, err := h.authUC.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrInvalidRequest):
			response.Error(w, http.StatusBadRequest, "Email and password required")
		case errors.Is(err, xerrors.ErrInvalidCredentials):
			response.Error(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			h.logger.Error("admin login failed", zap.Error(err))
			response.Error(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	response.JSONMessage(w, http.StatusOK, "Admin login successful", map[string]any{
		"admin": map[string]any{
			"id":    admin.ID.Hex(),
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		},
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// RefreshToken handles POST /api/auth/refresh-token.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		response.Error(w, http.StatusBadRequest, "Refresh token required")
		return
	}

	tokens, err := h.authUC.Refresh(req.RefreshToken)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	response.JSON(w, http.StatusOK, tokens)
}
