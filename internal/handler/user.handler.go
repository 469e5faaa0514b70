package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ksbmInfotechOfficial/vscct/internal/domain"
	"github.com/ksbmInfotechOfficial/vscct/internal/middleware"
	"github.com/ksbmInfotechOfficial/vscct/internal/usecase"
	"github.com/ksbmInfotechOfficial/vscct/pkg/response"
	"github.com/ksbmInfotechOfficial/vscct/pkg/xerrors"

	"go.uber.org/zap"
)

type UserHandler struct {
	userUC *usecase.UserUsecase
	logger *zap.Logger
}

func NewUserHandler(userUC *usecase.UserUsecase, logger *zap.Logger) *UserHandler {
	return &UserHandler{userUC: userUC, logger: logger}
}

// userSummary is the compact user view returned by login responses.
func userSummary(u *domain.User) map[string]any {
	return map[string]any{
		"id":                u.ID.Hex(),
		"phone":             u.Phone,
		"name":              u.Name,
		"avatar":            u.Avatar,
		"isProfileComplete": u.IsProfileComplete,
	}
}

type updateProfileRequest struct {
	Name        *string         `json:"name"`
	DateOfBirth *string         `json:"dateOfBirth"`
	Gender      *string         `json:"gender"`
	Caste       *string         `json:"caste"`
	Avatar      *string         `json:"avatar"`
	Address     *domain.Address `json:"address"`
}

type fcmTokenRequest struct {
	Token string `json:"token"`
}

// GetProfile handles GET /api/user/profile.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	response.JSON(w, http.StatusOK, u)
}

// UpdateProfile handles PUT /api/user/profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := usecase.UpdateProfileInput{
		Name:    req.Name,
		Gender:  req.Gender,
		Caste:   req.Caste,
		Avatar:  req.Avatar,
		Address: req.Address,
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid date of birth")
			return
		}
		input.DateOfBirth = &dob
	}

	updated, err := h.userUC.UpdateProfile(r.Context(), u.ID, input)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidRequest) {
			response.Error(w, http.StatusBadRequest, "Invalid profile data")
			return
		}
		h.logger.Error("update profile failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	response.JSONMessage(w, http.StatusOK, "Profile updated", updated)
}

// UpdateFcmToken handles POST /api/user/fcm-token.
func (h *UserHandler) UpdateFcmToken(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req fcmTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.userUC.AddFcmToken(r.Context(), u.ID, req.Token); err != nil {
		if errors.Is(err, xerrors.ErrInvalidRequest) {
			response.Error(w, http.StatusBadRequest, "Token required")
			return
		}
		h.logger.Error("store fcm token failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to save token")
		return
	}

	response.JSONMessage(w, http.StatusOK, "Token saved", nil)
}

// parseDate accepts both date-only and full RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
