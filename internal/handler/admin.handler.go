package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ksbmInfotechOfficial/vscct/internal/domain"
	"github.com/ksbmInfotechOfficial/vscct/internal/middleware"
	"github.com/ksbmInfotechOfficial/vscct/internal/repository"
	"github.com/ksbmInfotechOfficial/vscct/internal/usecase"
	"github.com/ksbmInfotechOfficial/vscct/pkg/response"
	"github.com/ksbmInfotechOfficial/vscct/pkg/xerrors"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type AdminHandler struct {
	adminUC *usecase.AdminUsecase
	logger  *zap.Logger
}

func NewAdminHandler(adminUC *usecase.AdminUsecase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{adminUC: adminUC, logger: logger}
}

// GetStats handles GET /api/admin/stats.
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminUC.Stats(r.Context())
	if err != nil {
		h.logger.Error("dashboard stats failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

// GetUsers handles GET /api/admin/users.
func (h *AdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	q := repository.ListUsersQuery{
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 20),
		Search: r.URL.Query().Get("search"),
		State:  r.URL.Query().Get("state"),
		City:   r.URL.Query().Get("city"),
	}

	users, total, err := h.adminUC.ListUsers(r.Context(), q)
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	if users == nil {
		users = []domain.User{}
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"users": users,
		"total": total,
		"page":  q.Page,
		"limit": q.Limit,
	})
}

// GetUser handles GET /api/admin/users/{id}.
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := h.adminUC.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, xerrors.ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("get user failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	response.JSON(w, http.StatusOK, user)
}

type createNotificationRequest struct {
	Title          string                       `json:"title"`
	Body           string                       `json:"body"`
	Image          string                       `json:"image"`
	Data           map[string]any               `json:"data"`
	TargetType     string                       `json:"targetType"`
	TargetUsers    []string                     `json:"targetUsers"`
	TargetLocation *domain.TargetLocationFilter `json:"targetLocation"`
}

// SendNotification handles POST /api/admin/notifications.
func (h *AdminHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.AdminFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req createNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	targets := make([]primitive.ObjectID, 0, len(req.TargetUsers))
	for _, raw := range req.TargetUsers {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid target user id")
			return
		}
		targets = append(targets, id)
	}

	n, err := h.adminUC.CreateNotification(r.Context(), admin.ID, usecase.CreateNotificationInput{
		Title:          req.Title,
		Body:           req.Body,
		Image:          req.Image,
		Data:           req.Data,
		TargetType:     req.TargetType,
		TargetUsers:    targets,
		TargetLocation: req.TargetLocation,
	})
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidRequest) {
			response.Error(w, http.StatusBadRequest, "Title and body required")
			return
		}
		h.logger.Error("create notification failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to send notification")
		return
	}

	response.JSONMessage(w, http.StatusCreated, "Notification sent", n)
}

// GetNotifications handles GET /api/admin/notifications.
func (h *AdminHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	items, total, err := h.adminUC.ListNotifications(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("list notifications failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to load notifications")
		return
	}
	if items == nil {
		items = []domain.Notification{}
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"notifications": items,
		"total":         total,
		"page":          page,
		"limit":         limit,
	})
}

func queryInt(r *http.Request, key string, def int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}
