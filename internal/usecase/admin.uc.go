package usecase

import (
	"context"
	"time"

	"github.com/ksbmInfotechOfficial/vscct/internal/domain"
	"github.com/ksbmInfotechOfficial/vscct/internal/repository"
	"github.com/ksbmInfotechOfficial/vscct/pkg/xerrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type AdminUsecase struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

func NewAdminUsecase(
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	logger *zap.Logger,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// DashboardStats is the admin landing-page aggregate.
type DashboardStats struct {
	TotalUsers         int64                   `json:"totalUsers"`
	ActiveUsers        int64                   `json:"activeUsers"`
	CompleteProfiles   int64                   `json:"completeProfiles"`
	TotalNotifications int64                   `json:"totalNotifications"`
	UsersByState       []repository.StateCount `json:"usersByState"`
}

func (uc *AdminUsecase) Stats(ctx context.Context) (*DashboardStats, error) {
	total, err := uc.userRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	active, err := uc.userRepo.Count(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, err
	}
	complete, err := uc.userRepo.Count(ctx, bson.M{"isProfileComplete": true})
	if err != nil {
		return nil, err
	}
	notifications, err := uc.notificationRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	byState, err := uc.userRepo.CountByState(ctx, 10)
	if err != nil {
		return nil, err
	}
	if byState == nil {
		byState = []repository.StateCount{}
	}

	return &DashboardStats{
		TotalUsers:         total,
		ActiveUsers:        active,
		CompleteProfiles:   complete,
		TotalNotifications: notifications,
		UsersByState:       byState,
	}, nil
}

func (uc *AdminUsecase) ListUsers(ctx context.Context, q repository.ListUsersQuery) ([]domain.User, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	return uc.userRepo.List(ctx, q)
}

func (uc *AdminUsecase) GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return uc.userRepo.FindByID(ctx, id)
}

// CreateNotificationInput carries an announcement to persist. Push delivery
// is still a stub: the record is stored and nothing is sent.
type CreateNotificationInput struct {
	Title          string
	Body           string
	Image          string
	Data           map[string]any
	TargetType     string
	TargetUsers    []primitive.ObjectID
	TargetLocation *domain.TargetLocationFilter
}

func (uc *AdminUsecase) CreateNotification(ctx context.Context, sentBy primitive.ObjectID, in CreateNotificationInput) (*domain.Notification, error) {
	if in.Title == "" || in.Body == "" {
		return nil, xerrors.ErrInvalidRequest
	}

	targetType := in.TargetType
	switch targetType {
	case "":
		targetType = domain.TargetAll
	case domain.TargetAll, domain.TargetSpecific, domain.TargetLocation:
	default:
		return nil, xerrors.ErrInvalidRequest
	}

	now := time.Now()
	n := &domain.Notification{
		Title:          in.Title,
		Body:           in.Body,
		Image:          in.Image,
		Data:           in.Data,
		TargetType:     targetType,
		TargetUsers:    in.TargetUsers,
		TargetLocation: in.TargetLocation,
		SentAt:         &now,
		SentBy:         sentBy,
	}
	if err := uc.notificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	// TODO: fan out to FCM once a push provider is wired in.
	uc.logger.Info("notification recorded",
		zap.String("notification_id", n.ID.Hex()),
		zap.String("target_type", n.TargetType))
	return n, nil
}

func (uc *AdminUsecase) ListNotifications(ctx context.Context, page, limit int64) ([]domain.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return uc.notificationRepo.List(ctx, page, limit)
}
