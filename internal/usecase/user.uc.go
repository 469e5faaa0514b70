package usecase

import (
	"context"
	"time"

	"github.com/ksbmInfotechOfficial/vscct/internal/domain"
	"github.com/ksbmInfotechOfficial/vscct/internal/repository"
	"github.com/ksbmInfotechOfficial/vscct/pkg/xerrors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type UserUsecase struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserUsecase(userRepo repository.UserRepository, logger *zap.Logger) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, logger: logger}
}

// UpdateProfileInput carries the optional profile fields; nil means "leave
// unchanged".
type UpdateProfileInput struct {
	Name        *string
	DateOfBirth *time.Time
	Gender      *string
	Caste       *string
	Avatar      *string
	Address     *domain.Address
}

func (uc *UserUsecase) GetProfile(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return uc.userRepo.FindByID(ctx, id)
}

func (uc *UserUsecase) UpdateProfile(ctx context.Context, id primitive.ObjectID, in UpdateProfileInput) (*domain.User, error) {
	user, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.DateOfBirth != nil {
		user.DateOfBirth = in.DateOfBirth
	}
	if in.Gender != nil {
		switch *in.Gender {
		case domain.GenderMale, domain.GenderFemale, domain.GenderOther:
			user.Gender = *in.Gender
		default:
			return nil, xerrors.ErrInvalidRequest
		}
	}
	if in.Caste != nil {
		user.Caste = *in.Caste
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if in.Address != nil {
		merged := mergeAddress(user.Address, in.Address)
		user.Address = &merged
	}

	user.IsProfileComplete = user.CheckProfileComplete()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("profile updated",
		zap.String("user_id", id.Hex()),
		zap.Bool("complete", user.IsProfileComplete))
	return user, nil
}

func (uc *UserUsecase) AddFcmToken(ctx context.Context, id primitive.ObjectID, token string) error {
	if token == "" {
		return xerrors.ErrInvalidRequest
	}
	return uc.userRepo.AddFcmToken(ctx, id, token)
}

// mergeAddress overlays the non-empty fields of in onto cur, matching the
// partial-object semantics of the profile endpoint.
func mergeAddress(cur, in *domain.Address) domain.Address {
	out := domain.Address{}
	if cur != nil {
		out = *cur
	}
	if in.Street != "" {
		out.Street = in.Street
	}
	if in.City != "" {
		out.City = in.City
	}
	if in.District != "" {
		out.District = in.District
	}
	if in.State != "" {
		out.State = in.State
	}
	if in.Pincode != "" {
		out.Pincode = in.Pincode
	}
	return out
}
