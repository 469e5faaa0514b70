package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/ksbmInfotechOfficial/vscct/internal/domain"
	"github.com/ksbmInfotechOfficial/vscct/internal/repository"
	"github.com/ksbmInfotechOfficial/vscct/pkg/xerrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the Mongo repositories.

type fakeOtpRepo struct {
	challenges []*domain.OtpChallenge
}

func (f *fakeOtpRepo) Replace(_ context.Context, c *domain.OtpChallenge) error {
	kept := f.challenges[:0]
	for _, existing := range f.challenges {
		if existing.Phone != c.Phone {
			kept = append(kept, existing)
		}
	}
	f.challenges = kept
	c.ID = primitive.NewObjectID()
	f.challenges = append(f.challenges, c)
	return nil
}

func (f *fakeOtpRepo) FindByPhone(_ context.Context, phone string) (*domain.OtpChallenge, error) {
	for _, c := range f.challenges {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeOtpRepo) IncrementAttempts(_ context.Context, id primitive.ObjectID) error {
	for _, c := range f.challenges {
		if c.ID == id {
			c.Attempts++
		}
	}
	return nil
}

func (f *fakeOtpRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	kept := f.challenges[:0]
	for _, c := range f.challenges {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.challenges = kept
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User // keyed by phone
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, xerrors.ErrUserNotFound
}

func (f *fakeUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	if u, ok := f.users[phone]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, xerrors.ErrUserNotFound
}

func (f *fakeUserRepo) FindOrCreate(ctx context.Context, phone string) (*domain.User, bool, error) {
	if u, err := f.FindByPhone(ctx, phone); err == nil {
		return u, false, nil
	}
	u := &domain.User{
		ID:        primitive.NewObjectID(),
		Phone:     phone,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.users[phone] = u
	cp := *u
	return &cp, true, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	for phone, u := range f.users {
		if u.ID == user.ID {
			cp := *user
			f.users[phone] = &cp
			return nil
		}
	}
	return xerrors.ErrUserNotFound
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, id primitive.ObjectID) error {
	for _, u := range f.users {
		if u.ID == id {
			now := time.Now()
			u.LastLogin = &now
		}
	}
	return nil
}

func (f *fakeUserRepo) AddFcmToken(_ context.Context, id primitive.ObjectID, token string) error {
	for _, u := range f.users {
		if u.ID == id {
			for _, t := range u.FcmTokens {
				if t == token {
					return nil
				}
			}
			u.FcmTokens = append(u.FcmTokens, token)
			return nil
		}
	}
	return xerrors.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context, q repository.ListUsersQuery) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range f.users {
		if q.Search != "" && !strings.Contains(u.Name, q.Search) && !strings.Contains(u.Phone, q.Search) {
			continue
		}
		if q.State != "" && (u.Address == nil || u.Address.State != q.State) {
			continue
		}
		if q.City != "" && (u.Address == nil || u.Address.City != q.City) {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Count(_ context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		return int64(len(f.users)), nil
	}
	var n int64
	for _, u := range f.users {
		if active, ok := filter["isActive"]; ok && u.IsActive != active.(bool) {
			continue
		}
		if complete, ok := filter["isProfileComplete"]; ok && u.IsProfileComplete != complete.(bool) {
			continue
		}
		n++
	}
	return n, nil
}

func (f *fakeUserRepo) CountByState(_ context.Context, limit int64) ([]repository.StateCount, error) {
	counts := map[string]int64{}
	for _, u := range f.users {
		if u.Address != nil && u.Address.State != "" {
			counts[u.Address.State]++
		}
	}
	var out []repository.StateCount
	for state, n := range counts {
		out = append(out, repository.StateCount{State: state, Count: n})
	}
	return out, nil
}

type fakeAdminRepo struct {
	admins map[string]*domain.Admin // keyed by lowercased email
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]*domain.Admin{}}
}

func (f *fakeAdminRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Admin, error) {
	for _, a := range f.admins {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, xerrors.ErrAdminNotFound
}

func (f *fakeAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	if a, ok := f.admins[strings.ToLower(email)]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, xerrors.ErrAdminNotFound
}

func (f *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	admin.ID = primitive.NewObjectID()
	admin.Email = strings.ToLower(admin.Email)
	cp := *admin
	f.admins[admin.Email] = &cp
	return nil
}

func (f *fakeAdminRepo) TouchLastLogin(_ context.Context, id primitive.ObjectID) error {
	for _, a := range f.admins {
		if a.ID == id {
			now := time.Now()
			a.LastLogin = &now
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	records []domain.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now()
	f.records = append(f.records, *n)
	return nil
}

func (f *fakeNotificationRepo) List(_ context.Context, page, limit int64) ([]domain.Notification, int64, error) {
	return f.records, int64(len(f.records)), nil
}

func (f *fakeNotificationRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

type fakeSender struct {
	sent []string // "phone:code"
	err  error
}

func (f *fakeSender) SendOtp(_ context.Context, phone, code string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, phone+":"+code)
	return nil
}
