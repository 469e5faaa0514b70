package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ksbmInfotechOfficial/vscct/internal/domain"
	"github.com/ksbmInfotechOfficial/vscct/pkg/xerrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListUsersQuery carries the admin user-listing filters.
type ListUsersQuery struct {
	Page   int64
	Limit  int64
	Search string
	State  string
	City   string
}

// StateCount is one bucket of the users-by-state aggregation.
type StateCount struct {
	State string `bson:"_id" json:"state"`
	Count int64  `bson:"count" json:"count"`
}

type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	// FindOrCreate returns the user for the phone, creating an active record
	// when none exists. The second result reports whether a record was created.
	FindOrCreate(ctx context.Context, phone string) (*domain.User, bool, error)
	Update(ctx context.Context, user *domain.User) error
	TouchLastLogin(ctx context.Context, id primitive.ObjectID) error
	AddFcmToken(ctx context.Context, id primitive.ObjectID, token string) error
	List(ctx context.Context, q ListUsersQuery) ([]domain.User, int64, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	CountByState(ctx context.Context, limit int64) ([]StateCount, error)
}

type userRepo struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepo{col: db.Collection("users")}
}

func (r *userRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, xerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", id.Hex(), err)
	}
	return &u, nil
}

func (r *userRepo) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var u domain.User
	err := r.col.FindOne(ctx, bson.M{"phone": phone}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, xerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user by phone: %w", err)
	}
	return &u, nil
}

func (r *userRepo) FindOrCreate(ctx context.Context, phone string) (*domain.User, bool, error) {
	user, err := r.FindByPhone(ctx, phone)
	if err == nil {
		return user, false, nil
	}
	if err != xerrors.ErrUserNotFound {
		return nil, false, err
	}

	now := time.Now()
	user = &domain.User{
		Phone:     phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, true, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return xerrors.ErrUserNotFound
	}
	return nil
}

func (r *userRepo) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"lastLogin": now, "updatedAt": now},
	})
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (r *userRepo) AddFcmToken(ctx context.Context, id primitive.ObjectID, token string) error {
	// $addToSet keeps the append idempotent.
	res, err := r.col.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"fcmTokens": token},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to add fcm token: %w", err)
	}
	if res.MatchedCount == 0 {
		return xerrors.ErrUserNotFound
	}
	return nil
}

func (r *userRepo) List(ctx context.Context, q ListUsersQuery) ([]domain.User, int64, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": q.Search, "$options": "i"}},
			bson.M{"phone": bson.M{"$regex": q.Search, "$options": "i"}},
		}
	}
	if q.State != "" {
		filter["address.state"] = q.State
	}
	if q.City != "" {
		filter["address.city"] = q.City
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((q.Page - 1) * q.Limit).
		SetLimit(q.Limit).
		SetProjection(bson.M{"fcmTokens": 0})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, total, nil
}

func (r *userRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (r *userRepo) CountByState(ctx context.Context, limit int64) ([]StateCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"address.state": bson.M{"$exists": true, "$ne": ""}}}},
		{{Key: "$group", Value: bson.M{"_id": "$address.state", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate users by state: %w", err)
	}
	defer cur.Close(ctx)

	var out []StateCount
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode state counts: %w", err)
	}
	return out, nil
}
