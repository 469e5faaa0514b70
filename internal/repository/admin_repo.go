package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ksbmInfotechOfficial/vscct/internal/domain"
	"github.com/ksbmInfotechOfficial/vscct/pkg/xerrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdminRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) error
	TouchLastLogin(ctx context.Context, id primitive.ObjectID) error
}

type adminRepo struct {
	col *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) AdminRepository {
	return &adminRepo{col: db.Collection("admins")}
}

func (r *adminRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Admin, error) {
	var a domain.Admin
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, xerrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to fetch admin %s: %w", id.Hex(), err)
	}
	return &a, nil
}

func (r *adminRepo) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, xerrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to fetch admin by email: %w", err)
	}
	return &a, nil
}

func (r *adminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	now := time.Now()
	admin.Email = strings.ToLower(admin.Email)
	admin.CreatedAt = now
	admin.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		admin.ID = oid
	}
	return nil
}

func (r *adminRepo) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"lastLogin": now, "updatedAt": now},
	})
	if err != nil {
		return fmt.Errorf("failed to update admin last login: %w", err)
	}
	return nil
}
