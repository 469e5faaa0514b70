package repository

import (
	"context"
	"fmt"

	"github.com/ksbmInfotechOfficial/vscct/internal/domain"
	"github.com/ksbmInfotechOfficial/vscct/pkg/xerrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OtpRepository interface {
	// Replace deletes every challenge for the phone and inserts the new one,
	// keeping at most one active challenge per phone.
	Replace(ctx context.Context, challenge *domain.OtpChallenge) error
	FindByPhone(ctx context.Context, phone string) (*domain.OtpChallenge, error)
	IncrementAttempts(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type otpRepo struct {
	col *mongo.Collection
}

func NewOtpRepository(db *mongo.Database) OtpRepository {
	return &otpRepo{col: db.Collection("otps")}
}

func (r *otpRepo) Replace(ctx context.Context, challenge *domain.OtpChallenge) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{"phone": challenge.Phone}); err != nil {
		return fmt.Errorf("failed to clear prior otp challenges: %w", err)
	}
	res, err := r.col.InsertOne(ctx, challenge)
	if err != nil {
		return fmt.Errorf("failed to insert otp challenge: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		challenge.ID = oid
	}
	return nil
}

func (r *otpRepo) FindByPhone(ctx context.Context, phone string) (*domain.OtpChallenge, error) {
	var c domain.OtpChallenge
	err := r.col.FindOne(ctx, bson.M{"phone": phone}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch otp challenge for %s: %w", phone, err)
	}
	return &c, nil
}

func (r *otpRepo) IncrementAttempts(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"attempts": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment otp attempts: %w", err)
	}
	return nil
}

func (r *otpRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete otp challenge: %w", err)
	}
	return nil
}
