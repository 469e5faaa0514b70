package domain

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxOtpAttempts caps failed code submissions per challenge.
const MaxOtpAttempts = 3

var phoneRe = regexp.MustCompile(`^\d{10}$`)

// ValidPhone reports whether s is a bare 10-digit subscriber number
// (no country code).
func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// OtpChallenge is one outstanding phone verification. At most one challenge
// is active per phone: a new send deletes any prior ones before inserting.
type OtpChallenge struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Phone     string             `bson:"phone"`
	Code      string             `bson:"otp"`
	ExpiresAt time.Time          `bson:"expiresAt"`
	Attempts  int                `bson:"attempts"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// Expired reports whether the challenge is past its expiry instant.
// Expiry is checked here at verify time, not swept in the background.
func (c *OtpChallenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
