package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

type Address struct {
	Street   string `bson:"street,omitempty" json:"street,omitempty"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
	District string `bson:"district,omitempty" json:"district,omitempty"`
	State    string `bson:"state,omitempty" json:"state,omitempty"`
	Pincode  string `bson:"pincode,omitempty" json:"pincode,omitempty"`
}

// User is a member account, keyed by phone. Created implicitly on the first
// successful OTP verification for a phone with no existing record.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Phone             string             `bson:"phone" json:"phone"`
	Name              string             `bson:"name,omitempty" json:"name,omitempty"`
	DateOfBirth       *time.Time         `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender            string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Caste             string             `bson:"caste,omitempty" json:"caste,omitempty"`
	Address           *Address           `bson:"address,omitempty" json:"address,omitempty"`
	Avatar            string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	FcmTokens         []string           `bson:"fcmTokens,omitempty" json:"-"`
	IsProfileComplete bool               `bson:"isProfileComplete" json:"isProfileComplete"`
	IsActive          bool               `bson:"isActive" json:"isActive"`
	LastLogin         *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CheckProfileComplete reports whether the mandatory profile fields are set.
func (u *User) CheckProfileComplete() bool {
	if u.Name == "" || u.DateOfBirth == nil || u.Gender == "" {
		return false
	}
	return u.Address != nil && u.Address.City != "" && u.Address.State != ""
}
