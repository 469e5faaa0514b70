package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TargetAll      = "all"
	TargetSpecific = "specific"
	TargetLocation = "location"
)

type TargetLocationFilter struct {
	State    string `bson:"state,omitempty" json:"state,omitempty"`
	District string `bson:"district,omitempty" json:"district,omitempty"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
}

// Notification is a persisted announcement record. Push delivery is not
// wired up yet; only the record is kept.
type Notification struct {
	ID             primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Title          string                `bson:"title" json:"title"`
	Body           string                `bson:"body" json:"body"`
	Image          string                `bson:"image,omitempty" json:"image,omitempty"`
	Data           map[string]any        `bson:"data,omitempty" json:"data,omitempty"`
	TargetType     string                `bson:"targetType" json:"targetType"`
	TargetUsers    []primitive.ObjectID  `bson:"targetUsers,omitempty" json:"targetUsers,omitempty"`
	TargetLocation *TargetLocationFilter `bson:"targetLocation,omitempty" json:"targetLocation,omitempty"`
	SentAt         *time.Time            `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	SentBy         primitive.ObjectID    `bson:"sentBy,omitempty" json:"sentBy,omitempty"`
	DeliveredCount int                   `bson:"deliveredCount" json:"deliveredCount"`
	ReadCount      int                   `bson:"readCount" json:"readCount"`
	CreatedAt      time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time             `bson:"updatedAt" json:"updatedAt"`
}
