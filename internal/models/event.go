package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountEvent is a journal entry for a change to a user's account. Clients
// that were offline replay entries newer than the last id they saw.
type AccountEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"-"`
	EventType string             `bson:"eventType" json:"eventType" example:"avatar.updated"`
	EventTime time.Time          `bson:"eventTime" json:"eventTime"`
	Payload   map[string]any     `bson:"payload,omitempty" json:"payload,omitempty" swaggertype:"object"`
}
