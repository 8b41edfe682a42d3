package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification kinds emitted by the lifecycle and progression services.
const (
	NotificationDonationAssigned  = "donation:assigned"
	NotificationDonationAccepted  = "donation:accepted"
	NotificationDonationRejected  = "donation:rejected"
	NotificationDonationCompleted = "donation:completed"
	NotificationDonationCancelled = "donation:cancelled"
	NotificationPointsEarned      = "points:earned"
)

// Notification is a persisted in-app notification. Push delivery is
// best-effort; the record is the source of truth for the feed.
type Notification struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	RecipientID primitive.ObjectID     `bson:"recipientId" json:"recipientId"`
	Kind        string                 `bson:"kind" json:"kind"`
	Title       string                 `bson:"title" json:"title"`
	Message     string                 `bson:"message" json:"message"`
	Data        map[string]interface{} `bson:"data,omitempty" json:"data,omitempty"`
	Read        bool                   `bson:"read" json:"read"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
}
