package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PointTransaction records points awarded for a specific action, so the
// cumulative total on the user document can always be audited.
type PointTransaction struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     primitive.ObjectID  `bson:"userId" json:"userId"`
	Points     int                 `bson:"points" json:"points"`
	Source     string              `bson:"source" json:"source"`
	DonationID *primitive.ObjectID `bson:"donationId,omitempty" json:"donationId,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
}
