package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VolunteerEvent is a volunteering opportunity. Completing one credits the
// volunteer with event points and the event's hours.
type VolunteerEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	OrganizerID primitive.ObjectID `bson:"organizerId,omitempty" json:"organizerId,omitempty"`
	Location    GeoLocation        `bson:"location,omitempty" json:"location,omitempty"`
	Date        time.Time          `bson:"date" json:"date"`
	Hours       float64            `bson:"hours" json:"hours"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
