package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NGO represents a registered pickup organisation in the directory.
type NGO struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Location    GeoLocation        `bson:"location" json:"location"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	City        string             `bson:"city,omitempty" json:"city,omitempty"`
	Categories  []string           `bson:"categories,omitempty" json:"categories,omitempty"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
