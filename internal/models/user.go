package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles understood by the auth middleware.
const (
	RoleDonor = "donor"
	RoleNGO   = "ngo"
	RoleAdmin = "admin"
)

// User represents a user in the system. Points never decrease and Level is
// always recomputed from Points against the level table, never incremented.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string               `bson:"name" json:"name"`
	Email          string               `bson:"email" json:"email"`
	Password       string               `bson:"password" json:"-"`
	Role           string               `bson:"role" json:"role"`
	Points         int                  `bson:"points" json:"points"`
	Level          int                  `bson:"level" json:"level"`
	Badges         []primitive.ObjectID `bson:"badges" json:"badges"`
	VolunteerHours float64              `bson:"volunteerHours" json:"volunteerHours"`
	Location       GeoLocation          `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasBadge reports whether the badge is already in the user's badge set.
func (u *User) HasBadge(badgeID primitive.ObjectID) bool {
	for _, b := range u.Badges {
		if b == badgeID {
			return true
		}
	}
	return false
}
