package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BadgeCriteria describes the rule under which a badge is earned.
type BadgeCriteria struct {
	Type  string `bson:"type" json:"type"`
	Value int    `bson:"value" json:"value"`
}

// Badge is a badge definition. Names are unique; definitions are created
// lazily on first award and then referenced by many users.
type Badge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Criteria    BadgeCriteria      `bson:"criteria,omitempty" json:"criteria,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
