package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DonationStatus is the aggregate status of a donation, derived from the
// states of its per-NGO assignments.
type DonationStatus string

const (
	DonationStatusPending    DonationStatus = "pending"
	DonationStatusAccepted   DonationStatus = "accepted"
	DonationStatusInProgress DonationStatus = "in-progress"
	DonationStatusCompleted  DonationStatus = "completed"
	DonationStatusCancelled  DonationStatus = "cancelled"
	DonationStatusRejected   DonationStatus = "rejected"
)

// Terminal reports whether the status admits no further transitions.
// Completed, cancelled and rejected donations are exits from the state
// machine; nothing may move them back to a live state.
func (s DonationStatus) Terminal() bool {
	switch s {
	case DonationStatusCompleted, DonationStatusCancelled, DonationStatusRejected:
		return true
	}
	return false
}

// AssignmentStatus is the status of one donation offer to one candidate NGO.
type AssignmentStatus string

const (
	AssignmentStatusPending    AssignmentStatus = "pending"
	AssignmentStatusAccepted   AssignmentStatus = "accepted"
	AssignmentStatusRejected   AssignmentStatus = "rejected"
	AssignmentStatusInProgress AssignmentStatus = "in-progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
)

// DonationKind distinguishes item donations (assigned to NGOs for pickup)
// from monetary donations (completed immediately).
type DonationKind string

const (
	DonationKindItem  DonationKind = "item"
	DonationKindMoney DonationKind = "money"
)

// GeoLocation is a GeoJSON point stored as [longitude, latitude] so the
// collection's 2dsphere index can serve $nearSphere queries.
type GeoLocation struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoLocation builds a GeoJSON point from a longitude/latitude pair.
func NewGeoLocation(lng, lat float64) GeoLocation {
	return GeoLocation{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Lng returns the longitude component, or 0 for a malformed point.
func (g GeoLocation) Lng() float64 {
	if len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[0]
}

// Lat returns the latitude component, or 0 for a malformed point.
func (g GeoLocation) Lat() float64 {
	if len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[1]
}

// DonationItem describes one line item of an item donation.
type DonationItem struct {
	Category    string     `bson:"category" json:"category"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Quantity    float64    `bson:"quantity" json:"quantity"`
	Unit        string     `bson:"unit,omitempty" json:"unit,omitempty"`
	Condition   string     `bson:"condition,omitempty" json:"condition,omitempty"`
	Expiry      *time.Time `bson:"expiry,omitempty" json:"expiry,omitempty"`
}

// Assignment is one donation offered to one candidate NGO. It is embedded in
// its parent donation and has no identity of its own.
type Assignment struct {
	NGOID       primitive.ObjectID `bson:"ngoId" json:"ngoId"`
	NGOName     string             `bson:"ngoName,omitempty" json:"ngoName,omitempty"`
	DistanceKm  float64            `bson:"distanceKm" json:"distanceKm"`
	Status      AssignmentStatus   `bson:"status" json:"status"`
	AssignedAt  time.Time          `bson:"assignedAt" json:"assignedAt"`
	AcceptedAt  *time.Time         `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ActivityEntry is one line of a donation's append-only audit trail. Every
// state transition appends exactly one entry.
type ActivityEntry struct {
	Action    string             `bson:"action" json:"action"`
	Actor     primitive.ObjectID `bson:"actor,omitempty" json:"actor,omitempty"`
	Message   string             `bson:"message" json:"message"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Donation is an item or monetary donation submitted by a donor.
type Donation struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	DonorID      primitive.ObjectID  `bson:"donorId" json:"donorId"`
	Kind         DonationKind        `bson:"kind" json:"kind"`
	Items        []DonationItem      `bson:"items,omitempty" json:"items,omitempty"`
	Amount       float64             `bson:"amount,omitempty" json:"amount,omitempty"`
	Location     GeoLocation         `bson:"location,omitempty" json:"location,omitempty"`
	Address      string              `bson:"address,omitempty" json:"address,omitempty"`
	City         string              `bson:"city,omitempty" json:"city,omitempty"`
	State        string              `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode      string              `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Status       DonationStatus      `bson:"status" json:"status"`
	AssignedNGOs []Assignment        `bson:"assignedNgos" json:"assignedNgos"`
	PrimaryNGOID *primitive.ObjectID `bson:"primaryNgoId,omitempty" json:"primaryNgoId,omitempty"`
	ActivityLog  []ActivityEntry     `bson:"activityLog" json:"activityLog"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// AssignmentFor returns a pointer to the assignment record for the given NGO,
// or nil if the donation was never offered to it.
func (d *Donation) AssignmentFor(ngoID primitive.ObjectID) *Assignment {
	for i := range d.AssignedNGOs {
		if d.AssignedNGOs[i].NGOID == ngoID {
			return &d.AssignedNGOs[i]
		}
	}
	return nil
}

// AllAssignmentsRejected reports whether every assignment has been rejected.
// False for a donation with no assignments.
func (d *Donation) AllAssignmentsRejected() bool {
	if len(d.AssignedNGOs) == 0 {
		return false
	}
	for _, a := range d.AssignedNGOs {
		if a.Status != AssignmentStatusRejected {
			return false
		}
	}
	return true
}

// AllAssignmentsSettled reports whether every assignment has reached
// completed or rejected, with at least one completed.
func (d *Donation) AllAssignmentsSettled() bool {
	completed := 0
	for _, a := range d.AssignedNGOs {
		switch a.Status {
		case AssignmentStatusCompleted:
			completed++
		case AssignmentStatusRejected:
		default:
			return false
		}
	}
	return completed > 0
}
