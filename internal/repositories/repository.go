package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/givebridge/givebridge-backend/internal/models"
)

// DonationRepository defines the interface for donation data operations.
// Per-assignment and aggregate-status mutations are targeted updates rather
// than whole-document saves so concurrent NGO actions on the same donation
// cannot clobber each other.
type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error)
	FindByDonor(ctx context.Context, donorID primitive.ObjectID, page, limit int) ([]*models.Donation, error)
	FindByNGO(ctx context.Context, ngoID primitive.ObjectID, page, limit int) ([]*models.Donation, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Donation, error)
	Count(ctx context.Context) (int64, error)
	// UpdateAssignment replaces the embedded assignment record for one NGO.
	UpdateAssignment(ctx context.Context, donationID, ngoID primitive.ObjectID, assignment models.Assignment) error
	AppendActivity(ctx context.Context, donationID primitive.ObjectID, entry models.ActivityEntry) error
	SetStatus(ctx context.Context, donationID primitive.ObjectID, status models.DonationStatus) error
	// SetPrimaryNGOIfUnset atomically claims the primary-NGO slot and moves
	// the aggregate status to accepted. Returns false when another NGO
	// already holds the slot or the donation is no longer pending.
	SetPrimaryNGOIfUnset(ctx context.Context, donationID, ngoID primitive.ObjectID) (bool, error)
}

// NGORepository defines the interface for NGO directory operations
type NGORepository interface {
	Create(ctx context.Context, ngo *models.NGO) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.NGO, error)
	FindAll(ctx context.Context, activeOnly bool, page, limit int) ([]*models.NGO, error)
	// FindActiveNear runs the geo-indexed proximity query, nearest first.
	FindActiveNear(ctx context.Context, location models.GeoLocation, radiusMeters float64, limit int) ([]*models.NGO, error)
	Update(ctx context.Context, ngo *models.NGO) error
	Count(ctx context.Context) (int64, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// SaveProgression persists points, level and badges in a single save.
	SaveProgression(ctx context.Context, userID primitive.ObjectID, points, level int, badges []primitive.ObjectID) error
	IncrementVolunteerHours(ctx context.Context, userID primitive.ObjectID, hours float64) error
	FindTopByPoints(ctx context.Context, limit int) ([]*models.User, error)
}

// BadgeRepository defines the interface for badge definition operations
type BadgeRepository interface {
	// UpsertByName returns the badge with the given name, creating the
	// definition on first award.
	UpsertByName(ctx context.Context, badge *models.Badge) (*models.Badge, error)
	FindByName(ctx context.Context, name string) (*models.Badge, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Badge, error)
}

// CertificateRepository defines the interface for certificate records
type CertificateRepository interface {
	Create(ctx context.Context, cert *models.Certificate) error
	FindByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]*models.Certificate, error)
}

// NotificationRepository defines the interface for notification records
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByRecipient(ctx context.Context, recipientID primitive.ObjectID, page, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
	CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error)
}

// PointTransactionRepository defines the interface for point audit records
type PointTransactionRepository interface {
	Create(ctx context.Context, transaction *models.PointTransaction) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.PointTransaction, error)
}

// EventRepository defines the interface for volunteer event operations
type EventRepository interface {
	Create(ctx context.Context, event *models.VolunteerEvent) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.VolunteerEvent, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.VolunteerEvent, error)
}
