package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/givebridge/givebridge-backend/internal/models"
	"github.com/givebridge/givebridge-backend/internal/repositories"
)

// Compile-time check to ensure DonationRepository implements the interface
var _ repositories.DonationRepository = (*DonationRepository)(nil)

// DonationRepository handles MongoDB operations for Donation
type DonationRepository struct {
	collection *mongo.Collection
}

// NewDonationRepository creates a new DonationRepository
func NewDonationRepository(db *mongo.Database) *DonationRepository {
	return &DonationRepository{
		collection: db.Collection("donations"),
	}
}

// Create inserts a new donation
func (r *DonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	donation.ID = primitive.NewObjectID()
	donation.CreatedAt = time.Now()
	donation.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, donation)
	return err
}

// FindByID finds a donation by ID
func (r *DonationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	var donation models.Donation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&donation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &donation, nil
}

// FindByDonor finds donations submitted by a donor, newest first
func (r *DonationRepository) FindByDonor(ctx context.Context, donorID primitive.ObjectID, page, limit int) ([]*models.Donation, error) {
	return r.find(ctx, bson.M{"donorId": donorID}, page, limit)
}

// FindByNGO finds donations offered to an NGO, newest first
func (r *DonationRepository) FindByNGO(ctx context.Context, ngoID primitive.ObjectID, page, limit int) ([]*models.Donation, error) {
	return r.find(ctx, bson.M{"assignedNgos.ngoId": ngoID}, page, limit)
}

// FindAll retrieves donations with pagination, newest first
func (r *DonationRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Donation, error) {
	return r.find(ctx, bson.M{}, page, limit)
}

func (r *DonationRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.Donation, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var donations []*models.Donation
	if err = cursor.All(ctx, &donations); err != nil {
		return nil, err
	}
	if donations == nil {
		donations = []*models.Donation{}
	}
	return donations, nil
}

// Count returns the total number of donations
func (r *DonationRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// UpdateAssignment replaces the embedded assignment record for one NGO using
// the positional operator, so other assignments on the same donation are
// untouched.
func (r *DonationRepository) UpdateAssignment(ctx context.Context, donationID, ngoID primitive.ObjectID, assignment models.Assignment) error {
	filter := bson.M{"_id": donationID, "assignedNgos.ngoId": ngoID}
	update := bson.M{
		"$set": bson.M{
			"assignedNgos.$": assignment,
			"updatedAt":      time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// AppendActivity pushes one entry onto the donation's activity log
func (r *DonationRepository) AppendActivity(ctx context.Context, donationID primitive.ObjectID, entry models.ActivityEntry) error {
	update := bson.M{
		"$push": bson.M{"activityLog": entry},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": donationID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetStatus sets the aggregate donation status
func (r *DonationRepository) SetStatus(ctx context.Context, donationID primitive.ObjectID, status models.DonationStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": donationID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetPrimaryNGOIfUnset performs the first-acceptor-wins compare-and-swap:
// the filter only matches while primaryNgoId is still unset and the donation
// is still pending, so exactly one concurrent acceptor can claim the slot
// and a terminal donation can never be pulled back to accepted.
func (r *DonationRepository) SetPrimaryNGOIfUnset(ctx context.Context, donationID, ngoID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id":          donationID,
		"primaryNgoId": bson.M{"$exists": false},
		"status":       models.DonationStatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"primaryNgoId": ngoID,
			"status":       models.DonationStatusAccepted,
			"updatedAt":    time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}
