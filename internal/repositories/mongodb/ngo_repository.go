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

// Compile-time check to ensure NGORepository implements the interface
var _ repositories.NGORepository = (*NGORepository)(nil)

// NGORepository handles MongoDB operations for the NGO directory
type NGORepository struct {
	collection *mongo.Collection
}

// NewNGORepository creates a new NGORepository
func NewNGORepository(db *mongo.Database) *NGORepository {
	return &NGORepository{
		collection: db.Collection("ngos"),
	}
}

// Create inserts a new NGO
func (r *NGORepository) Create(ctx context.Context, ngo *models.NGO) error {
	ngo.ID = primitive.NewObjectID()
	ngo.CreatedAt = time.Now()
	ngo.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, ngo)
	return err
}

// FindByID finds an NGO by ID
func (r *NGORepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.NGO, error) {
	var ngo models.NGO
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ngo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &ngo, nil
}

// FindAll retrieves NGOs with pagination
func (r *NGORepository) FindAll(ctx context.Context, activeOnly bool, page, limit int) ([]*models.NGO, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().
		SetSort(bson.M{"name": 1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ngos []*models.NGO
	if err = cursor.All(ctx, &ngos); err != nil {
		return nil, err
	}
	if ngos == nil {
		ngos = []*models.NGO{}
	}
	return ngos, nil
}

// FindActiveNear finds active NGOs within radiusMeters of the location,
// nearest first, using the collection's 2dsphere index.
func (r *NGORepository) FindActiveNear(ctx context.Context, location models.GeoLocation, radiusMeters float64, limit int) ([]*models.NGO, error) {
	filter := bson.M{
		"active": true,
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry":    location,
				"$maxDistance": radiusMeters,
			},
		},
	}
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ngos []*models.NGO
	if err = cursor.All(ctx, &ngos); err != nil {
		return nil, err
	}
	if ngos == nil {
		ngos = []*models.NGO{}
	}
	return ngos, nil
}

// Update updates an existing NGO
func (r *NGORepository) Update(ctx context.Context, ngo *models.NGO) error {
	ngo.UpdatedAt = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": ngo.ID}, bson.M{"$set": ngo})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Count returns the total number of NGOs
func (r *NGORepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
