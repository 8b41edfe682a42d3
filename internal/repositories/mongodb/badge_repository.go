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

// Compile-time check to ensure BadgeRepository implements the interface
var _ repositories.BadgeRepository = (*BadgeRepository)(nil)

// BadgeRepository handles MongoDB operations for badge definitions
type BadgeRepository struct {
	collection *mongo.Collection
}

// NewBadgeRepository creates a new BadgeRepository
func NewBadgeRepository(db *mongo.Database) *BadgeRepository {
	return &BadgeRepository{
		collection: db.Collection("badges"),
	}
}

// UpsertByName finds the badge by unique name, inserting the definition on
// first award. The returned badge always carries a valid ID.
func (r *BadgeRepository) UpsertByName(ctx context.Context, badge *models.Badge) (*models.Badge, error) {
	now := time.Now()
	filter := bson.M{"name": badge.Name}
	update := bson.M{
		"$setOnInsert": bson.M{
			"name":        badge.Name,
			"description": badge.Description,
			"category":    badge.Category,
			"criteria":    badge.Criteria,
			"createdAt":   now,
			"updatedAt":   now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out models.Badge
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByName finds a badge definition by its unique name
func (r *BadgeRepository) FindByName(ctx context.Context, name string) (*models.Badge, error) {
	var badge models.Badge
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&badge)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &badge, nil
}

// FindByIDs resolves a set of badge references
func (r *BadgeRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Badge, error) {
	if len(ids) == 0 {
		return []*models.Badge{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var badges []*models.Badge
	if err = cursor.All(ctx, &badges); err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []*models.Badge{}
	}
	return badges, nil
}
