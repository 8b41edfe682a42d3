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

// Compile-time check to ensure EventRepository implements the interface
var _ repositories.EventRepository = (*EventRepository)(nil)

// EventRepository handles MongoDB operations for volunteer events
type EventRepository struct {
	collection *mongo.Collection
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{
		collection: db.Collection("events"),
	}
}

// Create inserts a new volunteer event
func (r *EventRepository) Create(ctx context.Context, event *models.VolunteerEvent) error {
	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// FindByID finds a volunteer event by ID
func (r *EventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.VolunteerEvent, error) {
	var event models.VolunteerEvent
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// FindAll retrieves volunteer events with pagination, soonest first
func (r *EventRepository) FindAll(ctx context.Context, page, limit int) ([]*models.VolunteerEvent, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.M{"date": 1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*models.VolunteerEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*models.VolunteerEvent{}
	}
	return events, nil
}
