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

// Compile-time check to ensure CertificateRepository implements the interface
var _ repositories.CertificateRepository = (*CertificateRepository)(nil)

// CertificateRepository handles MongoDB operations for certificates
type CertificateRepository struct {
	collection *mongo.Collection
}

// NewCertificateRepository creates a new CertificateRepository
func NewCertificateRepository(db *mongo.Database) *CertificateRepository {
	return &CertificateRepository{
		collection: db.Collection("certificates"),
	}
}

// Create inserts a new certificate record
func (r *CertificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	cert.ID = primitive.NewObjectID()
	cert.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, cert)
	return err
}

// FindByRecipient finds all certificates issued to a user, newest first
func (r *CertificateRepository) FindByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]*models.Certificate, error) {
	opts := options.Find().SetSort(bson.M{"issueDate": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"recipientId": recipientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var certs []*models.Certificate
	if err = cursor.All(ctx, &certs); err != nil {
		return nil, err
	}
	if certs == nil {
		certs = []*models.Certificate{}
	}
	return certs, nil
}
