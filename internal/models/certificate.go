package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Certificate is an immutable record of a level-up award. Exactly one
// certificate is created per level-up event. CertificateURL stays empty when
// the external renderer fails; the record itself is persisted regardless.
type Certificate struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RecipientID       primitive.ObjectID `bson:"recipientId" json:"recipientId"`
	Issuer            string             `bson:"issuer" json:"issuer"`
	Type              string             `bson:"type" json:"type"`
	Title             string             `bson:"title" json:"title"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	IssueDate         time.Time          `bson:"issueDate" json:"issueDate"`
	CertificateNumber string             `bson:"certificateNumber" json:"certificateNumber"`
	CertificateURL    string             `bson:"certificateUrl,omitempty" json:"certificateUrl,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
