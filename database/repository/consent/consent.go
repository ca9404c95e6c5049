package consentRepo

import (
	"context"

	"medvault/database"
	"medvault/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ConsentRepository owns persistence for record-access consents.
type ConsentRepository interface {
	Create(ctx context.Context, c *models.Consent) error
	GetByID(ctx context.Context, id string) (*models.Consent, error)
	Update(ctx context.Context, c *models.Consent) error
	Delete(ctx context.Context, id string) error
	ListByPatient(ctx context.Context, patientID string, statuses []string) ([]models.Consent, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]models.Consent, error)
	FindOpen(ctx context.Context, patientID, professionalID string) (*models.Consent, error)
}

type MongoConsentRepo struct {
	coll *mongo.Collection
}

// NewMongoConsentRepo constructs the MongoDB ConsentRepository.
func NewMongoConsentRepo() *MongoConsentRepo {
	db := database.GetDatabase()
	r := &MongoConsentRepo{coll: db.Collection("consents")}
	if err := r.ensureIndexes(); err != nil {
		panic(err)
	}
	return r
}
