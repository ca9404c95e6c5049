package consentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medvault/models"
)

const opTimeout = 5 * time.Second

func (r *MongoConsentRepo) Create(ctx context.Context, c *models.Consent) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, c)
	return err
}

func (r *MongoConsentRepo) GetByID(ctx context.Context, id string) (*models.Consent, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var c models.Consent
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoConsentRepo) Update(ctx context.Context, c *models.Consent) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	c.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": c.ID}, c)
	return err
}

func (r *MongoConsentRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (r *MongoConsentRepo) ListByPatient(ctx context.Context, patientID string, statuses []string) ([]models.Consent, error) {
	filter := bson.M{"patientId": patientID}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	return r.list(ctx, filter)
}

func (r *MongoConsentRepo) ListByProfessional(ctx context.Context, professionalID string) ([]models.Consent, error) {
	return r.list(ctx, bson.M{"professionalId": professionalID})
}

// FindOpen returns the pending or approved consent between a patient and a
// professional, or nil when none exists.
func (r *MongoConsentRepo) FindOpen(ctx context.Context, patientID, professionalID string) (*models.Consent, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"patientId":      patientID,
		"professionalId": professionalID,
		"status":         bson.M{"$in": bson.A{models.ConsentPending, models.ConsentApproved}},
	}
	var c models.Consent
	err := r.coll.FindOne(ctx, filter).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoConsentRepo) list(ctx context.Context, filter bson.M) ([]models.Consent, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list consents: %w", err)
	}
	defer cursor.Close(ctx)

	var consents []models.Consent
	if err := cursor.All(ctx, &consents); err != nil {
		return nil, err
	}
	return consents, nil
}
