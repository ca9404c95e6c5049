package recordRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medvault/models"
)

const opTimeout = 5 * time.Second

func (r *MongoRecordRepo) Create(ctx context.Context, rec *models.MedicalRecord) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, rec)
	return err
}

func (r *MongoRecordRepo) GetByID(ctx context.Context, id string) (*models.MedicalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var rec models.MedicalRecord
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *MongoRecordRepo) Update(ctx context.Context, rec *models.MedicalRecord) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rec.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": rec.ID}, rec)
	return err
}

func (r *MongoRecordRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoRecordRepo) AddDocument(ctx context.Context, recordID string, doc models.RecordDocument) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"documents": doc},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": recordID}, update)
	if err != nil {
		return fmt.Errorf("failed to attach document: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoRecordRepo) ListByPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	return r.list(ctx, bson.M{"patientId": patientID})
}

func (r *MongoRecordRepo) ListByPatientAndType(ctx context.Context, patientID, recordType string) ([]models.MedicalRecord, error) {
	return r.list(ctx, bson.M{"patientId": patientID, "recordType": recordType})
}

func (r *MongoRecordRepo) list(ctx context.Context, filter bson.M) ([]models.MedicalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "recordDate", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []models.MedicalRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}
