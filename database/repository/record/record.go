package recordRepo

import (
	"context"

	"medvault/database"
	"medvault/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RecordRepository owns persistence for medical records.
type RecordRepository interface {
	Create(ctx context.Context, rec *models.MedicalRecord) error
	GetByID(ctx context.Context, id string) (*models.MedicalRecord, error)
	Update(ctx context.Context, rec *models.MedicalRecord) error
	Delete(ctx context.Context, id string) error
	AddDocument(ctx context.Context, recordID string, doc models.RecordDocument) error
	ListByPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error)
	ListByPatientAndType(ctx context.Context, patientID, recordType string) ([]models.MedicalRecord, error)
}

type MongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo constructs the MongoDB RecordRepository.
func NewMongoRecordRepo() *MongoRecordRepo {
	db := database.GetDatabase()
	r := &MongoRecordRepo{coll: db.Collection("medical_records")}
	if err := r.ensureIndexes(); err != nil {
		panic(err)
	}
	return r
}
