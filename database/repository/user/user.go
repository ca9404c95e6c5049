package userRepo

import (
	"context"

	"medvault/database"
	"medvault/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository owns persistence for accounts and their role profiles.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByVerifyToken(ctx context.Context, token string) (*models.User, error)
	GetManyByID(ctx context.Context, ids []string) (map[string]models.User, error)
	ListProfessionals(ctx context.Context, specialization, search string) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error

	CreatePatientProfile(ctx context.Context, p *models.PatientProfile) error
	CreateProfessionalProfile(ctx context.Context, p *models.ProfessionalProfile) error
	GetPatientProfile(ctx context.Context, userID string) (*models.PatientProfile, error)
	GetProfessionalProfile(ctx context.Context, userID string) (*models.ProfessionalProfile, error)
	UpdatePatientProfile(ctx context.Context, p *models.PatientProfile) error
	UpdateProfessionalProfile(ctx context.Context, p *models.ProfessionalProfile) error
}

type MongoUserRepo struct {
	coll        *mongo.Collection
	patientColl *mongo.Collection
	professColl *mongo.Collection
}

// NewMongoUserRepo constructs the MongoDB UserRepository.
func NewMongoUserRepo() *MongoUserRepo {
	db := database.GetDatabase()
	r := &MongoUserRepo{
		coll:        db.Collection("users"),
		patientColl: db.Collection("patients"),
		professColl: db.Collection("professionals"),
	}
	if err := r.ensureIndexes(); err != nil {
		panic(err)
	}
	return r
}
