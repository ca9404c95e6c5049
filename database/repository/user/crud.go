package userRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medvault/models"
)

const opTimeout = 5 * time.Second

func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, user)
	return err
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepo) GetByVerifyToken(ctx context.Context, token string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"emailVerifyToken": token}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepo) GetManyByID(ctx context.Context, ids []string) (map[string]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make(map[string]models.User)
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			return nil, err
		}
		users[u.ID] = u
	}
	return users, cursor.Err()
}

// ListProfessionals returns professional accounts, optionally narrowed by
// exact specialization and a case-insensitive name search.
func (r *MongoUserRepo) ListProfessionals(ctx context.Context, specialization, search string) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{"role": models.RoleProfessional}
	if specialization != "" {
		filter["specialization"] = specialization
	}
	if search != "" {
		pattern := primitive.Regex{Pattern: search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"firstName": pattern},
			bson.M{"lastName": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []models.User{}
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, cursor.Err()
}

func (r *MongoUserRepo) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	user.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": user.ID}, user)
	return err
}

func (r *MongoUserRepo) CreatePatientProfile(ctx context.Context, p *models.PatientProfile) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.patientColl.InsertOne(ctx, p)
	return err
}

func (r *MongoUserRepo) CreateProfessionalProfile(ctx context.Context, p *models.ProfessionalProfile) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.professColl.InsertOne(ctx, p)
	return err
}

func (r *MongoUserRepo) GetPatientProfile(ctx context.Context, userID string) (*models.PatientProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var p models.PatientProfile
	if err := r.patientColl.FindOne(ctx, bson.M{"userId": userID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MongoUserRepo) GetProfessionalProfile(ctx context.Context, userID string) (*models.ProfessionalProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var p models.ProfessionalProfile
	if err := r.professColl.FindOne(ctx, bson.M{"userId": userID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MongoUserRepo) UpdatePatientProfile(ctx context.Context, p *models.PatientProfile) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	p.UpdatedAt = time.Now()
	_, err := r.patientColl.ReplaceOne(ctx, bson.M{"userId": p.UserID}, p)
	return err
}

func (r *MongoUserRepo) UpdateProfessionalProfile(ctx context.Context, p *models.ProfessionalProfile) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	p.UpdatedAt = time.Now()
	_, err := r.professColl.ReplaceOne(ctx, bson.M{"userId": p.UserID}, p)
	return err
}
