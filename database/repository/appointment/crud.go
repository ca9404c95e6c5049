package appointmentRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"medvault/models"
)

const opTimeout = 5 * time.Second

// Create inserts a booking. The partial unique index on slotKey rejects a
// second blocking appointment for the same slot, turning the check-then-act
// race into ErrSlotOccupied.
func (r *MongoAppointmentRepo) Create(ctx context.Context, a *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotOccupied
	}
	return err
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var a models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// SetStatus transitions an appointment and updates its slot-blocking claim in
// the same write, so a rejected or cancelled booking frees the slot atomically.
// Re-claiming a slot that was rebooked in the meantime trips the slotKey index
// and surfaces as ErrSlotOccupied.
func (r *MongoAppointmentRepo) SetStatus(ctx context.Context, id, status string, blocking bool) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":    status,
		"blocking":  blocking,
		"updatedAt": time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotOccupied
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
