package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medvault/models"
)

// blockingFilter excludes rejected and cancelled appointments, which never
// occupy a slot.
func blockingFilter(doctorID string, from, to time.Time) bson.M {
	return bson.M{
		"doctor": doctorID,
		"date":   bson.M{"$gte": from, "$lt": to},
		"status": bson.M{"$nin": bson.A{models.AppointmentRejected, models.AppointmentCancelled}},
	}
}

// FindBlockingInWindow returns the appointment occupying [start, end) for the
// doctor, or nil when the window is free.
func (r *MongoAppointmentRepo) FindBlockingInWindow(ctx context.Context, doctorID string, start, end time.Time) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var a models.Appointment
	err := r.coll.FindOne(ctx, blockingFilter(doctorID, start, end)).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListBlockingOnDay returns all appointments capable of blocking a slot for
// the doctor within [dayStart, dayEnd).
func (r *MongoAppointmentRepo) ListBlockingOnDay(ctx context.Context, doctorID string, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, blockingFilter(doctorID, dayStart, dayEnd))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *MongoAppointmentRepo) listSortedByDateDesc(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *MongoAppointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.listSortedByDateDesc(ctx, bson.M{"doctor": doctorID})
}

func (r *MongoAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.listSortedByDateDesc(ctx, bson.M{"patient": patientID})
}
