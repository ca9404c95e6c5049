package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"medvault/database"
	"medvault/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrSlotOccupied is returned when a concurrent writer already holds the
// slot's uniqueness claim. Surfaced by the partial unique index on slotKey.
var ErrSlotOccupied = errors.New("slot already occupied")

// AppointmentRepository owns persistence for bookings.
type AppointmentRepository interface {
	Create(ctx context.Context, a *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	SetStatus(ctx context.Context, id, status string, blocking bool) error
	FindBlockingInWindow(ctx context.Context, doctorID string, start, end time.Time) (*models.Appointment, error)
	ListBlockingOnDay(ctx context.Context, doctorID string, dayStart, dayEnd time.Time) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
}

type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs the MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	db := database.GetDatabase()
	r := &MongoAppointmentRepo{coll: db.Collection("appointments")}
	if err := r.ensureIndexes(); err != nil {
		panic(err)
	}
	return r
}
