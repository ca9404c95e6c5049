package scheduling

import (
	"context"
	"time"

	appointmentRepo "medvault/database/repository/appointment"
	availabilityRepo "medvault/database/repository/availability"
	feedbackRepo "medvault/database/repository/feedback"
	userRepo "medvault/database/repository/user"
	"medvault/models"
	"medvault/services/notification"
)

// SchedulingService owns availability ranges, slot derivation and booking.
type SchedulingService interface {
	// Availability range store.
	AddAvailability(ctx context.Context, doctorID string, req models.CreateAvailabilityRequest) (*models.AvailabilityRange, error)
	UpdateAvailability(ctx context.Context, rangeID, callerID string, req models.UpdateAvailabilityRequest) (*models.AvailabilityRange, error)
	DeleteAvailability(ctx context.Context, rangeID, callerID string) error

	// Slot scheduler.
	GetDoctorAvailability(ctx context.Context, doctorID, date string) ([]models.AvailabilityRange, []models.Slot, error)
	BookAppointment(ctx context.Context, patientID string, req models.BookAppointmentRequest) (*models.PopulatedAppointment, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID, callerID, status string) (*models.PopulatedAppointment, error)
	CancelAppointment(ctx context.Context, appointmentID, callerID string) (*models.PopulatedAppointment, error)
	MyAppointments(ctx context.Context, userID, role string) ([]models.PopulatedAppointment, error)

	// Appointment feedback.
	AddFeedback(ctx context.Context, appointmentID, patientID string, req models.AddFeedbackRequest) (*models.Feedback, error)
	DoctorFeedback(ctx context.Context, doctorID string) ([]models.Feedback, error)
}

// DefaultSchedulingService is the production implementation.
type DefaultSchedulingService struct {
	Availability availabilityRepo.AvailabilityRepository
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	Feedback     feedbackRepo.FeedbackRepository
	Notifier     notification.Sink

	// Now is the clock used for booking-time invariants; overridable in tests.
	Now func() time.Time
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
