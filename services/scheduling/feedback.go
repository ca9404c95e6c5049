package scheduling

import (
	"context"
	"errors"
	"fmt"

	"medvault/models"
	"medvault/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// AddFeedback records a patient's one-off rating of a completed appointment.
func (s *DefaultSchedulingService) AddFeedback(ctx context.Context, appointmentID, patientID string, req models.AddFeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.ErrInvalidInput("rating must be between 1 and 5")
	}

	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("Appointment not found")
	}
	if err != nil {
		return nil, err
	}
	if appt.Patient != patientID {
		return nil, utils.ErrForbidden("Not authorized")
	}
	if appt.Status != models.AppointmentCompleted {
		return nil, utils.ErrInvalidInput("Feedback is only allowed for completed appointments")
	}

	if existing, err := s.Feedback.GetByAppointment(ctx, appointmentID); err == nil && existing != nil {
		return nil, utils.ErrConflict("Feedback already submitted for this appointment")
	}

	f := &models.Feedback{
		ID:            uuid.New().String(),
		AppointmentID: appointmentID,
		Patient:       appt.Patient,
		Doctor:        appt.Doctor,
		Rating:        req.Rating,
		Comment:       req.Comment,
		CreatedAt:     s.now(),
	}
	if err := s.Feedback.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to store feedback: %w", err)
	}
	return f, nil
}

// DoctorFeedback lists public feedback for a doctor, newest first.
func (s *DefaultSchedulingService) DoctorFeedback(ctx context.Context, doctorID string) ([]models.Feedback, error) {
	items, err := s.Feedback.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}
	return items, nil
}
