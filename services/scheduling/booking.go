package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medvault/models"
	"medvault/utils"

	appointmentRepo "medvault/database/repository/appointment"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// slotKey is the uniqueness claim for a blocking appointment. The start is
// rendered in UTC so every representation of an instant maps to one key.
func slotKey(doctorID string, start time.Time) string {
	return doctorID + "|" + start.UTC().Format(time.RFC3339)
}

// BookAppointment validates a booking request against the doctor's
// availability and existing bookings, then persists it as pending.
func (s *DefaultSchedulingService) BookAppointment(ctx context.Context, patientID string, req models.BookAppointmentRequest) (*models.PopulatedAppointment, error) {
	if req.DoctorID == "" || req.Date == "" || req.Reason == "" {
		return nil, utils.ErrInvalidInput("All fields are required")
	}

	doctor, err := s.Users.GetByID(ctx, req.DoctorID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("Doctor not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up doctor: %w", err)
	}
	if doctor.Role != models.RoleProfessional {
		return nil, utils.ErrNotFound("Doctor not found")
	}

	when, err := ParseBookingTime(req.Date)
	if err != nil {
		return nil, utils.ErrInvalidInput("Cannot book an appointment in the past")
	}
	// Availability is kept in server-local wall time; bring offset-carrying
	// input into the same frame before deriving weekday and minutes.
	when = when.In(time.Local).Truncate(time.Minute)
	now := s.now()
	if !when.After(now) {
		return nil, utils.ErrInvalidInput("Cannot book an appointment in the past")
	}

	day := when.Weekday().String()
	timeMin := minutesOfDay(when)

	ranges, err := s.Availability.ListByDoctorAndDay(ctx, req.DoctorID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if !withinAvailability(ranges, timeMin) {
		return nil, utils.ErrInvalidInput("Selected time is not within doctor's availability")
	}

	slotEnd := when.Add(models.SlotWidth)
	existing, err := s.Appointments.FindBlockingInWindow(ctx, req.DoctorID, when, slotEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot occupancy: %w", err)
	}
	if existing != nil {
		return nil, utils.ErrConflict("Selected slot is already booked")
	}

	appt := &models.Appointment{
		ID:        uuid.New().String(),
		Patient:   patientID,
		Doctor:    req.DoctorID,
		Date:      when,
		Status:    models.AppointmentPending,
		Reason:    req.Reason,
		SlotKey:   slotKey(req.DoctorID, when),
		Blocking:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.Appointments.Create(ctx, appt)
	if errors.Is(err, appointmentRepo.ErrSlotOccupied) {
		// A concurrent booking won the slot between the read and the write.
		return nil, utils.ErrConflict("Selected slot is already booked")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.notify(ctx, models.Notification{
		UserID:            req.DoctorID,
		Type:              models.NotificationAppointment,
		Title:             "New Appointment Request",
		Message:           "A patient has requested an appointment on " + when.Format("Jan 2, 2006 at 15:04") + ".",
		RelatedEntityID:   appt.ID,
		RelatedEntityType: "appointment",
		SentVia:           []string{"in_app", "push"},
	})

	return s.populateOne(ctx, appt)
}

// withinAvailability checks the requested start against each range: the slot
// must fit inside the range and start on a 30-minute boundary relative to the
// range start.
func withinAvailability(ranges []models.AvailabilityRange, timeMin int) bool {
	for _, r := range ranges {
		start, serr := ToMinutes(r.StartTime)
		end, eerr := ToMinutes(r.EndTime)
		if serr != nil || eerr != nil {
			continue
		}
		if timeMin >= start && timeMin+30 <= end && (timeMin-start)%30 == 0 {
			return true
		}
	}
	return false
}

// UpdateAppointmentStatus lets the owning professional approve, reject or
// complete a booking. Rejecting frees the slot for rebooking.
func (s *DefaultSchedulingService) UpdateAppointmentStatus(ctx context.Context, appointmentID, callerID, status string) (*models.PopulatedAppointment, error) {
	switch status {
	case models.AppointmentApproved, models.AppointmentRejected, models.AppointmentCompleted:
	default:
		return nil, utils.ErrInvalidInput("Invalid status")
	}

	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("Appointment not found")
	}
	if err != nil {
		return nil, err
	}
	if appt.Doctor != callerID {
		return nil, utils.ErrForbidden("Not authorized")
	}

	err = s.Appointments.SetStatus(ctx, appointmentID, status, models.Blocks(status))
	if errors.Is(err, appointmentRepo.ErrSlotOccupied) {
		// The slot was rebooked while this appointment was not blocking.
		return nil, utils.ErrConflict("Selected slot is already booked")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	appt.Status = status

	s.notify(ctx, models.Notification{
		UserID:            appt.Patient,
		Type:              models.NotificationAppointment,
		Title:             "Appointment " + status,
		Message:           "Your appointment on " + appt.Date.Format("Jan 2, 2006 at 15:04") + " is now " + status + ".",
		RelatedEntityID:   appt.ID,
		RelatedEntityType: "appointment",
		SentVia:           []string{"in_app", "push", "email"},
	})

	return s.populateOne(ctx, appt)
}

// CancelAppointment lets the owning patient cancel a pending or approved
// booking. Cancelled is terminal and does not block the slot.
func (s *DefaultSchedulingService) CancelAppointment(ctx context.Context, appointmentID, callerID string) (*models.PopulatedAppointment, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("Appointment not found")
	}
	if err != nil {
		return nil, err
	}
	if appt.Patient != callerID {
		return nil, utils.ErrForbidden("Not authorized")
	}
	if appt.Status != models.AppointmentPending && appt.Status != models.AppointmentApproved {
		return nil, utils.ErrInvalidInput("Only pending or approved appointments can be cancelled")
	}

	if err := s.Appointments.SetStatus(ctx, appointmentID, models.AppointmentCancelled, false); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	appt.Status = models.AppointmentCancelled

	s.notify(ctx, models.Notification{
		UserID:            appt.Doctor,
		Type:              models.NotificationAppointment,
		Title:             "Appointment Cancelled",
		Message:           "The appointment on " + appt.Date.Format("Jan 2, 2006 at 15:04") + " was cancelled by the patient.",
		RelatedEntityID:   appt.ID,
		RelatedEntityType: "appointment",
		SentVia:           []string{"in_app", "push"},
	})

	return s.populateOne(ctx, appt)
}

// MyAppointments lists the caller's bookings: professionals see bookings they
// host, patients see bookings they made.
func (s *DefaultSchedulingService) MyAppointments(ctx context.Context, userID, role string) ([]models.PopulatedAppointment, error) {
	var (
		appts []models.Appointment
		err   error
	)
	if role == models.RoleProfessional {
		appts, err = s.Appointments.ListByDoctor(ctx, userID)
	} else {
		appts, err = s.Appointments.ListByPatient(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	return s.populate(ctx, appts)
}

func (s *DefaultSchedulingService) notify(ctx context.Context, n models.Notification) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Notify(ctx, n)
}

func (s *DefaultSchedulingService) populateOne(ctx context.Context, appt *models.Appointment) (*models.PopulatedAppointment, error) {
	populated, err := s.populate(ctx, []models.Appointment{*appt})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// populate enriches appointments with patient/doctor display fields and the
// feedback flag.
func (s *DefaultSchedulingService) populate(ctx context.Context, appts []models.Appointment) ([]models.PopulatedAppointment, error) {
	if len(appts) == 0 {
		return []models.PopulatedAppointment{}, nil
	}

	idSet := make(map[string]bool)
	apptIDs := make([]string, 0, len(appts))
	for _, a := range appts {
		idSet[a.Patient] = true
		idSet[a.Doctor] = true
		apptIDs = append(apptIDs, a.ID)
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.Users.GetManyByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve users: %w", err)
	}

	withFeedback := map[string]bool{}
	if s.Feedback != nil {
		withFeedback, err = s.Feedback.AppointmentIDsWithFeedback(ctx, apptIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve feedback flags: %w", err)
		}
	}

	out := make([]models.PopulatedAppointment, 0, len(appts))
	for _, a := range appts {
		patient := users[a.Patient]
		doctor := users[a.Doctor]
		out = append(out, models.PopulatedAppointment{
			ID:          a.ID,
			Patient:     patient.Info(),
			Doctor:      doctor.Info(),
			Date:        a.Date,
			Status:      a.Status,
			Reason:      a.Reason,
			HasFeedback: withFeedback[a.ID],
			CreatedAt:   a.CreatedAt,
			UpdatedAt:   a.UpdatedAt,
		})
	}
	return out, nil
}
