package consent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medvault/models"
	"medvault/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// Request files a professional's access request against a patient identified
// by user id or email. At most one open (pending or approved) consent may
// exist per patient/professional pair.
func (s *DefaultConsentService) Request(ctx context.Context, professionalID string, req models.RequestConsentRequest) (*models.Consent, error) {
	patient, err := s.resolvePatient(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient.ID == professionalID {
		return nil, utils.ErrInvalidInput("Cannot request consent from yourself")
	}

	open, err := s.Repo.FindOpen(ctx, patient.ID, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing consent: %w", err)
	}
	if open != nil {
		return nil, utils.ErrInvalidInput("A pending or approved consent already exists for this patient")
	}

	var expiry *time.Time
	if req.ExpiryDate != "" {
		t, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return nil, utils.ErrInvalidInput("expiryDate must be YYYY-MM-DD")
		}
		expiry = &t
	}

	scope := req.AccessScope
	if scope == "" {
		scope = "view"
	}

	now := s.now()
	c := &models.Consent{
		ID:                 uuid.New().String(),
		PatientID:          patient.ID,
		ProfessionalID:     professionalID,
		ConsentType:        req.ConsentType,
		RecordTypesAllowed: req.RecordTypesAllowed,
		AccessScope:        scope,
		Reason:             req.Reason,
		Status:             models.ConsentPending,
		ExpiryDate:         expiry,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if c.RecordTypesAllowed == nil {
		c.RecordTypesAllowed = []string{}
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create consent: %w", err)
	}

	s.notify(ctx, models.Notification{
		UserID:            patient.ID,
		Type:              models.NotificationAccessRequest,
		Title:             "New Record Access Request",
		Message:           "A healthcare professional has requested access to your medical records.",
		RelatedEntityID:   c.ID,
		RelatedEntityType: "consent",
		Priority:          models.PriorityHigh,
		SentVia:           []string{"in_app", "push", "email"},
	})
	return c, nil
}

// resolvePatient accepts a user id or an email address and requires the
// resolved account to be a patient.
func (s *DefaultConsentService) resolvePatient(ctx context.Context, idOrEmail string) (*models.User, error) {
	var (
		u   *models.User
		err error
	)
	if strings.Contains(idOrEmail, "@") {
		u, err = s.Users.GetByEmail(ctx, idOrEmail)
	} else {
		u, err = s.Users.GetByID(ctx, idOrEmail)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("Patient not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up patient: %w", err)
	}
	if u.Role != models.RolePatient {
		return nil, utils.ErrNotFound("Patient not found")
	}
	return u, nil
}

// Pending lists a patient's open requests awaiting response.
func (s *DefaultConsentService) Pending(ctx context.Context, patientID string) ([]models.Consent, error) {
	items, err := s.Repo.ListByPatient(ctx, patientID, []string{models.ConsentPending})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending consents: %w", err)
	}
	return items, nil
}

// Mine lists all consents the caller is a party to.
func (s *DefaultConsentService) Mine(ctx context.Context, userID, role string) ([]models.Consent, error) {
	var (
		items []models.Consent
		err   error
	)
	if role == models.RoleProfessional {
		items, err = s.Repo.ListByProfessional(ctx, userID)
	} else {
		items, err = s.Repo.ListByPatient(ctx, userID, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list consents: %w", err)
	}
	return items, nil
}

// Respond lets the patient approve or reject a pending request.
func (s *DefaultConsentService) Respond(ctx context.Context, consentID, patientID, status string) (*models.Consent, error) {
	if status != models.ConsentApproved && status != models.ConsentRejected {
		return nil, utils.ErrInvalidInput("Invalid status")
	}

	c, err := s.getOwned(ctx, consentID, patientID)
	if err != nil {
		return nil, err
	}
	if c.Status != models.ConsentPending {
		return nil, utils.ErrInvalidInput("Consent has already been responded to")
	}

	now := s.now()
	c.Status = status
	c.RespondedAt = &now
	c.UpdatedAt = now
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update consent: %w", err)
	}

	title := "Consent Approved"
	message := "The patient has approved your record access request."
	if status == models.ConsentRejected {
		title = "Consent Rejected"
		message = "The patient has rejected your record access request."
	}
	s.notify(ctx, models.Notification{
		UserID:            c.ProfessionalID,
		Type:              models.NotificationAccessRequest,
		Title:             title,
		Message:           message,
		RelatedEntityID:   c.ID,
		RelatedEntityType: "consent",
		SentVia:           []string{"in_app", "push"},
	})
	return c, nil
}

// Revoke deletes a consent at the patient's request, immediately cutting the
// professional's access.
func (s *DefaultConsentService) Revoke(ctx context.Context, consentID, patientID string) error {
	c, err := s.getOwned(ctx, consentID, patientID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to revoke consent: %w", err)
	}

	s.notify(ctx, models.Notification{
		UserID:            c.ProfessionalID,
		Type:              models.NotificationAccessRequest,
		Title:             "Consent Revoked",
		Message:           "The patient has revoked your access to their medical records.",
		RelatedEntityID:   c.ID,
		RelatedEntityType: "consent",
		SentVia:           []string{"in_app", "push"},
	})
	return nil
}

// HasActiveConsent reports whether an approved, unexpired consent links the
// pair.
func (s *DefaultConsentService) HasActiveConsent(ctx context.Context, patientID, professionalID string) (bool, error) {
	open, err := s.Repo.FindOpen(ctx, patientID, professionalID)
	if err != nil {
		return false, fmt.Errorf("failed to check consent: %w", err)
	}
	if open == nil {
		return false, nil
	}
	return open.Active(s.now()), nil
}

func (s *DefaultConsentService) getOwned(ctx context.Context, consentID, patientID string) (*models.Consent, error) {
	c, err := s.Repo.GetByID(ctx, consentID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("Consent not found")
	}
	if err != nil {
		return nil, err
	}
	if c.PatientID != patientID {
		return nil, utils.ErrForbidden("Not authorized")
	}
	return c, nil
}

func (s *DefaultConsentService) notify(ctx context.Context, n models.Notification) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Notify(ctx, n)
}
