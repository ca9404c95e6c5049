package consent

import (
	"context"
	"time"

	consentRepo "medvault/database/repository/consent"
	userRepo "medvault/database/repository/user"
	"medvault/models"
	"medvault/services/notification"
)

// ConsentService owns record-access permissions between patients and
// professionals.
type ConsentService interface {
	Request(ctx context.Context, professionalID string, req models.RequestConsentRequest) (*models.Consent, error)
	Pending(ctx context.Context, patientID string) ([]models.Consent, error)
	Mine(ctx context.Context, userID, role string) ([]models.Consent, error)
	Respond(ctx context.Context, consentID, patientID, status string) (*models.Consent, error)
	Revoke(ctx context.Context, consentID, patientID string) error

	// HasActiveConsent gates professional access to a patient's records.
	HasActiveConsent(ctx context.Context, patientID, professionalID string) (bool, error)
}

// DefaultConsentService is the production implementation.
type DefaultConsentService struct {
	Repo     consentRepo.ConsentRepository
	Users    userRepo.UserRepository
	Notifier notification.Sink

	Now func() time.Time
}

func (s *DefaultConsentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
