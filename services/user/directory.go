package user

import (
	"context"
	"errors"
	"fmt"

	"medvault/models"
	"medvault/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// ProfessionalEntry is a directory listing of a doctor, the view patients
// browse when picking who to book.
type ProfessionalEntry struct {
	User    models.UserInfo             `json:"user"`
	Profile *models.ProfessionalProfile `json:"profile,omitempty"`
}

// ListProfessionals returns the professional directory, optionally filtered
// by specialization and a name search.
func (s *DefaultUserService) ListProfessionals(ctx context.Context, specialization, search string) ([]ProfessionalEntry, error) {
	users, err := s.Repo.ListProfessionals(ctx, specialization, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", err)
	}

	out := make([]ProfessionalEntry, 0, len(users))
	for i := range users {
		profile, err := s.Repo.GetProfessionalProfile(ctx, users[i].ID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to fetch professional profile: %w", err)
		}
		out = append(out, ProfessionalEntry{User: users[i].Info(), Profile: profile})
	}
	return out, nil
}

// GetProfessional returns a single directory entry by user id.
func (s *DefaultUserService) GetProfessional(ctx context.Context, id string) (*ProfessionalEntry, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("Professional not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u.Role != models.RoleProfessional {
		return nil, utils.ErrNotFound("Professional not found")
	}

	profile, err := s.Repo.GetProfessionalProfile(ctx, u.ID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to fetch professional profile: %w", err)
	}
	return &ProfessionalEntry{User: u.Info(), Profile: profile}, nil
}

// AddPreferredDoctor records a doctor on the patient's preferred list.
// Adding one that is already listed is a no-op.
func (s *DefaultUserService) AddPreferredDoctor(ctx context.Context, patientID, doctorID string) (*MeResponse, error) {
	if doctorID == "" {
		return nil, utils.ErrInvalidInput("doctorId is required")
	}

	doctor, err := s.Repo.GetByID(ctx, doctorID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("Professional not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if doctor.Role != models.RoleProfessional {
		return nil, utils.ErrNotFound("Professional not found")
	}

	patient, err := s.Repo.GetByID(ctx, patientID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	profile, err := s.Repo.GetPatientProfile(ctx, patientID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to fetch patient profile: %w", err)
	}
	if profile == nil {
		return nil, utils.ErrNotFound("Patient profile not found")
	}

	listed := false
	for _, id := range profile.PreferredDoctors {
		if id == doctorID {
			listed = true
			break
		}
	}
	if !listed {
		profile.PreferredDoctors = append(profile.PreferredDoctors, doctorID)
		profile.UpdatedAt = s.now()
		if err := s.Repo.UpdatePatientProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to update patient profile: %w", err)
		}
	}

	return s.withProfile(ctx, patient)
}
