package user

import (
	"context"
	"errors"
	"fmt"

	"medvault/models"
	"medvault/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// GetMe returns the caller's account with its role profile attached.
func (s *DefaultUserService) GetMe(ctx context.Context, userID string) (*MeResponse, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return s.withProfile(ctx, u)
}

// UpdateProfile applies partial user and role-profile mutations.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*MeResponse, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.PhoneNumber != "" {
		u.PhoneNumber = req.PhoneNumber
	}
	if req.FCMToken != "" {
		u.FCMToken = req.FCMToken
	}
	if req.Specialization != "" && u.Role == models.RoleProfessional {
		u.Specialization = req.Specialization
	}
	u.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	switch u.Role {
	case models.RolePatient:
		if req.DateOfBirth != "" || req.Gender != "" {
			p, err := s.Repo.GetPatientProfile(ctx, userID)
			if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("failed to fetch patient profile: %w", err)
			}
			if p != nil {
				if req.DateOfBirth != "" {
					p.DateOfBirth = req.DateOfBirth
				}
				if req.Gender != "" {
					p.Gender = req.Gender
				}
				p.UpdatedAt = s.now()
				if err := s.Repo.UpdatePatientProfile(ctx, p); err != nil {
					return nil, fmt.Errorf("failed to update patient profile: %w", err)
				}
			}
		}
	case models.RoleProfessional:
		if req.Specialization != "" || req.Bio != "" {
			p, err := s.Repo.GetProfessionalProfile(ctx, userID)
			if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("failed to fetch professional profile: %w", err)
			}
			if p != nil {
				if req.Specialization != "" {
					p.Specialization = req.Specialization
				}
				if req.Bio != "" {
					p.Bio = req.Bio
				}
				p.UpdatedAt = s.now()
				if err := s.Repo.UpdateProfessionalProfile(ctx, p); err != nil {
					return nil, fmt.Errorf("failed to update professional profile: %w", err)
				}
			}
		}
	}

	return s.withProfile(ctx, u)
}

func (s *DefaultUserService) withProfile(ctx context.Context, u *models.User) (*MeResponse, error) {
	out := &MeResponse{User: u.Info(), Role: u.Role, Verified: u.IsEmailVerified}
	switch u.Role {
	case models.RolePatient:
		p, err := s.Repo.GetPatientProfile(ctx, u.ID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to fetch patient profile: %w", err)
		}
		out.Patient = p
	case models.RoleProfessional:
		p, err := s.Repo.GetProfessionalProfile(ctx, u.ID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to fetch professional profile: %w", err)
		}
		out.Professional = p
	}
	return out, nil
}
