package user

import (
	"context"
	"time"

	userRepo "medvault/database/repository/user"
	"medvault/models"
	"medvault/utils"

	"github.com/go-redis/redis/v8"
)

// MeResponse is the authenticated user's account view. Exactly one of the
// profile fields is set, matching the user's role.
type MeResponse struct {
	User         models.UserInfo             `json:"user"`
	Role         string                      `json:"role"`
	Verified     bool                        `json:"isEmailVerified"`
	Patient      *models.PatientProfile      `json:"patientProfile,omitempty"`
	Professional *models.ProfessionalProfile `json:"professionalProfile,omitempty"`
}

// UserService owns accounts, sessions and profiles.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	Logout(ctx context.Context, rawToken string) error
	GetMe(ctx context.Context, userID string) (*MeResponse, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*MeResponse, error)

	ListProfessionals(ctx context.Context, specialization, search string) ([]ProfessionalEntry, error)
	GetProfessional(ctx context.Context, id string) (*ProfessionalEntry, error)
	AddPreferredDoctor(ctx context.Context, patientID, doctorID string) (*MeResponse, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Mailer    utils.Mailer
	AuthCache *redis.Client

	// BaseURL prefixes verification links, e.g. the frontend origin.
	BaseURL string

	// Now is the clock for token expiries; overridable in tests.
	Now func() time.Time
}

func (s *DefaultUserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
