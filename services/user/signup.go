package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"medvault/models"
	"medvault/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// newVerifyToken returns a 64-character hex token for email verification
// links.
func newVerifyToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate verify token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Register creates an account, its role profile, and a pending email
// verification, then returns a session token.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, utils.ErrInvalidInput("Passwords do not match")
	}
	if req.Role != models.RolePatient && req.Role != models.RoleProfessional {
		return nil, utils.ErrInvalidInput("role must be patient or professional")
	}

	existing, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, utils.ErrConflict("A user with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verifyToken, err := newVerifyToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &models.User{
		ID:                     uuid.New().String(),
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		Email:                  req.Email,
		Password:               string(hashed),
		PhoneNumber:            req.PhoneNumber,
		Role:                   req.Role,
		EmailVerifyToken:       verifyToken,
		EmailVerifyTokenExpiry: now.Add(utils.EmailVerifyTokenTTL),
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.ErrConflict("A user with this email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.createProfile(ctx, u, req); err != nil {
		return nil, err
	}

	// Verification mail is best effort; the account works unverified.
	s.sendVerificationEmail(ctx, u)

	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, utils.SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: u.Info()}, nil
}

func (s *DefaultUserService) createProfile(ctx context.Context, u *models.User, req models.RegisterRequest) error {
	now := s.now()
	switch u.Role {
	case models.RolePatient:
		p := &models.PatientProfile{
			ID:               uuid.New().String(),
			UserID:           u.ID,
			DateOfBirth:      req.DateOfBirth,
			Gender:           req.Gender,
			PreferredDoctors: []string{},
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.Repo.CreatePatientProfile(ctx, p); err != nil {
			return fmt.Errorf("failed to create patient profile: %w", err)
		}
	case models.RoleProfessional:
		p := &models.ProfessionalProfile{
			ID:        uuid.New().String(),
			UserID:    u.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Repo.CreateProfessionalProfile(ctx, p); err != nil {
			return fmt.Errorf("failed to create professional profile: %w", err)
		}
	}
	return nil
}

func (s *DefaultUserService) sendVerificationEmail(ctx context.Context, u *models.User) {
	if s.Mailer == nil {
		return
	}
	link := s.BaseURL + "/verify-email/" + u.EmailVerifyToken
	if err := s.Mailer.Send(ctx, u.Email, "Verify your MedVault email", utils.VerificationEmailBody(link)); err != nil {
		utils.GetLogger().Warn("Failed to send verification email",
			zap.String("userId", u.ID), zap.Error(err))
	}
}

// VerifyEmail marks the account verified when the token matches and has not
// expired.
func (s *DefaultUserService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return utils.ErrInvalidInput("Verification token is required")
	}
	u, err := s.Repo.GetByVerifyToken(ctx, token)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return utils.ErrInvalidInput("Invalid or expired verification token")
	}
	if err != nil {
		return fmt.Errorf("failed to look up verification token: %w", err)
	}
	if s.now().After(u.EmailVerifyTokenExpiry) {
		return utils.ErrInvalidInput("Invalid or expired verification token")
	}

	u.IsEmailVerified = true
	u.EmailVerifyToken = ""
	u.EmailVerifyTokenExpiry = time.Time{}
	u.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}
