package user

import (
	"context"
	"errors"
	"fmt"

	"medvault/models"
	"medvault/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Login checks credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrUnauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return nil, utils.ErrUnauthorized("Invalid email or password")
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, utils.SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: u.Info()}, nil
}

// Logout revokes the presented token for the remainder of its lifetime. The
// revocation set lives in the auth redis DB keyed by token hash.
func (s *DefaultUserService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return utils.ErrUnauthorized("Missing token")
	}
	if _, err := utils.ExtractClaims(rawToken); err != nil {
		return utils.ErrUnauthorized("Invalid token")
	}
	if s.AuthCache == nil {
		return nil
	}
	key := utils.RevokedTokenPrefix + utils.HashToken(rawToken)
	if err := s.AuthCache.Set(ctx, key, "1", utils.SessionTokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
