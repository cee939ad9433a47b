package services

import (
	"fmt"
	"strings"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/domain/repositories"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/security"
)

// AuthService handles login and session token issuance
type AuthService struct {
	profileRepo repositories.ProfileRepository
	logger      *logging.ChanneledLogger
}

// NewAuthService creates a new auth application service
func NewAuthService(profileRepo repositories.ProfileRepository, logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// LoginRequest carries credentials for a session login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult carries the issued token and the authenticated profile
type LoginResult struct {
	Token   string          `json:"token"`
	Profile *dating.Profile `json:"profile"`
}

// Login verifies credentials and issues a session JWT signed with the
// tenant's secret. Failures are deliberately indistinguishable between
// unknown email and wrong password.
func (s *AuthService) Login(tenantID, jwtSecret string, req *LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	profile, err := s.profileRepo.FindByEmail(tenantID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil || !security.CheckPassword(profile.PasswordHash, req.Password) {
		s.logger.LogAuthOperation("login", tenantID, "", false)
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := security.GenerateSessionToken(profile, tenantID, jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.LogAuthOperation("login", tenantID, profile.ID, true)
	return &LoginResult{Token: token, Profile: profile}, nil
}
