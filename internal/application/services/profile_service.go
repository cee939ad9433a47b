// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/domain/repositories"
	"github.com/blindcal/blindcal-go/internal/infrastructure/security"
)

// ProfileService orchestrates profile operations with cache-first repository pattern
type ProfileService struct {
	profileRepo repositories.ProfileRepository
}

// NewProfileService creates a new profile application service
func NewProfileService(profileRepo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

// RegisterRequest carries the fields needed to create a profile
type RegisterRequest struct {
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"required,min=8"`
	DisplayName string          `json:"displayName" binding:"required"`
	Role        dating.UserRole `json:"role" binding:"required"`
	Bio         string          `json:"bio"`
	DateOfBirth string          `json:"dateOfBirth"`
}

// Register creates a new profile with a hashed password
func (s *ProfileService) Register(tenantID string, req *RegisterRequest) (*dating.Profile, error) {
	if req.Role != dating.RoleWingman && req.Role != dating.RoleSingle {
		return nil, fmt.Errorf("role must be wingman or single")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.profileRepo.FindByEmail(tenantID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("a profile with email %s already exists", email)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &dating.Profile{
		ID:           security.GenerateULID(),
		Email:        email,
		DisplayName:  req.DisplayName,
		Bio:          req.Bio,
		DateOfBirth:  req.DateOfBirth,
		Role:         req.Role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.profileRepo.Store(tenantID, profile); err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}
	return profile, nil
}

// GetByID returns a profile by ID (cache-first)
func (s *ProfileService) GetByID(tenantID, id string) (*dating.Profile, error) {
	if id == "" {
		return nil, fmt.Errorf("profile ID cannot be empty")
	}
	profile, err := s.profileRepo.FindByID(tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}
	return profile, nil
}

// UpdateRequest carries the mutable profile fields
type UpdateProfileRequest struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	DateOfBirth string `json:"dateOfBirth"`
	AvatarURL   string `json:"avatarUrl"`
}

// Update applies profile edits for the authenticated owner
func (s *ProfileService) Update(tenantID, profileID string, req *UpdateProfileRequest) (*dating.Profile, error) {
	profile, err := s.profileRepo.FindByID(tenantID, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", profileID, err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %s not found", profileID)
	}

	if req.DisplayName != "" {
		profile.DisplayName = req.DisplayName
	}
	profile.Bio = req.Bio
	if req.DateOfBirth != "" {
		profile.DateOfBirth = req.DateOfBirth
	}
	if req.AvatarURL != "" {
		profile.AvatarURL = req.AvatarURL
	}
	now := time.Now().UTC()
	profile.UpdatedAt = &now

	if err := s.profileRepo.Update(tenantID, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile %s: %w", profileID, err)
	}
	return profile, nil
}
