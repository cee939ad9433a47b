package services

import (
	"fmt"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/domain/repositories"
	"github.com/blindcal/blindcal-go/internal/infrastructure/email"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/security"
	"github.com/blindcal/blindcal-go/pkg/config"
)

// DelegationService manages the single ↔ wingman trust link
type DelegationService struct {
	delegationRepo repositories.DelegationRepository
	profileRepo    repositories.ProfileRepository
	emailService   email.Service
	logger         *logging.ChanneledLogger
}

// NewDelegationService creates a new delegation application service
func NewDelegationService(
	delegationRepo repositories.DelegationRepository,
	profileRepo repositories.ProfileRepository,
	emailService email.Service,
	logger *logging.ChanneledLogger,
) *DelegationService {
	return &DelegationService{
		delegationRepo: delegationRepo,
		profileRepo:    profileRepo,
		emailService:   emailService,
		logger:         logger,
	}
}

// InviteRequest carries the invite parameters chosen by the single
type InviteRequest struct {
	WingmanEmail    string            `json:"wingmanEmail" binding:"required,email"`
	TrustLevel      dating.TrustLevel `json:"trustLevel" binding:"required"`
	CanProposeTimes bool              `json:"canProposeTimes"`
	CanBookDirectly bool              `json:"canBookDirectly"`
	CanMessage      bool              `json:"canMessageCandidates"`
	CanViewCalendar bool              `json:"canViewCalendar"`
}

// Invite creates a pending delegation and emails the invite link. The
// delegation activates only when the wingman accepts.
func (s *DelegationService) Invite(tenantID, singleID string, req *InviteRequest) (*dating.Delegation, error) {
	switch req.TrustLevel {
	case dating.TrustFullDelegation, dating.TrustApprovalRequired, dating.TrustViewOnly:
	default:
		return nil, fmt.Errorf("unknown trust level %q", req.TrustLevel)
	}

	single, err := s.profileRepo.FindByID(tenantID, singleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load single profile: %w", err)
	}
	if single == nil {
		return nil, fmt.Errorf("profile %s not found", singleID)
	}
	if single.Role != dating.RoleSingle {
		return nil, fmt.Errorf("only a single can invite a wingman")
	}

	token, err := security.GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite token: %w", err)
	}

	delegation := &dating.Delegation{
		ID:                   security.GenerateULID(),
		SingleID:             singleID,
		TrustLevel:           req.TrustLevel,
		CanProposeTimes:      req.CanProposeTimes,
		CanBookDirectly:      req.CanBookDirectly,
		CanMessageCandidates: req.CanMessage,
		CanViewCalendar:      req.CanViewCalendar,
		InviteToken:          token,
		IsActive:             false,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.delegationRepo.Store(tenantID, delegation); err != nil {
		return nil, fmt.Errorf("failed to store delegation: %w", err)
	}

	inviteURL := fmt.Sprintf("%s/invite/%s", config.BaseURL, token)
	if err := s.emailService.SendDelegationInviteEmail(req.WingmanEmail, single.DisplayName, inviteURL, string(req.TrustLevel)); err != nil {
		// The invite row exists, the single can resend from the dashboard.
		s.logger.Email().Warn("Delegation invite email failed",
			"tenantId", tenantID, "delegationId", delegation.ID, "error", err.Error())
	}

	return delegation, nil
}

// Accept activates a pending delegation for the accepting wingman
func (s *DelegationService) Accept(tenantID, inviteToken, wingmanID string) (*dating.Delegation, error) {
	delegation, err := s.delegationRepo.FindByInviteToken(tenantID, inviteToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load delegation: %w", err)
	}
	if delegation == nil {
		return nil, fmt.Errorf("invite not found or already used")
	}
	if delegation.RevokedAt != nil {
		return nil, fmt.Errorf("invite has been revoked")
	}
	if delegation.AcceptedAt != nil {
		return nil, fmt.Errorf("invite already accepted")
	}

	wingman, err := s.profileRepo.FindByID(tenantID, wingmanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wingman profile: %w", err)
	}
	if wingman == nil {
		return nil, fmt.Errorf("profile %s not found", wingmanID)
	}
	if wingman.Role != dating.RoleWingman {
		return nil, fmt.Errorf("only a wingman can accept this invite")
	}
	if wingman.ID == delegation.SingleID {
		return nil, fmt.Errorf("cannot accept your own invite")
	}

	now := time.Now().UTC()
	delegation.WingmanID = wingmanID
	delegation.AcceptedAt = &now
	delegation.IsActive = true

	if err := s.delegationRepo.Update(tenantID, delegation); err != nil {
		return nil, fmt.Errorf("failed to activate delegation: %w", err)
	}

	s.logger.Tenant().Info("Delegation accepted",
		"tenantId", tenantID, "delegationId", delegation.ID, "singleId", delegation.SingleID)
	return delegation, nil
}

// Revoke deactivates a delegation. Only the single who granted it may revoke.
func (s *DelegationService) Revoke(tenantID, delegationID, singleID string) error {
	delegation, err := s.delegationRepo.FindByID(tenantID, delegationID)
	if err != nil {
		return fmt.Errorf("failed to load delegation: %w", err)
	}
	if delegation == nil {
		return fmt.Errorf("delegation %s not found", delegationID)
	}
	if delegation.SingleID != singleID {
		return fmt.Errorf("delegation %s does not belong to this profile", delegationID)
	}
	if delegation.RevokedAt != nil {
		return nil
	}

	now := time.Now().UTC()
	delegation.RevokedAt = &now
	delegation.IsActive = false

	if err := s.delegationRepo.Update(tenantID, delegation); err != nil {
		return fmt.Errorf("failed to revoke delegation: %w", err)
	}
	return nil
}

// ListForProfile returns the delegations the profile participates in, on
// either side of the link.
func (s *DelegationService) ListForProfile(tenantID, profileID string) ([]*dating.Delegation, error) {
	delegations, err := s.delegationRepo.FindForProfile(tenantID, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list delegations: %w", err)
	}
	return delegations, nil
}

// ActiveDelegation returns the active delegation between a single and a
// wingman, or nil when none exists.
func (s *DelegationService) ActiveDelegation(tenantID, singleID, wingmanID string) (*dating.Delegation, error) {
	delegations, err := s.delegationRepo.FindForProfile(tenantID, wingmanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list delegations: %w", err)
	}
	for _, d := range delegations {
		if d.IsActive && d.SingleID == singleID && d.WingmanID == wingmanID {
			return d, nil
		}
	}
	return nil, nil
}
