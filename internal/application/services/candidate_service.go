package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/domain/repositories"
	domainservices "github.com/blindcal/blindcal-go/internal/domain/services"
	"github.com/blindcal/blindcal-go/internal/infrastructure/email"
	"github.com/blindcal/blindcal-go/internal/infrastructure/media"
	"github.com/blindcal/blindcal-go/internal/infrastructure/messaging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/security"
)

// CandidateService orchestrates the application intake and the screening
// pipeline.
type CandidateService struct {
	candidateRepo  repositories.CandidateRepository
	campaignRepo   repositories.CampaignRepository
	delegationRepo repositories.DelegationRepository
	bookingRepo    repositories.BookingRepository
	rules          *domainservices.PipelineRules
	emailService   email.Service
	broadcaster    *messaging.PipelineBroadcaster
	logger         *logging.ChanneledLogger
}

// NewCandidateService creates a new candidate application service
func NewCandidateService(
	candidateRepo repositories.CandidateRepository,
	campaignRepo repositories.CampaignRepository,
	delegationRepo repositories.DelegationRepository,
	bookingRepo repositories.BookingRepository,
	emailService email.Service,
	broadcaster *messaging.PipelineBroadcaster,
	logger *logging.ChanneledLogger,
) *CandidateService {
	return &CandidateService{
		candidateRepo:  candidateRepo,
		campaignRepo:   campaignRepo,
		delegationRepo: delegationRepo,
		bookingRepo:    bookingRepo,
		rules:          domainservices.NewPipelineRules(),
		emailService:   emailService,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

// ApplicationRequest is the public landing-form submission
type ApplicationRequest struct {
	Name    string            `json:"name" binding:"required"`
	Email   string            `json:"email" binding:"required,email"`
	Bio     string            `json:"bio"`
	Photo   string            `json:"photo"` // base64 data URI, optional unless the campaign requires it
	Answers map[string]string `json:"answers"`
}

// Apply handles a public application against a published campaign. The
// photo, when present, runs through the tenant's photo processor before the
// candidate row is stored.
func (s *CandidateService) Apply(tenantID, campaignSlug string, req *ApplicationRequest, photos *media.PhotoProcessor) (*dating.Candidate, error) {
	campaign, err := s.campaignRepo.FindBySlug(tenantID, campaignSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign == nil || !campaign.IsPublished {
		return nil, fmt.Errorf("campaign not found")
	}
	if !campaign.IsAcceptingApplications {
		return nil, fmt.Errorf("campaign is not accepting applications")
	}

	if campaign.RequiresBio && strings.TrimSpace(req.Bio) == "" {
		return nil, fmt.Errorf("this campaign requires a short bio")
	}
	if campaign.RequiresPhoto && req.Photo == "" {
		return nil, fmt.Errorf("this campaign requires a photo")
	}
	for _, q := range campaign.CustomQuestions {
		if q.Required && strings.TrimSpace(req.Answers[q.Question]) == "" {
			return nil, fmt.Errorf("question %q requires an answer", q.Question)
		}
	}

	if campaign.MaxActiveCandidates > 0 {
		stats, err := s.candidateRepo.CountByCampaign(tenantID, campaign.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count candidates: %w", err)
		}
		if stats.Active >= campaign.MaxActiveCandidates {
			return nil, fmt.Errorf("campaign is not accepting applications")
		}
	}

	candidate := &dating.Candidate{
		ID:           security.GenerateULID(),
		CampaignID:   campaign.ID,
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Bio:          req.Bio,
		Answers:      req.Answers,
		CurrentStage: dating.StageNew,
		Disclosure:   campaign.InitialDisclosure,
		CreatedAt:    time.Now().UTC(),
	}

	if req.Photo != "" {
		result, err := photos.ProcessCandidatePhoto(req.Photo, campaign.ID, candidate.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to process photo: %w", err)
		}
		candidate.PhotoURL = result.PhotoURL
	}

	if err := s.candidateRepo.Store(tenantID, candidate); err != nil {
		return nil, fmt.Errorf("failed to store candidate: %w", err)
	}

	if err := s.candidateRepo.AppendEvent(tenantID, &dating.CandidateEvent{
		ID:          security.GenerateULID(),
		CandidateID: candidate.ID,
		EventType:   "applied",
		ToStage:     dating.StageNew,
		ActorRole:   dating.RoleCandidate,
		CreatedAt:   candidate.CreatedAt,
	}); err != nil {
		s.logger.Pipeline().Warn("Failed to record application event",
			"tenantId", tenantID, "candidateId", candidate.ID, "error", err.Error())
	}

	if err := s.emailService.SendApplicationReceivedEmail(candidate.Email, candidate.Name, campaign.Title); err != nil {
		s.logger.Email().Warn("Application confirmation email failed",
			"tenantId", tenantID, "candidateId", candidate.ID, "error", err.Error())
	}

	s.broadcaster.BroadcastApplication(tenantID, campaign.ID, candidate.ID)
	return candidate, nil
}

// StageChangeRequest identifies the requested transition and its actor
type StageChangeRequest struct {
	ToStage dating.PipelineStage `json:"toStage" binding:"required"`
	Note    string               `json:"note"`
}

// ChangeStage performs a guarded pipeline transition. The actor's role and
// delegation trust decide what they may do; every accepted transition is
// journaled and broadcast.
func (s *CandidateService) ChangeStage(tenantID, candidateID, actorID string, actorRole dating.UserRole, req *StageChangeRequest) (*dating.Candidate, error) {
	candidate, campaign, err := s.loadCandidate(tenantID, candidateID)
	if err != nil {
		return nil, err
	}

	trust, err := s.actorTrust(tenantID, campaign, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if err := s.rules.AuthorizeTransition(actorRole, trust, candidate.CurrentStage, req.ToStage); err != nil {
		return nil, err
	}

	from := candidate.CurrentStage
	now := time.Now().UTC()
	candidate.CurrentStage = req.ToStage
	candidate.StageChangedAt = &now
	switch req.ToStage {
	case dating.StageProposed:
		candidate.ProposedAt = &now
	case dating.StageApproved:
		candidate.ApprovedAt = &now
	case dating.StageRejected:
		candidate.RejectedAt = &now
	}
	if req.Note != "" {
		candidate.WingmanNotes = req.Note
	}

	if err := s.candidateRepo.Update(tenantID, candidate); err != nil {
		return nil, fmt.Errorf("failed to update candidate %s: %w", candidateID, err)
	}

	if err := s.candidateRepo.AppendEvent(tenantID, &dating.CandidateEvent{
		ID:          security.GenerateULID(),
		CandidateID: candidate.ID,
		EventType:   "stage_change",
		FromStage:   from,
		ToStage:     req.ToStage,
		ActorID:     actorID,
		ActorRole:   actorRole,
		CreatedAt:   now,
	}); err != nil {
		s.logger.Pipeline().Warn("Failed to record stage event",
			"tenantId", tenantID, "candidateId", candidate.ID, "error", err.Error())
	}

	s.logger.LogPipelineTransition(tenantID, candidate.ID, string(from), string(req.ToStage))
	s.broadcaster.BroadcastStageChange(tenantID, campaign.ID, candidate.ID, from, req.ToStage, actorRole)
	return candidate, nil
}

// NotesRequest carries wingman screening notes and rating
type NotesRequest struct {
	WingmanNotes string `json:"wingmanNotes"`
	Rating       int    `json:"rating"`
}

// UpdateNotes records wingman screening notes. View-only wingmen may not
// annotate either.
func (s *CandidateService) UpdateNotes(tenantID, candidateID, actorID string, actorRole dating.UserRole, req *NotesRequest) (*dating.Candidate, error) {
	if req.Rating < 0 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 0 and 5")
	}

	candidate, campaign, err := s.loadCandidate(tenantID, candidateID)
	if err != nil {
		return nil, err
	}
	trust, err := s.actorTrust(tenantID, campaign, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if actorRole == dating.RoleWingman && trust == dating.TrustViewOnly {
		return nil, fmt.Errorf("view-only delegation cannot edit candidates")
	}

	candidate.WingmanNotes = req.WingmanNotes
	candidate.Rating = req.Rating
	if err := s.candidateRepo.Update(tenantID, candidate); err != nil {
		return nil, fmt.Errorf("failed to update candidate %s: %w", candidateID, err)
	}
	return candidate, nil
}

// Delete removes a candidate. Blocked once any non-cancelled booking exists,
// the date history has to stay consistent.
func (s *CandidateService) Delete(tenantID, candidateID, actorID string, actorRole dating.UserRole, photos *media.PhotoProcessor) error {
	candidate, campaign, err := s.loadCandidate(tenantID, candidateID)
	if err != nil {
		return err
	}
	trust, err := s.actorTrust(tenantID, campaign, actorID, actorRole)
	if err != nil {
		return err
	}
	if actorRole == dating.RoleWingman && trust == dating.TrustViewOnly {
		return fmt.Errorf("view-only delegation cannot delete candidates")
	}

	bookings, err := s.bookingRepo.CountForCandidate(tenantID, candidateID)
	if err != nil {
		return fmt.Errorf("failed to check bookings for candidate %s: %w", candidateID, err)
	}
	if bookings > 0 {
		return fmt.Errorf("candidate %s has scheduled dates and cannot be deleted; archive instead", candidateID)
	}

	if err := s.candidateRepo.Delete(tenantID, candidateID); err != nil {
		return fmt.Errorf("failed to delete candidate %s: %w", candidateID, err)
	}
	if err := photos.DeleteCandidatePhotos(candidate.CampaignID, candidateID); err != nil {
		s.logger.Pipeline().Warn("Failed to remove candidate photos",
			"tenantId", tenantID, "candidateId", candidateID, "error", err.Error())
	}
	return nil
}

// GetByID returns a candidate by ID
func (s *CandidateService) GetByID(tenantID, id string) (*dating.Candidate, error) {
	if id == "" {
		return nil, fmt.Errorf("candidate ID cannot be empty")
	}
	candidate, err := s.candidateRepo.FindByID(tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate %s: %w", id, err)
	}
	return candidate, nil
}

// ListByCampaign returns the campaign's full pipeline
func (s *CandidateService) ListByCampaign(tenantID, campaignID string) ([]*dating.Candidate, error) {
	candidates, err := s.candidateRepo.FindByCampaign(tenantID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

// GetEvents returns the audit trail for one candidate
func (s *CandidateService) GetEvents(tenantID, candidateID string) ([]*dating.CandidateEvent, error) {
	events, err := s.candidateRepo.FindEvents(tenantID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate events: %w", err)
	}
	return events, nil
}

// Stats returns the aggregate counts for a campaign (cache-first)
func (s *CandidateService) Stats(tenantID, campaignID string) (*dating.CandidateStats, error) {
	stats, err := s.candidateRepo.CountByCampaign(tenantID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}
	return stats, nil
}

func (s *CandidateService) loadCandidate(tenantID, candidateID string) (*dating.Candidate, *dating.Campaign, error) {
	candidate, err := s.candidateRepo.FindByID(tenantID, candidateID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load candidate %s: %w", candidateID, err)
	}
	if candidate == nil {
		return nil, nil, fmt.Errorf("candidate %s not found", candidateID)
	}
	campaign, err := s.campaignRepo.FindByID(tenantID, candidate.CampaignID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load campaign %s: %w", candidate.CampaignID, err)
	}
	if campaign == nil {
		return nil, nil, fmt.Errorf("campaign %s not found", candidate.CampaignID)
	}
	return candidate, campaign, nil
}

// actorTrust resolves the trust level that applies to the actor on this
// campaign. Singles act with full authority on their own campaign; wingmen
// act under the campaign's delegation.
func (s *CandidateService) actorTrust(tenantID string, campaign *dating.Campaign, actorID string, actorRole dating.UserRole) (dating.TrustLevel, error) {
	switch actorRole {
	case dating.RoleSingle:
		if campaign.SingleID != actorID {
			return "", fmt.Errorf("campaign %s does not belong to this profile", campaign.ID)
		}
		return dating.TrustFullDelegation, nil
	case dating.RoleWingman:
		if campaign.WingmanID != actorID {
			return "", fmt.Errorf("campaign %s does not belong to this profile", campaign.ID)
		}
		delegation, err := s.delegationRepo.FindByID(tenantID, campaign.DelegationID)
		if err != nil {
			return "", fmt.Errorf("failed to load delegation: %w", err)
		}
		if delegation == nil || !delegation.IsActive {
			return "", fmt.Errorf("delegation for campaign %s is no longer active", campaign.ID)
		}
		return delegation.TrustLevel, nil
	default:
		return "", fmt.Errorf("role %q cannot operate the pipeline", actorRole)
	}
}
