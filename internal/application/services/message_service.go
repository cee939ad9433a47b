package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/domain/repositories"
	"github.com/blindcal/blindcal-go/internal/infrastructure/messaging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/security"
	"github.com/blindcal/blindcal-go/internal/presentation/templates"
)

// MessageService handles masked messaging between the campaign side and
// candidates. Sender addresses are masked before they are stored, the raw
// address never enters the messages table.
type MessageService struct {
	messageRepo    repositories.MessageRepository
	candidateRepo  repositories.CandidateRepository
	campaignRepo   repositories.CampaignRepository
	delegationRepo repositories.DelegationRepository
	profileRepo    repositories.ProfileRepository
	broadcaster    *messaging.PipelineBroadcaster
	logger         *logging.ChanneledLogger
}

// NewMessageService creates a new message application service
func NewMessageService(
	messageRepo repositories.MessageRepository,
	candidateRepo repositories.CandidateRepository,
	campaignRepo repositories.CampaignRepository,
	delegationRepo repositories.DelegationRepository,
	profileRepo repositories.ProfileRepository,
	broadcaster *messaging.PipelineBroadcaster,
	logger *logging.ChanneledLogger,
) *MessageService {
	return &MessageService{
		messageRepo:    messageRepo,
		candidateRepo:  candidateRepo,
		campaignRepo:   campaignRepo,
		delegationRepo: delegationRepo,
		profileRepo:    profileRepo,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

// SendRequest carries one outbound message
type SendRequest struct {
	Body string `json:"body" binding:"required"`
}

// SendFromCampaign posts a message to a candidate's thread on behalf of the
// wingman or the single. Wingmen need messaging rights on the delegation.
func (s *MessageService) SendFromCampaign(tenantID, candidateID, actorID string, actorRole dating.UserRole, req *SendRequest) (*dating.Message, error) {
	candidate, campaign, err := s.loadPair(tenantID, candidateID)
	if err != nil {
		return nil, err
	}

	actor, err := s.profileRepo.FindByID(tenantID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sender profile: %w", err)
	}
	if actor == nil {
		return nil, fmt.Errorf("profile %s not found", actorID)
	}

	switch actorRole {
	case dating.RoleSingle:
		if campaign.SingleID != actorID {
			return nil, fmt.Errorf("campaign %s does not belong to this profile", campaign.ID)
		}
	case dating.RoleWingman:
		if campaign.WingmanID != actorID {
			return nil, fmt.Errorf("campaign %s does not belong to this profile", campaign.ID)
		}
		delegation, err := s.delegationRepo.FindByID(tenantID, campaign.DelegationID)
		if err != nil {
			return nil, fmt.Errorf("failed to load delegation: %w", err)
		}
		if delegation == nil || !delegation.IsActive {
			return nil, fmt.Errorf("delegation for campaign %s is no longer active", campaign.ID)
		}
		if !delegation.CanMessageCandidates {
			return nil, fmt.Errorf("delegation does not grant messaging rights")
		}
	default:
		return nil, fmt.Errorf("role %q cannot message from the campaign side", actorRole)
	}

	return s.post(tenantID, campaign, candidate, &dating.Message{
		SenderRole:  actorRole,
		SenderID:    actorID,
		SenderEmail: templates.MaskEmail(actor.Email),
		Body:        strings.TrimSpace(req.Body),
	})
}

// SendFromCandidate posts a candidate's reply into their thread. The
// candidate authenticates with the email they applied with.
func (s *MessageService) SendFromCandidate(tenantID, candidateID, senderEmail string, req *SendRequest) (*dating.Message, error) {
	candidate, campaign, err := s.loadPair(tenantID, candidateID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(senderEmail), candidate.Email) {
		return nil, fmt.Errorf("sender does not match the candidate on this thread")
	}

	return s.post(tenantID, campaign, candidate, &dating.Message{
		SenderRole:  dating.RoleCandidate,
		SenderEmail: templates.MaskEmail(candidate.Email),
		Body:        strings.TrimSpace(req.Body),
	})
}

// GetThread returns the thread and its messages for a candidate
func (s *MessageService) GetThread(tenantID, candidateID string) (*dating.MessageThread, []*dating.Message, error) {
	candidate, _, err := s.loadPair(tenantID, candidateID)
	if err != nil {
		return nil, nil, err
	}

	thread, err := s.messageRepo.FindThreadForCandidate(tenantID, candidate.CampaignID, candidateID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load thread: %w", err)
	}
	if thread == nil {
		return nil, nil, nil
	}

	msgs, err := s.messageRepo.FindMessages(tenantID, thread.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load messages: %w", err)
	}
	return thread, msgs, nil
}

// ListThreads returns every thread on a campaign, most recent activity first
func (s *MessageService) ListThreads(tenantID, campaignID string) ([]*dating.MessageThread, error) {
	threads, err := s.messageRepo.FindThreadsByCampaign(tenantID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	return threads, nil
}

// post stores the message, creating the thread lazily on first contact.
func (s *MessageService) post(tenantID string, campaign *dating.Campaign, candidate *dating.Candidate, message *dating.Message) (*dating.Message, error) {
	if message.Body == "" {
		return nil, fmt.Errorf("message body cannot be empty")
	}

	thread, err := s.messageRepo.FindThreadForCandidate(tenantID, campaign.ID, candidate.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}
	if thread == nil {
		thread = &dating.MessageThread{
			ID:          security.GenerateULID(),
			CampaignID:  campaign.ID,
			CandidateID: candidate.ID,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.messageRepo.StoreThread(tenantID, thread); err != nil {
			return nil, fmt.Errorf("failed to create thread: %w", err)
		}
	}

	message.ID = security.GenerateULID()
	message.ThreadID = thread.ID
	message.CreatedAt = time.Now().UTC()

	if err := s.messageRepo.StoreMessage(tenantID, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	s.logger.Messaging().Info("Message posted",
		"tenantId", tenantID, "threadId", thread.ID, "senderRole", string(message.SenderRole))
	s.broadcaster.BroadcastMessage(tenantID, campaign.ID, candidate.ID)
	return message, nil
}

func (s *MessageService) loadPair(tenantID, candidateID string) (*dating.Candidate, *dating.Campaign, error) {
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
