package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/domain/repositories"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/security"
	"github.com/blindcal/blindcal-go/internal/presentation/templates"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// CampaignService orchestrates campaign lifecycle operations
type CampaignService struct {
	campaignRepo   repositories.CampaignRepository
	delegationRepo repositories.DelegationRepository
	logger         *logging.ChanneledLogger
}

// NewCampaignService creates a new campaign application service
func NewCampaignService(
	campaignRepo repositories.CampaignRepository,
	delegationRepo repositories.DelegationRepository,
	logger *logging.ChanneledLogger,
) *CampaignService {
	return &CampaignService{
		campaignRepo:   campaignRepo,
		delegationRepo: delegationRepo,
		logger:         logger,
	}
}

// CampaignRequest carries the campaign fields an operator can set
type CampaignRequest struct {
	DelegationID            string                  `json:"delegationId" binding:"required"`
	Title                   string                  `json:"title" binding:"required"`
	Tagline                 string                  `json:"tagline"`
	Description             string                  `json:"description"`
	TemplateID              string                  `json:"templateId"`
	CustomTemplate          string                  `json:"customTemplate"`
	PrimaryColor            string                  `json:"primaryColor"`
	AccentColor             string                  `json:"accentColor"`
	IsAcceptingApplications bool                    `json:"isAcceptingApplications"`
	RequiresPhoto           bool                    `json:"requiresPhoto"`
	RequiresBio             bool                    `json:"requiresBio"`
	ShowWingmanName         bool                    `json:"showWingmanName"`
	ShowSingleBio           bool                    `json:"showSingleBio"`
	InitialDisclosure       dating.DisclosureLevel  `json:"initialDisclosure"`
	MaxActiveCandidates     int                     `json:"maxActiveCandidates"`
	CustomQuestions         []dating.CustomQuestion `json:"customQuestions"`
}

// Create builds a campaign owned by the wingman's active delegation. Custom
// templates are validated before anything is stored: there is no
// invalid-and-stored state.
func (s *CampaignService) Create(tenantID, wingmanID string, req *CampaignRequest) (*dating.Campaign, error) {
	delegation, err := s.delegationRepo.FindByID(tenantID, req.DelegationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load delegation: %w", err)
	}
	if delegation == nil || !delegation.IsActive {
		return nil, fmt.Errorf("delegation %s is not active", req.DelegationID)
	}
	if delegation.WingmanID != wingmanID {
		return nil, fmt.Errorf("delegation %s does not belong to this wingman", req.DelegationID)
	}
	if delegation.TrustLevel == dating.TrustViewOnly {
		return nil, fmt.Errorf("view-only delegation cannot create campaigns")
	}

	if req.CustomTemplate != "" {
		if result := templates.ValidateTemplate(req.CustomTemplate); !result.Valid {
			return nil, fmt.Errorf("custom template rejected: %s", result.Error)
		}
	}

	templateID := req.TemplateID
	if templateID == "" {
		templateID = "default"
	}
	disclosure := req.InitialDisclosure
	if disclosure == "" {
		disclosure = dating.DisclosureAnonymous
	}

	slug, err := s.uniqueSlug(tenantID, req.Title)
	if err != nil {
		return nil, err
	}

	campaign := &dating.Campaign{
		ID:                      security.GenerateULID(),
		WingmanID:               wingmanID,
		SingleID:                delegation.SingleID,
		DelegationID:            delegation.ID,
		Title:                   req.Title,
		Slug:                    slug,
		Tagline:                 req.Tagline,
		Description:             req.Description,
		TemplateID:              templateID,
		CustomTemplate:          req.CustomTemplate,
		PrimaryColor:            req.PrimaryColor,
		AccentColor:             req.AccentColor,
		IsAcceptingApplications: req.IsAcceptingApplications,
		RequiresPhoto:           req.RequiresPhoto,
		RequiresBio:             req.RequiresBio,
		ShowWingmanName:         req.ShowWingmanName,
		ShowSingleBio:           req.ShowSingleBio,
		InitialDisclosure:       disclosure,
		MaxActiveCandidates:     req.MaxActiveCandidates,
		CustomQuestions:         req.CustomQuestions,
		CreatedAt:               time.Now().UTC(),
	}

	if err := s.campaignRepo.Store(tenantID, campaign); err != nil {
		return nil, fmt.Errorf("failed to store campaign: %w", err)
	}

	s.logger.Campaign().Info("Campaign created",
		"tenantId", tenantID, "campaignId", campaign.ID, "slug", campaign.Slug)
	return campaign, nil
}

// Update applies campaign edits after verifying ownership. Template changes
// pass through validation like on create.
func (s *CampaignService) Update(tenantID, campaignID, actorID string, req *CampaignRequest) (*dating.Campaign, error) {
	campaign, err := s.ownedCampaign(tenantID, campaignID, actorID)
	if err != nil {
		return nil, err
	}

	if req.CustomTemplate != "" && req.CustomTemplate != campaign.CustomTemplate {
		if result := templates.ValidateTemplate(req.CustomTemplate); !result.Valid {
			return nil, fmt.Errorf("custom template rejected: %s", result.Error)
		}
	}

	campaign.Title = req.Title
	campaign.Tagline = req.Tagline
	campaign.Description = req.Description
	if req.TemplateID != "" {
		campaign.TemplateID = req.TemplateID
	}
	campaign.CustomTemplate = req.CustomTemplate
	campaign.PrimaryColor = req.PrimaryColor
	campaign.AccentColor = req.AccentColor
	campaign.IsAcceptingApplications = req.IsAcceptingApplications
	campaign.RequiresPhoto = req.RequiresPhoto
	campaign.RequiresBio = req.RequiresBio
	campaign.ShowWingmanName = req.ShowWingmanName
	campaign.ShowSingleBio = req.ShowSingleBio
	if req.InitialDisclosure != "" {
		campaign.InitialDisclosure = req.InitialDisclosure
	}
	campaign.MaxActiveCandidates = req.MaxActiveCandidates
	campaign.CustomQuestions = req.CustomQuestions
	now := time.Now().UTC()
	campaign.UpdatedAt = &now

	if err := s.campaignRepo.Update(tenantID, campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign %s: %w", campaignID, err)
	}
	return campaign, nil
}

// Publish makes the landing page public
func (s *CampaignService) Publish(tenantID, campaignID, actorID string) (*dating.Campaign, error) {
	campaign, err := s.ownedCampaign(tenantID, campaignID, actorID)
	if err != nil {
		return nil, err
	}
	if campaign.IsPublished {
		return campaign, nil
	}

	now := time.Now().UTC()
	campaign.IsPublished = true
	campaign.PublishedAt = &now
	campaign.UpdatedAt = &now

	if err := s.campaignRepo.Update(tenantID, campaign); err != nil {
		return nil, fmt.Errorf("failed to publish campaign %s: %w", campaignID, err)
	}
	s.logger.Campaign().Info("Campaign published", "tenantId", tenantID, "campaignId", campaignID)
	return campaign, nil
}

// Unpublish takes the landing page offline without deleting anything
func (s *CampaignService) Unpublish(tenantID, campaignID, actorID string) (*dating.Campaign, error) {
	campaign, err := s.ownedCampaign(tenantID, campaignID, actorID)
	if err != nil {
		return nil, err
	}
	if !campaign.IsPublished {
		return campaign, nil
	}

	now := time.Now().UTC()
	campaign.IsPublished = false
	campaign.UpdatedAt = &now

	if err := s.campaignRepo.Update(tenantID, campaign); err != nil {
		return nil, fmt.Errorf("failed to unpublish campaign %s: %w", campaignID, err)
	}
	return campaign, nil
}

// Archive removes a campaign after verifying ownership
func (s *CampaignService) Archive(tenantID, campaignID, actorID string) error {
	if _, err := s.ownedCampaign(tenantID, campaignID, actorID); err != nil {
		return err
	}
	if err := s.campaignRepo.Delete(tenantID, campaignID); err != nil {
		return fmt.Errorf("failed to archive campaign %s: %w", campaignID, err)
	}
	s.logger.Campaign().Info("Campaign archived", "tenantId", tenantID, "campaignId", campaignID)
	return nil
}

// GetByID returns a campaign by ID (cache-first)
func (s *CampaignService) GetByID(tenantID, id string) (*dating.Campaign, error) {
	if id == "" {
		return nil, fmt.Errorf("campaign ID cannot be empty")
	}
	campaign, err := s.campaignRepo.FindByID(tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign %s: %w", id, err)
	}
	return campaign, nil
}

// ListByWingman returns the campaigns a wingman runs
func (s *CampaignService) ListByWingman(tenantID, wingmanID string) ([]*dating.Campaign, error) {
	campaigns, err := s.campaignRepo.FindByWingman(tenantID, wingmanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// ownedCampaign loads a campaign and checks the actor is its wingman or its
// single.
func (s *CampaignService) ownedCampaign(tenantID, campaignID, actorID string) (*dating.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(tenantID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign %s: %w", campaignID, err)
	}
	if campaign == nil {
		return nil, fmt.Errorf("campaign %s not found", campaignID)
	}
	if campaign.WingmanID != actorID && campaign.SingleID != actorID {
		return nil, fmt.Errorf("campaign %s does not belong to this profile", campaignID)
	}
	return campaign, nil
}

// uniqueSlug derives a URL slug from the title, suffixing until free.
func (s *CampaignService) uniqueSlug(tenantID, title string) (string, error) {
	base := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if base == "" {
		base = "campaign"
	}

	slug := base
	for i := 2; ; i++ {
		existing, err := s.campaignRepo.FindBySlug(tenantID, slug)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %s: %w", slug, err)
		}
		if existing == nil {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
