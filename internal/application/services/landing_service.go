package services

import (
	"fmt"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/domain/repositories"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/performance"
	"github.com/blindcal/blindcal-go/internal/presentation/templates"
)

// LandingService renders public campaign landing pages. The template context
// is rebuilt from current data on every request; rendered HTML is never
// cached.
type LandingService struct {
	campaignRepo  repositories.CampaignRepository
	candidateRepo repositories.CandidateRepository
	profileRepo   repositories.ProfileRepository
	perfTracker   *performance.Tracker
	logger        *logging.ChanneledLogger
}

// NewLandingService creates a new landing application service
func NewLandingService(
	campaignRepo repositories.CampaignRepository,
	candidateRepo repositories.CandidateRepository,
	profileRepo repositories.ProfileRepository,
	perfTracker *performance.Tracker,
	logger *logging.ChanneledLogger,
) *LandingService {
	return &LandingService{
		campaignRepo:  campaignRepo,
		candidateRepo: candidateRepo,
		profileRepo:   profileRepo,
		perfTracker:   perfTracker,
		logger:        logger,
	}
}

// LandingPage is the rendered result plus the data the enclosing page needs
type LandingPage struct {
	HTML     string
	Campaign *dating.Campaign
}

// RenderBySlug builds the template context for a published campaign and
// renders its landing page. A broken custom template degrades to the
// fallback fragment; the page itself always renders.
func (s *LandingService) RenderBySlug(tenantID, slug string) (*LandingPage, error) {
	marker := s.perfTracker.StartOperation("landing_render", tenantID)
	defer marker.Complete()

	campaign, err := s.campaignRepo.FindBySlug(tenantID, slug)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign == nil || !campaign.IsPublished {
		return nil, nil
	}

	ctx, err := s.buildContext(tenantID, campaign)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	src := campaign.CustomTemplate
	if src == "" {
		src = templates.GetTemplate(campaign.TemplateID)
	}

	html, renderErr := templates.RenderTemplate(src, ctx)
	if renderErr != nil {
		s.logger.LogRenderFallback(tenantID, slug, renderErr)
		marker.AddMetadata("fallback", true)
	}

	return &LandingPage{HTML: html, Campaign: campaign}, nil
}

// Preview renders an arbitrary template against a campaign's live context,
// used by the admin editor before saving a custom template.
func (s *LandingService) Preview(tenantID, campaignID, templateSrc string) (string, error) {
	campaign, err := s.campaignRepo.FindByID(tenantID, campaignID)
	if err != nil {
		return "", fmt.Errorf("failed to load campaign %s: %w", campaignID, err)
	}
	if campaign == nil {
		return "", fmt.Errorf("campaign %s not found", campaignID)
	}

	ctx, err := s.buildContext(tenantID, campaign)
	if err != nil {
		return "", err
	}

	html, renderErr := templates.RenderTemplate(templateSrc, ctx)
	if renderErr != nil {
		s.logger.LogRenderFallback(tenantID, campaign.Slug, renderErr)
	}
	return html, nil
}

// buildContext assembles the public-safe template context. Disclosure
// decisions happen here: the template never sees a name or bio the campaign
// config withholds.
func (s *LandingService) buildContext(tenantID string, campaign *dating.Campaign) (*templates.CampaignTemplateContext, error) {
	wingman, err := s.profileRepo.FindByID(tenantID, campaign.WingmanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wingman profile: %w", err)
	}
	single, err := s.profileRepo.FindByID(tenantID, campaign.SingleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load single profile: %w", err)
	}

	stats, err := s.candidateRepo.CountByCampaign(tenantID, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}

	ctx := &templates.CampaignTemplateContext{
		Campaign: templates.CampaignInfo{
			Title:                   campaign.Title,
			Tagline:                 campaign.Tagline,
			Description:             campaign.Description,
			Slug:                    campaign.Slug,
			IsAcceptingApplications: campaign.IsAcceptingApplications,
			RequiresPhoto:           campaign.RequiresPhoto,
			RequiresBio:             campaign.RequiresBio,
			CustomQuestions:         questionInfo(campaign.CustomQuestions),
			CreatedAt:               campaign.CreatedAt.UTC().Format(time.RFC3339),
		},
		Stats: templates.CandidateStats{
			TotalCandidates:  stats.Total,
			ActiveCandidates: stats.Active,
		},
		Config: templates.DisplayConfig{
			ShowWingmanName: campaign.ShowWingmanName,
			ShowSingleBio:   campaign.ShowSingleBio,
			PrimaryColor:    campaign.PrimaryColor,
			AccentColor:     campaign.AccentColor,
		},
	}
	if campaign.PublishedAt != nil {
		ctx.Campaign.PublishedAt = campaign.PublishedAt.UTC().Format(time.RFC3339)
	}

	if wingman != nil {
		ctx.Wingman.Initials = templates.Initials(wingman.DisplayName)
		if campaign.ShowWingmanName {
			ctx.Wingman.DisplayName = wingman.DisplayName
			ctx.Wingman.Bio = wingman.Bio
		}
	}
	if single != nil {
		ctx.Single.Initials = templates.Initials(single.DisplayName)
		ctx.Single.Age = templates.AgeFromBirthdate(single.DateOfBirth)
		// Anonymous campaigns keep the single nameless; the initials and
		// age are the whole public identity.
		if campaign.InitialDisclosure != dating.DisclosureAnonymous {
			ctx.Single.DisplayName = single.DisplayName
		}
		if campaign.ShowSingleBio {
			ctx.Single.Bio = single.Bio
		}
	}

	return ctx, nil
}

func questionInfo(questions []dating.CustomQuestion) []templates.CustomQuestion {
	infos := make([]templates.CustomQuestion, 0, len(questions))
	for _, q := range questions {
		infos = append(infos, templates.CustomQuestion{Question: q.Question, Required: q.Required})
	}
	return infos
}
