package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
)

func campaignFixture(t *testing.T) (*CampaignService, *fakeCampaignRepo, *fakeDelegationRepo) {
	t.Helper()
	campaigns := newFakeCampaignRepo()
	delegations := newFakeDelegationRepo()
	svc := NewCampaignService(campaigns, delegations, testLogger(t))
	return svc, campaigns, delegations
}

func seedDelegation(repo *fakeDelegationRepo, id, singleID, wingmanID string, trust dating.TrustLevel) *dating.Delegation {
	now := time.Now().UTC()
	d := &dating.Delegation{
		ID:         id,
		SingleID:   singleID,
		WingmanID:  wingmanID,
		TrustLevel: trust,
		IsActive:   true,
		AcceptedAt: &now,
		CreatedAt:  now,
	}
	repo.delegations[id] = d
	return d
}

func TestCampaignCreate(t *testing.T) {
	t.Run("creates a campaign under an active delegation", func(t *testing.T) {
		svc, _, delegations := campaignFixture(t)
		seedDelegation(delegations, "del-1", "single-1", "wingman-1", dating.TrustFullDelegation)

		campaign, err := svc.Create("default", "wingman-1", &CampaignRequest{
			DelegationID: "del-1",
			Title:        "Date My Best Friend",
		})
		require.NoError(t, err)

		assert.Equal(t, "wingman-1", campaign.WingmanID)
		assert.Equal(t, "single-1", campaign.SingleID)
		assert.Equal(t, "date-my-best-friend", campaign.Slug)
		assert.Equal(t, "default", campaign.TemplateID)
		assert.Equal(t, dating.DisclosureAnonymous, campaign.InitialDisclosure)
		assert.False(t, campaign.IsPublished, "campaigns start unpublished")
	})

	t.Run("slug collisions get numeric suffixes", func(t *testing.T) {
		svc, _, delegations := campaignFixture(t)
		seedDelegation(delegations, "del-1", "single-1", "wingman-1", dating.TrustFullDelegation)

		first, err := svc.Create("default", "wingman-1", &CampaignRequest{DelegationID: "del-1", Title: "Summer Search"})
		require.NoError(t, err)
		second, err := svc.Create("default", "wingman-1", &CampaignRequest{DelegationID: "del-1", Title: "Summer Search"})
		require.NoError(t, err)
		third, err := svc.Create("default", "wingman-1", &CampaignRequest{DelegationID: "del-1", Title: "Summer Search!"})
		require.NoError(t, err)

		assert.Equal(t, "summer-search", first.Slug)
		assert.Equal(t, "summer-search-2", second.Slug)
		assert.Equal(t, "summer-search-3", third.Slug)
	})

	t.Run("rejects inactive delegations", func(t *testing.T) {
		svc, _, delegations := campaignFixture(t)
		d := seedDelegation(delegations, "del-1", "single-1", "wingman-1", dating.TrustFullDelegation)
		d.IsActive = false

		_, err := svc.Create("default", "wingman-1", &CampaignRequest{DelegationID: "del-1", Title: "Nope"})
		require.Error(t, err)
	})

	t.Run("rejects another wingman's delegation", func(t *testing.T) {
		svc, _, delegations := campaignFixture(t)
		seedDelegation(delegations, "del-1", "single-1", "wingman-1", dating.TrustFullDelegation)

		_, err := svc.Create("default", "wingman-2", &CampaignRequest{DelegationID: "del-1", Title: "Nope"})
		require.Error(t, err)
	})

	t.Run("view-only delegation cannot create campaigns", func(t *testing.T) {
		svc, _, delegations := campaignFixture(t)
		seedDelegation(delegations, "del-1", "single-1", "wingman-1", dating.TrustViewOnly)

		_, err := svc.Create("default", "wingman-1", &CampaignRequest{DelegationID: "del-1", Title: "Nope"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "view-only")
	})

	t.Run("invalid custom template is rejected before storage", func(t *testing.T) {
		svc, campaigns, delegations := campaignFixture(t)
		seedDelegation(delegations, "del-1", "single-1", "wingman-1", dating.TrustFullDelegation)

		_, err := svc.Create("default", "wingman-1", &CampaignRequest{
			DelegationID:   "del-1",
			Title:          "Broken Template",
			CustomTemplate: `{% if campaign.title %}never closed`,
		})
		require.Error(t, err)
		assert.Empty(t, campaigns.campaigns, "nothing may be stored when the template fails validation")
	})
}

func TestCampaignPublish(t *testing.T) {
	svc, _, delegations := campaignFixture(t)
	seedDelegation(delegations, "del-1", "single-1", "wingman-1", dating.TrustFullDelegation)

	campaign, err := svc.Create("default", "wingman-1", &CampaignRequest{DelegationID: "del-1", Title: "Launch"})
	require.NoError(t, err)

	t.Run("publish stamps PublishedAt", func(t *testing.T) {
		published, err := svc.Publish("default", campaign.ID, "wingman-1")
		require.NoError(t, err)
		assert.True(t, published.IsPublished)
		assert.NotNil(t, published.PublishedAt)
	})

	t.Run("publish is idempotent", func(t *testing.T) {
		first, err := svc.Publish("default", campaign.ID, "wingman-1")
		require.NoError(t, err)
		stamp := first.PublishedAt

		again, err := svc.Publish("default", campaign.ID, "wingman-1")
		require.NoError(t, err)
		assert.Equal(t, stamp, again.PublishedAt)
	})

	t.Run("the single can publish their own campaign", func(t *testing.T) {
		_, err := svc.Unpublish("default", campaign.ID, "single-1")
		require.NoError(t, err)
		published, err := svc.Publish("default", campaign.ID, "single-1")
		require.NoError(t, err)
		assert.True(t, published.IsPublished)
	})

	t.Run("strangers cannot touch the campaign", func(t *testing.T) {
		_, err := svc.Publish("default", campaign.ID, "stranger")
		require.Error(t, err)
	})
}

func TestCampaignUpdate(t *testing.T) {
	svc, _, delegations := campaignFixture(t)
	seedDelegation(delegations, "del-1", "single-1", "wingman-1", dating.TrustFullDelegation)

	campaign, err := svc.Create("default", "wingman-1", &CampaignRequest{DelegationID: "del-1", Title: "Original"})
	require.NoError(t, err)

	t.Run("applies edits and stamps UpdatedAt", func(t *testing.T) {
		updated, err := svc.Update("default", campaign.ID, "wingman-1", &CampaignRequest{
			DelegationID:        "del-1",
			Title:               "Renamed",
			Tagline:             "Better than ever",
			MaxActiveCandidates: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "Better than ever", updated.Tagline)
		assert.Equal(t, 10, updated.MaxActiveCandidates)
		assert.NotNil(t, updated.UpdatedAt)
		assert.Equal(t, campaign.Slug, updated.Slug, "slug is stable across renames")
	})

	t.Run("rejects a changed template that fails validation", func(t *testing.T) {
		_, err := svc.Update("default", campaign.ID, "wingman-1", &CampaignRequest{
			DelegationID:   "del-1",
			Title:          "Renamed",
			CustomTemplate: `{{ unclosed`,
		})
		require.Error(t, err)
	})
}

func TestCampaignArchive(t *testing.T) {
	svc, campaigns, delegations := campaignFixture(t)
	seedDelegation(delegations, "del-1", "single-1", "wingman-1", dating.TrustFullDelegation)

	campaign, err := svc.Create("default", "wingman-1", &CampaignRequest{DelegationID: "del-1", Title: "Done"})
	require.NoError(t, err)

	require.Error(t, svc.Archive("default", campaign.ID, "stranger"))
	require.NoError(t, svc.Archive("default", campaign.ID, "wingman-1"))
	assert.Empty(t, campaigns.campaigns)
}
