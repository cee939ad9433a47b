package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/performance"
)

type landingFixture struct {
	svc        *LandingService
	campaigns  *fakeCampaignRepo
	candidates *fakeCandidateRepo
	profiles   *fakeProfileRepo
}

func newLandingFixture(t *testing.T) *landingFixture {
	t.Helper()
	f := &landingFixture{
		campaigns:  newFakeCampaignRepo(),
		candidates: newFakeCandidateRepo(),
		profiles:   newFakeProfileRepo(),
	}
	f.svc = NewLandingService(f.campaigns, f.candidates, f.profiles, performance.NewTracker(nil), testLogger(t))

	wingman := seedProfile(f.profiles, "wingman-1", dating.RoleWingman)
	wingman.DisplayName = "Morgan Reyes"
	single := seedProfile(f.profiles, "single-1", dating.RoleSingle)
	single.DisplayName = "Dana Whitfield"
	single.Bio = "Marathon runner, terrible at karaoke."

	f.campaigns.campaigns["camp-1"] = &dating.Campaign{
		ID: "camp-1", WingmanID: "wingman-1", SingleID: "single-1",
		DelegationID: "del-1", Title: "Date My Best Friend",
		Tagline: "She's great, trust me", Slug: "date-my-best-friend",
		TemplateID: "default", IsPublished: true, IsAcceptingApplications: true,
		InitialDisclosure: dating.DisclosureAnonymous,
		CreatedAt:         time.Now().UTC(),
	}
	return f
}

func TestRenderBySlug(t *testing.T) {
	t.Run("renders the published page with campaign data", func(t *testing.T) {
		f := newLandingFixture(t)

		page, err := f.svc.RenderBySlug("default", "date-my-best-friend")
		require.NoError(t, err)
		require.NotNil(t, page)

		assert.Contains(t, page.HTML, "Date My Best Friend")
		assert.Equal(t, "camp-1", page.Campaign.ID)
	})

	t.Run("anonymous campaigns never render the single's name", func(t *testing.T) {
		f := newLandingFixture(t)

		page, err := f.svc.RenderBySlug("default", "date-my-best-friend")
		require.NoError(t, err)
		require.NotNil(t, page)
		assert.NotContains(t, page.HTML, "Dana Whitfield")
	})

	t.Run("withheld bios stay out of the page", func(t *testing.T) {
		f := newLandingFixture(t)
		f.campaigns.campaigns["camp-1"].ShowSingleBio = false

		page, err := f.svc.RenderBySlug("default", "date-my-best-friend")
		require.NoError(t, err)
		require.NotNil(t, page)
		assert.NotContains(t, page.HTML, "Marathon runner")
	})

	t.Run("unpublished campaigns return no page", func(t *testing.T) {
		f := newLandingFixture(t)
		f.campaigns.campaigns["camp-1"].IsPublished = false

		page, err := f.svc.RenderBySlug("default", "date-my-best-friend")
		require.NoError(t, err)
		assert.Nil(t, page)
	})

	t.Run("a broken custom template still yields a page", func(t *testing.T) {
		f := newLandingFixture(t)
		f.campaigns.campaigns["camp-1"].CustomTemplate = `{{ campaign.title | no_such_filter }}`

		page, err := f.svc.RenderBySlug("default", "date-my-best-friend")
		require.NoError(t, err)
		require.NotNil(t, page)
		assert.NotEmpty(t, page.HTML)
	})
}

func TestPreview(t *testing.T) {
	t.Run("renders an arbitrary template against live data", func(t *testing.T) {
		f := newLandingFixture(t)
		f.candidates.candidates["cand-1"] = &dating.Candidate{
			ID: "cand-1", CampaignID: "camp-1", CurrentStage: dating.StageScreening,
		}

		html, err := f.svc.Preview("default", "camp-1", `<p>{{ campaign.title }} ({{ stats.active_candidates }} active)</p>`)
		require.NoError(t, err)
		assert.Contains(t, html, "Date My Best Friend")
		assert.Contains(t, html, "(1 active)")
	})

	t.Run("unknown campaigns are an error", func(t *testing.T) {
		f := newLandingFixture(t)

		_, err := f.svc.Preview("default", "missing", `<p>hi</p>`)
		require.Error(t, err)
	})
}

func TestListThemes(t *testing.T) {
	themes := NewTemplateService().ListThemes()
	require.NotEmpty(t, themes)

	ids := make(map[string]bool, len(themes))
	for _, theme := range themes {
		assert.NotEmpty(t, theme.ID)
		assert.NotEmpty(t, theme.Name)
		assert.False(t, ids[theme.ID], "theme IDs must be unique")
		ids[theme.ID] = true
	}
	assert.True(t, ids["default"], "the default theme must exist")
}
