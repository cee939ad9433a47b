package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func themeContext() *CampaignTemplateContext {
	return &CampaignTemplateContext{
		Campaign: CampaignInfo{
			Title:                   "Find Love Campaign",
			Tagline:                 "Your match awaits",
			Description:             "Looking for that special someone",
			Slug:                    "find-love",
			IsAcceptingApplications: true,
			RequiresPhoto:           true,
			RequiresBio:             false,
			CreatedAt:               "2025-01-01T00:00:00Z",
			PublishedAt:             "2025-01-15T00:00:00Z",
		},
		Wingman: PersonInfo{DisplayName: "Sarah Helper", Bio: "Professional matchmaker", Initials: "SH"},
		Single:  PersonInfo{DisplayName: "Alex Seeker", Bio: "Adventure lover", Age: 30, Initials: "AS"},
		Stats:   CandidateStats{TotalCandidates: 25, ActiveCandidates: 15},
		Config:  DisplayConfig{ShowWingmanName: true, ShowSingleBio: true},
	}
}

func renderTheme(t *testing.T, id string, ctx *CampaignTemplateContext) string {
	t.Helper()
	out, err := RenderTemplate(GetTemplate(id), ctx)
	require.NoError(t, err)
	return out
}

func TestDefaultTheme(t *testing.T) {
	out := renderTheme(t, "default", themeContext())

	assert.Contains(t, out, "Find Love Campaign")
	assert.Contains(t, out, "Your match awaits")
	assert.Contains(t, out, "Apply Now")
	assert.Contains(t, out, "25")
	assert.Contains(t, out, "people have")
	assert.Contains(t, out, "Sarah Helper")
	assert.Contains(t, out, "SH")

	t.Run("closed campaign", func(t *testing.T) {
		ctx := themeContext()
		ctx.Campaign.IsAcceptingApplications = false
		out := renderTheme(t, "default", ctx)
		assert.Contains(t, out, "Applications Closed")
		assert.NotContains(t, out, "Apply Now")
	})

	t.Run("singular social proof", func(t *testing.T) {
		ctx := themeContext()
		ctx.Stats.TotalCandidates = 1
		out := renderTheme(t, "default", ctx)
		assert.Contains(t, out, "person has")
	})

	t.Run("zero candidates hides stats", func(t *testing.T) {
		ctx := themeContext()
		ctx.Stats.TotalCandidates = 0
		out := renderTheme(t, "default", ctx)
		assert.NotContains(t, out, "already applied")
	})
}

func TestMinimalTheme(t *testing.T) {
	out := renderTheme(t, "minimal", themeContext())

	assert.Contains(t, out, "Find Love Campaign")
	assert.Contains(t, out, "Apply")
	assert.NotContains(t, out, "About This Opportunity")
	assert.NotContains(t, out, "Meet the People")
}

func TestDetailedTheme(t *testing.T) {
	out := renderTheme(t, "detailed", themeContext())

	assert.Contains(t, out, "Find Love Campaign")
	assert.Contains(t, out, "Your match awaits")
	assert.Contains(t, out, "Sarah Helper")
	assert.Contains(t, out, "Alex Seeker")
	assert.Contains(t, out, "Wingman")
	assert.Contains(t, out, "photo")
	assert.Contains(t, out, "Ready to Take a Chance")

	t.Run("custom questions listed", func(t *testing.T) {
		ctx := themeContext()
		ctx.Campaign.CustomQuestions = []CustomQuestion{
			{Question: "What makes you laugh?", Required: true},
			{Question: "Favorite meal?", Required: false},
		}
		out := renderTheme(t, "detailed", ctx)
		assert.Contains(t, out, "What makes you laugh?")
		assert.Contains(t, out, "(required)")
		assert.Contains(t, out, "Favorite meal?")
	})
}

func TestElegantTheme(t *testing.T) {
	out := renderTheme(t, "elegant", themeContext())

	assert.Contains(t, out, "Find Love Campaign")
	assert.Contains(t, out, "An Invitation")
	assert.Contains(t, out, "The Matchmaker")
	assert.Contains(t, out, "Sarah Helper")
	assert.Contains(t, out, "Express Your Interest")
	assert.Contains(t, out, "Begin Application")
	assert.Contains(t, out, "25")
	assert.Contains(t, out, "expressions of interest")

	t.Run("closed campaign", func(t *testing.T) {
		ctx := themeContext()
		ctx.Campaign.IsAcceptingApplications = false
		out := renderTheme(t, "elegant", ctx)
		assert.Contains(t, out, "Applications are currently closed")
	})
}

func TestPlayfulTheme(t *testing.T) {
	out := renderTheme(t, "playful", themeContext())

	assert.Contains(t, out, "Find Love Campaign")
	assert.Contains(t, out, "New Adventure Awaits")
	assert.Contains(t, out, "Join the Fun")
	assert.Contains(t, out, "What's This About?")
	assert.Contains(t, out, "Your Wingman")
	assert.Contains(t, out, "Sarah Helper")
	assert.Contains(t, out, "25")
	assert.Contains(t, out, "already applied")
	assert.Contains(t, out, "Ready to Say Hello?")
	assert.Contains(t, out, "Let's Do This")

	t.Run("closed campaign", func(t *testing.T) {
		ctx := themeContext()
		ctx.Campaign.IsAcceptingApplications = false
		out := renderTheme(t, "playful", ctx)
		assert.Contains(t, out, "Applications are closed for now")
	})
}

func TestGetTemplate(t *testing.T) {
	assert.Equal(t, defaultCampaignTemplate, GetTemplate("default"))
	assert.Equal(t, minimalCampaignTemplate, GetTemplate("minimal"))
	assert.Equal(t, detailedCampaignTemplate, GetTemplate("detailed"))
	assert.Equal(t, elegantCampaignTemplate, GetTemplate("elegant"))
	assert.Equal(t, playfulCampaignTemplate, GetTemplate("playful"))

	t.Run("unknown id falls back to default", func(t *testing.T) {
		assert.Equal(t, defaultCampaignTemplate, GetTemplate("brutalist"))
		assert.Equal(t, defaultCampaignTemplate, GetTemplate(""))
	})

	t.Run("builtin check", func(t *testing.T) {
		assert.True(t, IsBuiltinTemplate("elegant"))
		assert.False(t, IsBuiltinTemplate("brutalist"))
	})
}

func TestAllTemplates(t *testing.T) {
	metas := AllTemplates()
	require.Len(t, metas, 5)

	ids := make([]string, 0, len(metas))
	for _, meta := range metas {
		ids = append(ids, meta.ID)
		assert.NotEmpty(t, meta.Name)
		assert.NotEmpty(t, meta.Description)
		assert.Greater(t, len(meta.Template), 100)
	}
	assert.Equal(t, []string{"default", "minimal", "detailed", "elegant", "playful"}, ids)
}

func TestEveryThemeValidatesAndRenders(t *testing.T) {
	for _, meta := range AllTemplates() {
		result := ValidateTemplate(meta.Template)
		require.True(t, result.Valid, "%s: %s", meta.ID, result.Error)

		out, err := RenderTemplate(meta.Template, themeContext())
		require.NoError(t, err, meta.ID)
		assert.Contains(t, out, "Find Love Campaign", meta.ID)
	}
}
