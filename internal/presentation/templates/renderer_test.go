package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() *CampaignTemplateContext {
	return &CampaignTemplateContext{
		Campaign: CampaignInfo{
			Title:                   "Test Campaign",
			Tagline:                 "A test tagline",
			Description:             "This is a description",
			Slug:                    "test-campaign",
			IsAcceptingApplications: true,
			RequiresPhoto:           true,
			RequiresBio:             true,
			CreatedAt:               "2025-01-01T00:00:00Z",
			PublishedAt:             "2025-01-02T00:00:00Z",
		},
		Wingman: PersonInfo{DisplayName: "Jane Wingman", Bio: "I help people find love", Initials: "JW"},
		Single:  PersonInfo{DisplayName: "John Single", Bio: "Looking for someone special", Age: 28, Initials: "JS"},
		Stats:   CandidateStats{TotalCandidates: 10, ActiveCandidates: 5},
		Config:  DisplayConfig{ShowWingmanName: true, ShowSingleBio: true},
	}
}

func TestRenderTemplate(t *testing.T) {
	t.Run("renders variables", func(t *testing.T) {
		out, err := RenderTemplate(`<h1>{{ campaign.title }}</h1>`, testContext())
		require.NoError(t, err)
		assert.Equal(t, "<h1>Test Campaign</h1>", out)
	})

	t.Run("renders conditionals", func(t *testing.T) {
		src := `{% if campaign.is_accepting_applications %}<button>Apply</button>{% else %}<p>Closed</p>{% endif %}`
		out, err := RenderTemplate(src, testContext())
		require.NoError(t, err)
		assert.Contains(t, out, "<button>Apply</button>")
		assert.NotContains(t, out, "<p>Closed</p>")
	})

	t.Run("renders filters", func(t *testing.T) {
		out, err := RenderTemplate(`{{ wingman.display_name | initials }}`, testContext())
		require.NoError(t, err)
		assert.Equal(t, "JW", out)
	})

	t.Run("missing optional variables are falsy", func(t *testing.T) {
		ctx := testContext()
		ctx.Campaign.Tagline = ""
		out, err := RenderTemplate(`{{ campaign.tagline | default: "No tagline" }}`, ctx)
		require.NoError(t, err)
		assert.Equal(t, "No tagline", out)

		out, err = RenderTemplate(`{% if campaign.tagline %}has{% else %}none{% endif %}`, ctx)
		require.NoError(t, err)
		assert.Equal(t, "none", out)
	})

	t.Run("undisclosed age is falsy", func(t *testing.T) {
		ctx := testContext()
		ctx.Single.Age = 0
		out, err := RenderTemplate(`{% if single.age %}, {{ single.age }}{% endif %}`, ctx)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("unclosed output falls back instead of leaking source", func(t *testing.T) {
		out, err := RenderTemplate(`{{ unclosed`, testContext())
		require.Error(t, err)
		assert.NotContains(t, out, "{{ unclosed")
		assert.Contains(t, out, "Test Campaign")
	})

	t.Run("falls back on parse error", func(t *testing.T) {
		out, err := RenderTemplate(`{% invalid_tag %}`, testContext())
		require.Error(t, err)
		assert.Contains(t, out, "Test Campaign")
		assert.Contains(t, out, "A test tagline")
		assert.Contains(t, out, "This is a description")
	})

	t.Run("fallback omits absent optional lines", func(t *testing.T) {
		ctx := testContext()
		ctx.Campaign.Tagline = ""
		ctx.Campaign.Description = ""
		out, err := RenderTemplate(`{% if %}`, ctx)
		require.Error(t, err)
		assert.Contains(t, out, "Test Campaign")
		assert.NotContains(t, out, "<p")
	})

	t.Run("fallback escapes campaign copy", func(t *testing.T) {
		ctx := testContext()
		ctx.Campaign.Title = `<script>alert("x")</script>`
		out, err := RenderTemplate(`{% broken %}`, ctx)
		require.Error(t, err)
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "&lt;script&gt;")
	})
}

func TestValidateTemplate(t *testing.T) {
	t.Run("accepts correct template", func(t *testing.T) {
		result := ValidateTemplate(`{{ campaign.title }}`)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Error)
	})

	t.Run("accepts conditionals", func(t *testing.T) {
		assert.True(t, ValidateTemplate(`{% if true %}yes{% endif %}`).Valid)
	})

	t.Run("rejects unclosed output", func(t *testing.T) {
		result := ValidateTemplate(`{{ unclosed`)
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Error)
	})

	t.Run("rejects unclosed conditional", func(t *testing.T) {
		assert.False(t, ValidateTemplate(`{% if true %}yes`).Valid)
	})

	t.Run("rejects unclosed tag delimiter", func(t *testing.T) {
		assert.False(t, ValidateTemplate(`{% assign x`).Valid)
	})

	t.Run("rejects opener swallowed by the next one", func(t *testing.T) {
		assert.False(t, ValidateTemplate(`{{ a {{ b }}`).Valid)
	})

	t.Run("accepts every catalog theme", func(t *testing.T) {
		for _, meta := range AllTemplates() {
			assert.True(t, ValidateTemplate(meta.Template).Valid, meta.ID)
		}
	})

	t.Run("rejects unknown tag", func(t *testing.T) {
		result := ValidateTemplate(`{% frobnicate %}`)
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Error)
	})

	t.Run("rejects unknown filter", func(t *testing.T) {
		// Filters resolve at render time; the probe render must catch this.
		result := ValidateTemplate(`{{ campaign.title | no_such_filter }}`)
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Error)
	})

	t.Run("agrees with rendering", func(t *testing.T) {
		for _, src := range []string{
			`{{ campaign.title }}`,
			`{% if stats.total_candidates > 0 %}{{ stats.total_candidates }}{% endif %}`,
			`{{ single.display_name | default: "Someone" }}`,
		} {
			require.True(t, ValidateTemplate(src).Valid, src)
			_, err := RenderTemplate(src, testContext())
			require.NoError(t, err, src)
		}
	})
}
