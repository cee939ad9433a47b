package templates

import "github.com/osteele/liquid"

// CampaignTemplateContext is the complete data surface a landing-page
// template can see. Everything in it is public-safe; identity disclosure
// decisions happen before this struct is built, never inside a template.
type CampaignTemplateContext struct {
	Campaign CampaignInfo
	Wingman  PersonInfo
	Single   PersonInfo
	Stats    CandidateStats
	Config   DisplayConfig
}

// CampaignInfo carries campaign copy and application settings.
type CampaignInfo struct {
	Title                   string
	Tagline                 string
	Description             string
	Slug                    string
	IsAcceptingApplications bool
	RequiresPhoto           bool
	RequiresBio             bool
	CustomQuestions         []CustomQuestion
	CreatedAt               string
	PublishedAt             string
}

// CustomQuestion is one campaign-specific application prompt.
type CustomQuestion struct {
	Question string
	Required bool
}

// PersonInfo is the disclosed view of a wingman or single. Age is only
// meaningful for the single; zero means undisclosed.
type PersonInfo struct {
	DisplayName string
	Bio         string
	Age         int
	Initials    string
}

// CandidateStats are aggregate counts shown as social proof.
type CandidateStats struct {
	TotalCandidates  int
	ActiveCandidates int
}

// DisplayConfig holds per-campaign presentation switches.
type DisplayConfig struct {
	ShowWingmanName bool
	ShowSingleBio   bool
	PrimaryColor    string
	AccentColor     string
}

// Bindings converts the context to the variable tree templates evaluate
// against. Absent optional strings are omitted rather than bound as "",
// so `{% if campaign.tagline %}` behaves under Liquid truthiness (only
// nil and false are falsy). CustomQuestions is always bound, possibly
// empty, so `.size` comparisons never see nil.
func (ctx *CampaignTemplateContext) Bindings() liquid.Bindings {
	campaign := map[string]any{
		"title":                     ctx.Campaign.Title,
		"slug":                      ctx.Campaign.Slug,
		"is_accepting_applications": ctx.Campaign.IsAcceptingApplications,
		"requires_photo":            ctx.Campaign.RequiresPhoto,
		"requires_bio":              ctx.Campaign.RequiresBio,
		"created_at":                ctx.Campaign.CreatedAt,
		"custom_questions":          questionBindings(ctx.Campaign.CustomQuestions),
	}
	setIfPresent(campaign, "tagline", ctx.Campaign.Tagline)
	setIfPresent(campaign, "description", ctx.Campaign.Description)
	setIfPresent(campaign, "published_at", ctx.Campaign.PublishedAt)

	wingman := map[string]any{
		"initials": ctx.Wingman.Initials,
	}
	setIfPresent(wingman, "display_name", ctx.Wingman.DisplayName)
	setIfPresent(wingman, "bio", ctx.Wingman.Bio)

	single := map[string]any{
		"initials": ctx.Single.Initials,
	}
	setIfPresent(single, "display_name", ctx.Single.DisplayName)
	setIfPresent(single, "bio", ctx.Single.Bio)
	if ctx.Single.Age > 0 {
		single["age"] = ctx.Single.Age
	}

	config := map[string]any{
		"show_wingman_name": ctx.Config.ShowWingmanName,
		"show_single_bio":   ctx.Config.ShowSingleBio,
	}
	setIfPresent(config, "primary_color", ctx.Config.PrimaryColor)
	setIfPresent(config, "accent_color", ctx.Config.AccentColor)

	return liquid.Bindings{
		"campaign": campaign,
		"wingman":  wingman,
		"single":   single,
		"stats": map[string]any{
			"total_candidates":  ctx.Stats.TotalCandidates,
			"active_candidates": ctx.Stats.ActiveCandidates,
		},
		"config": config,
	}
}

func questionBindings(questions []CustomQuestion) []map[string]any {
	bound := make([]map[string]any, 0, len(questions))
	for _, q := range questions {
		bound = append(bound, map[string]any{
			"question": q.Question,
			"required": q.Required,
		})
	}
	return bound
}

func setIfPresent(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
