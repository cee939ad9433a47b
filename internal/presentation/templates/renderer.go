package templates

import (
	"fmt"
	"strings"
)

// ValidationResult reports whether a custom template may be stored.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// RenderTemplate renders src against ctx. It always returns usable HTML:
// any parse or render failure yields the fallback fragment built from the
// campaign's title, tagline, and description. The returned error is the
// failure that forced the fallback, for logging only; it is nil on the
// happy path and callers may ignore it.
func RenderTemplate(src string, ctx *CampaignTemplateContext) (string, error) {
	engine := newEngine()

	if err := checkDelimiters(src); err != nil {
		return FallbackHTML(ctx), fmt.Errorf("parse template: %w", err)
	}
	tpl, err := engine.ParseString(src)
	if err != nil {
		return FallbackHTML(ctx), fmt.Errorf("parse template: %w", err)
	}

	out, err := tpl.Render(ctx.Bindings())
	if err != nil {
		return FallbackHTML(ctx), fmt.Errorf("render template: %w", err)
	}

	return string(out), nil
}

// ValidateTemplate checks a custom template before it is stored. Parsing
// alone misses unknown filters (they resolve at render time), so a probe
// render against a fully populated context runs as well; a template that
// validates here will render for any real campaign context.
func ValidateTemplate(src string) ValidationResult {
	engine := newEngine()

	if err := checkDelimiters(src); err != nil {
		return ValidationResult{Valid: false, Error: err.Error()}
	}
	tpl, err := engine.ParseString(src)
	if err != nil {
		return ValidationResult{Valid: false, Error: err.Error()}
	}

	if _, err := tpl.Render(probeContext().Bindings()); err != nil {
		return ValidationResult{Valid: false, Error: err.Error()}
	}

	return ValidationResult{Valid: true}
}

// FallbackHTML is the degraded landing fragment used when a template cannot
// be rendered. It depends only on campaign copy, never on template input,
// so it cannot itself fail.
func FallbackHTML(ctx *CampaignTemplateContext) string {
	var b strings.Builder
	b.WriteString("<div class=\"p-8 text-center\">\n")
	fmt.Fprintf(&b, "  <h1 class=\"text-2xl font-bold\">%s</h1>\n", escapeText(ctx.Campaign.Title))
	if ctx.Campaign.Tagline != "" {
		fmt.Fprintf(&b, "  <p class=\"text-lg text-gray-600 mt-2\">%s</p>\n", escapeText(ctx.Campaign.Tagline))
	}
	if ctx.Campaign.Description != "" {
		fmt.Fprintf(&b, "  <p class=\"mt-4\">%s</p>\n", escapeText(ctx.Campaign.Description))
	}
	b.WriteString("</div>")
	return b.String()
}

func escapeText(s string) string {
	return filterSafeText(s)
}

// checkDelimiters rejects any "{{" or "{%" with no matching closer before
// the next opener or the end of input. The engine's lexer treats an
// unmatched opener as literal text, which would leak raw template source
// into the page; the author gets a parse error instead.
func checkDelimiters(src string) error {
	for i := 0; i+1 < len(src); {
		open := src[i : i+2]
		var closer string
		switch open {
		case "{{":
			closer = "}}"
		case "{%":
			closer = "%}"
		default:
			i++
			continue
		}
		rest := src[i+2:]
		end := strings.Index(rest, closer)
		if next := nextOpener(rest); end < 0 || (next >= 0 && next < end) {
			return fmt.Errorf("unclosed %s: expected %s", open, closer)
		}
		i += 2 + end + len(closer)
	}
	return nil
}

func nextOpener(s string) int {
	out := strings.Index(s, "{{")
	if tag := strings.Index(s, "{%"); tag >= 0 && (out < 0 || tag < out) {
		return tag
	}
	return out
}

// probeContext exercises every context field so a probe render touches each
// variable a template could reference.
func probeContext() *CampaignTemplateContext {
	return &CampaignTemplateContext{
		Campaign: CampaignInfo{
			Title:                   "Probe Campaign",
			Tagline:                 "A tagline",
			Description:             "A description",
			Slug:                    "probe-campaign",
			IsAcceptingApplications: true,
			RequiresPhoto:           true,
			RequiresBio:             true,
			CustomQuestions: []CustomQuestion{
				{Question: "What makes you laugh?", Required: true},
			},
			CreatedAt:   "2024-01-01T00:00:00Z",
			PublishedAt: "2024-01-02T00:00:00Z",
		},
		Wingman: PersonInfo{DisplayName: "Probe Wingman", Bio: "Bio", Initials: "PW"},
		Single:  PersonInfo{DisplayName: "Probe Single", Bio: "Bio", Age: 30, Initials: "PS"},
		Stats:   CandidateStats{TotalCandidates: 2, ActiveCandidates: 1},
		Config: DisplayConfig{
			ShowWingmanName: true,
			ShowSingleBio:   true,
			PrimaryColor:    "#000000",
			AccentColor:     "#ffffff",
		},
	}
}
