package templates

// DefaultTemplateID is the theme used when a campaign names no theme or an
// unknown one.
const DefaultTemplateID = "default"

// TemplateMeta describes one catalog entry for theme pickers.
type TemplateMeta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Template    string `json:"template"`
}

var catalog = map[string]string{
	"default":  defaultCampaignTemplate,
	"minimal":  minimalCampaignTemplate,
	"detailed": detailedCampaignTemplate,
	"elegant":  elegantCampaignTemplate,
	"playful":  playfulCampaignTemplate,
}

// catalogOrder fixes the presentation order of AllTemplates.
var catalogOrder = []string{"default", "minimal", "detailed", "elegant", "playful"}

var catalogMeta = map[string]struct{ name, description string }{
	"default":  {"Classic", "A balanced layout with header, description, people cards, and call-to-action"},
	"minimal":  {"Minimal", "Simple centered card design - perfect for quick campaigns"},
	"detailed": {"Detailed", "Rich layout with gradient hero, detailed people cards, and requirements section"},
	"elegant":  {"Elegant", "Sophisticated design with clean lines and refined typography"},
	"playful":  {"Playful", "Fun and vibrant design with colorful gradients and animations"},
}

// GetTemplate returns a built-in theme body by ID. Unknown IDs fall back to
// the default theme so a stale campaign row can't break its landing page.
func GetTemplate(id string) string {
	if body, ok := catalog[id]; ok {
		return body
	}
	return catalog[DefaultTemplateID]
}

// IsBuiltinTemplate reports whether id names a catalog theme.
func IsBuiltinTemplate(id string) bool {
	_, ok := catalog[id]
	return ok
}

// AllTemplates lists every catalog theme with metadata, in picker order.
func AllTemplates() []TemplateMeta {
	metas := make([]TemplateMeta, 0, len(catalogOrder))
	for _, id := range catalogOrder {
		meta := catalogMeta[id]
		metas = append(metas, TemplateMeta{
			ID:          id,
			Name:        meta.name,
			Description: meta.description,
			Template:    catalog[id],
		})
	}
	return metas
}
