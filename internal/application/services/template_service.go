package services

import (
	"github.com/blindcal/blindcal-go/internal/presentation/templates"
)

// TemplateService exposes the theme catalog and custom-template validation.
// It is a stateless singleton; the catalog is process-wide static data.
type TemplateService struct{}

// NewTemplateService creates the template application service
func NewTemplateService() *TemplateService {
	return &TemplateService{}
}

// ListThemes returns the theme catalog with picker metadata
func (s *TemplateService) ListThemes() []templates.TemplateMeta {
	return templates.AllTemplates()
}

// Validate checks a custom template before storage
func (s *TemplateService) Validate(src string) templates.ValidationResult {
	return templates.ValidateTemplate(src)
}
