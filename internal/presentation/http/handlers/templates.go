package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/application/services"
)

// TemplateHandlers exposes the built-in template catalog and validation
type TemplateHandlers struct {
	templateService *services.TemplateService
}

// NewTemplateHandlers creates template handlers with injected dependencies
func NewTemplateHandlers(templateService *services.TemplateService) *TemplateHandlers {
	return &TemplateHandlers{templateService: templateService}
}

// GetTemplates handles GET /api/v1/templates
func (h *TemplateHandlers) GetTemplates(c *gin.Context) {
	themes := h.templateService.ListThemes()
	c.JSON(http.StatusOK, gin.H{"templates": themes, "count": len(themes)})
}

// PostValidate handles POST /api/v1/templates/validate
func (h *TemplateHandlers) PostValidate(c *gin.Context) {
	var req struct {
		Template string `json:"template" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result := h.templateService.Validate(req.Template)
	c.JSON(http.StatusOK, result)
}
