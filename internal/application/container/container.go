// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/blindcal/blindcal-go/internal/application/services"
	"github.com/blindcal/blindcal-go/internal/infrastructure/caching/manager"
	"github.com/blindcal/blindcal-go/internal/infrastructure/email"
	"github.com/blindcal/blindcal-go/internal/infrastructure/messaging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/performance"
	"github.com/blindcal/blindcal-go/internal/infrastructure/tenant"
)

// Container holds the singleton services and infrastructure dependencies.
// Repository-backed services are constructed per request from the tenant
// context; only stateless and process-wide pieces live here.
type Container struct {
	// Stateless singletons
	TemplateService *services.TemplateService

	// Infrastructure
	TenantManager *tenant.Manager
	CacheManager  *manager.Manager
	Broadcaster   *messaging.PipelineBroadcaster
	EmailService  email.Service
	PerfTracker   *performance.Tracker
	Logger        *logging.ChanneledLogger
}

// NewContainer creates and wires all singleton services
func NewContainer(tenantManager *tenant.Manager, cacheManager *manager.Manager, logger *logging.ChanneledLogger) *Container {
	emailService, err := email.NewService(logger)
	if err != nil {
		logger.Startup().Warn("Email delivery disabled", "reason", err.Error())
		emailService = email.DisabledService{}
	}

	broadcaster := messaging.NewPipelineBroadcaster(logger)
	go broadcaster.Run()

	return &Container{
		TemplateService: services.NewTemplateService(),

		TenantManager: tenantManager,
		CacheManager:  cacheManager,
		Broadcaster:   broadcaster,
		EmailService:  emailService,
		PerfTracker:   performance.NewTracker(performance.DefaultTrackerConfig()),
		Logger:        logger,
	}
}
