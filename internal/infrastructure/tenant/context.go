// Package tenant provides tenant context management for multi-tenant support.
package tenant

import (
	"github.com/blindcal/blindcal-go/internal/domain/repositories"
	"github.com/blindcal/blindcal-go/internal/infrastructure/caching/manager"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	persistence "github.com/blindcal/blindcal-go/internal/infrastructure/persistence/dating"
)

// Context holds tenant-specific request context
type Context struct {
	TenantID     string
	Config       *Config
	Database     *Database
	Status       string
	CacheManager *manager.Manager
	Logger       *logging.ChanneledLogger
}

// Close cleans up the tenant context
func (ctx *Context) Close() error {
	if ctx.Database != nil {
		return ctx.Database.Close()
	}
	return nil
}

// GetTenantID returns the tenant ID for this context
func (ctx *Context) GetTenantID() string {
	return ctx.TenantID
}

// GetConfig returns the tenant configuration
func (ctx *Context) GetConfig() *Config {
	return ctx.Config
}

// GetDatabase returns the tenant database connection
func (ctx *Context) GetDatabase() *Database {
	return ctx.Database
}

// GetStatus returns the tenant status
func (ctx *Context) GetStatus() string {
	return ctx.Status
}

// GetCacheManager returns the cache manager
func (ctx *Context) GetCacheManager() *manager.Manager {
	return ctx.CacheManager
}

// IsActive returns true if the tenant is active
func (ctx *Context) IsActive() bool {
	return ctx.Status == "active"
}

// IsReserved returns true if the tenant is reserved (awaiting activation)
func (ctx *Context) IsReserved() bool {
	return ctx.Status == "reserved"
}

// GetDatabaseInfo returns database connection information for logging
func (ctx *Context) GetDatabaseInfo() string {
	if ctx.Database != nil {
		return ctx.Database.GetConnectionInfo()
	}
	return "no database connection"
}

// =============================================================================
// Repository Factory Methods
// =============================================================================

// ProfileRepo returns a profile repository instance
func (ctx *Context) ProfileRepo() repositories.ProfileRepository {
	return persistence.NewProfileRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// DelegationRepo returns a delegation repository instance
func (ctx *Context) DelegationRepo() repositories.DelegationRepository {
	return persistence.NewDelegationRepository(ctx.Database.Conn, ctx.Logger)
}

// CampaignRepo returns a campaign repository instance
func (ctx *Context) CampaignRepo() repositories.CampaignRepository {
	return persistence.NewCampaignRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// CandidateRepo returns a candidate repository instance
func (ctx *Context) CandidateRepo() repositories.CandidateRepository {
	return persistence.NewCandidateRepository(ctx.Database.Conn, ctx.CacheManager, ctx.Logger)
}

// BookingRepo returns a booking repository instance
func (ctx *Context) BookingRepo() repositories.BookingRepository {
	return persistence.NewBookingRepository(ctx.Database.Conn, ctx.Logger)
}

// MessageRepo returns a message repository instance
func (ctx *Context) MessageRepo() repositories.MessageRepository {
	return persistence.NewMessageRepository(ctx.Database.Conn, ctx.Logger)
}
