// Package manager provides centralized cache operations with proper tenant isolation
package manager

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/caching/interfaces"
	"github.com/blindcal/blindcal-go/internal/infrastructure/caching/stores"
	"github.com/blindcal/blindcal-go/internal/infrastructure/caching/types"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
)

// Interface assertion to ensure Manager implements the full cache contract.
var _ interfaces.Cache = (*Manager)(nil)

// Manager provides centralized cache operations with proper tenant isolation by delegating to specialized stores.
type Manager struct {
	Mu             sync.RWMutex
	LastAccessed   map[string]time.Time
	directoryStore *stores.DirectoryStore
	statsStore     *stores.StatsStore
	logger         *logging.ChanneledLogger
}

func NewManager(logger *logging.ChanneledLogger) *Manager {
	if logger != nil {
		logger.Cache().Info("Initializing cache manager", "stores", []string{"directory", "stats"})
	}

	return &Manager{
		LastAccessed:   make(map[string]time.Time),
		directoryStore: stores.NewDirectoryStore(logger),
		statsStore:     stores.NewStatsStore(logger),
		logger:         logger,
	}
}

func (m *Manager) GetTenantDirectoryCache(tenantID string) (*types.TenantDirectoryCache, error) {
	cache, exists := m.directoryStore.GetTenantCache(tenantID)
	if !exists {
		return nil, fmt.Errorf("tenant %s directory cache not initialized", tenantID)
	}
	return cache, nil
}

func (m *Manager) updateTenantAccessTime(tenantID string) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.LastAccessed[tenantID] = time.Now().UTC()
}

func (m *Manager) InitializeTenant(tenantID string) {
	start := time.Now()
	if m.logger != nil {
		m.logger.Cache().Debug("Initializing tenant cache", "tenantId", tenantID)
	}

	m.directoryStore.InitializeTenant(tenantID)
	m.statsStore.InitializeTenant(tenantID)
	m.updateTenantAccessTime(tenantID)

	if m.logger != nil {
		m.logger.Cache().Info("Tenant cache initialized", "tenantId", tenantID, "duration", time.Since(start))
	}
}

// =============================================================================
// Directory Operations
// =============================================================================

func (m *Manager) GetCampaign(tenantID, id string) (*dating.Campaign, bool) {
	return m.directoryStore.GetCampaign(tenantID, id)
}

func (m *Manager) SetCampaign(tenantID string, campaign *dating.Campaign) {
	m.directoryStore.SetCampaign(tenantID, campaign)
	m.updateTenantAccessTime(tenantID)
}

func (m *Manager) GetCampaignIDBySlug(tenantID, slug string) (string, bool) {
	return m.directoryStore.GetCampaignIDBySlug(tenantID, slug)
}

func (m *Manager) GetProfile(tenantID, id string) (*dating.Profile, bool) {
	return m.directoryStore.GetProfile(tenantID, id)
}

func (m *Manager) SetProfile(tenantID string, profile *dating.Profile) {
	m.directoryStore.SetProfile(tenantID, profile)
	m.updateTenantAccessTime(tenantID)
}

func (m *Manager) GetProfileIDByEmail(tenantID, email string) (string, bool) {
	return m.directoryStore.GetProfileIDByEmail(tenantID, email)
}

func (m *Manager) InvalidateCampaign(tenantID, id string) {
	m.directoryStore.InvalidateCampaign(tenantID, id)
	// Stage counts hang off the campaign, drop them together.
	m.statsStore.InvalidateCandidateStats(tenantID, id)
}

func (m *Manager) InvalidateProfile(tenantID, id string) {
	m.directoryStore.InvalidateProfile(tenantID, id)
}

func (m *Manager) InvalidateDirectoryCache(tenantID string) {
	m.directoryStore.InvalidateDirectoryCache(tenantID)
}

// =============================================================================
// Stats Operations
// =============================================================================

func (m *Manager) GetCandidateStats(tenantID, campaignID string) (*dating.CandidateStats, bool) {
	return m.statsStore.GetCandidateStats(tenantID, campaignID)
}

func (m *Manager) SetCandidateStats(tenantID, campaignID string, stats *dating.CandidateStats) {
	m.statsStore.SetCandidateStats(tenantID, campaignID, stats)
	m.updateTenantAccessTime(tenantID)
}

func (m *Manager) InvalidateCandidateStats(tenantID, campaignID string) {
	m.statsStore.InvalidateCandidateStats(tenantID, campaignID)
}

func (m *Manager) InvalidateStatsCache(tenantID string) {
	m.statsStore.InvalidateStatsCache(tenantID)
}

// =============================================================================
// Tenant Lifecycle
// =============================================================================

// InvalidateTenant clears all cached state for a tenant
func (m *Manager) InvalidateTenant(tenantID string) {
	if m.logger != nil {
		m.logger.Cache().Info("Invalidating tenant cache", "tenantId", tenantID)
	}
	m.directoryStore.InvalidateDirectoryCache(tenantID)
	m.statsStore.InvalidateStatsCache(tenantID)
}

// RemoveTenant evicts a tenant's caches entirely, used by the cleanup worker
func (m *Manager) RemoveTenant(tenantID string) {
	m.directoryStore.RemoveTenant(tenantID)
	m.statsStore.RemoveTenant(tenantID)

	m.Mu.Lock()
	delete(m.LastAccessed, tenantID)
	m.Mu.Unlock()
}

// PurgeExpiredStats removes expired stats entries for a tenant
func (m *Manager) PurgeExpiredStats(tenantID string) int {
	return m.statsStore.PurgeExpired(tenantID)
}

// GetAllTenantIDs returns every tenant with an initialized cache
func (m *Manager) GetAllTenantIDs() []string {
	return m.directoryStore.GetAllTenantIDs()
}

// GetLastAccessed returns when a tenant's cache was last touched
func (m *Manager) GetLastAccessed(tenantID string) (time.Time, bool) {
	m.Mu.RLock()
	defer m.Mu.RUnlock()
	t, ok := m.LastAccessed[tenantID]
	return t, ok
}

func (m *Manager) InvalidateAll() {
	for _, tenantID := range m.directoryStore.GetAllTenantIDs() {
		m.InvalidateTenant(tenantID)
	}
}

// GetTenantStats returns cache entry counts for a tenant
func (m *Manager) GetTenantStats(tenantID string) interfaces.CacheStats {
	stats := interfaces.CacheStats{}

	if cache, exists := m.directoryStore.GetTenantCache(tenantID); exists {
		cache.Mu.RLock()
		stats.Campaigns = len(cache.Campaigns)
		stats.Profiles = len(cache.Profiles)
		cache.Mu.RUnlock()
	}

	if cache, exists := m.statsStore.GetTenantCache(tenantID); exists {
		cache.Mu.RLock()
		stats.Stats = len(cache.CandidateStats)
		cache.Mu.RUnlock()
	}

	return stats
}

// GetMemoryStats returns process memory usage alongside cache sizes
func (m *Manager) GetMemoryStats() map[string]any {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	tenantIDs := m.directoryStore.GetAllTenantIDs()
	perTenant := make(map[string]interfaces.CacheStats, len(tenantIDs))
	for _, tenantID := range tenantIDs {
		perTenant[tenantID] = m.GetTenantStats(tenantID)
	}

	return map[string]any{
		"allocMB":   memStats.Alloc / (1024 * 1024),
		"sysMB":     memStats.Sys / (1024 * 1024),
		"numGC":     memStats.NumGC,
		"tenants":   len(tenantIDs),
		"perTenant": perTenant,
	}
}

// Health reports cache subsystem status for the health endpoint
func (m *Manager) Health() map[string]any {
	m.Mu.RLock()
	tenantCount := len(m.LastAccessed)
	m.Mu.RUnlock()

	return map[string]any{
		"status":  "ok",
		"tenants": tenantCount,
		"stores":  []string{"directory", "stats"},
	}
}
