package stores

import (
	"sync"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/caching/types"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/pkg/config"
)

// StatsStore implements candidate statistics caching with tenant isolation.
// Entries expire per-campaign on config.StatsCacheTTL rather than per-tenant
// because applications land unevenly across campaigns.
type StatsStore struct {
	tenantCaches map[string]*types.TenantStatsCache
	mu           sync.RWMutex
	logger       *logging.ChanneledLogger
}

// NewStatsStore creates a new stats cache store
func NewStatsStore(logger *logging.ChanneledLogger) *StatsStore {
	return &StatsStore{
		tenantCaches: make(map[string]*types.TenantStatsCache),
		logger:       logger,
	}
}

// InitializeTenant creates cache structures for a tenant
func (ss *StatsStore) InitializeTenant(tenantID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.tenantCaches[tenantID] == nil {
		ss.tenantCaches[tenantID] = &types.TenantStatsCache{
			CandidateStats: make(map[string]*types.StatsEntry),
			LastUpdated:    time.Now().UTC(),
		}
	}
}

// GetTenantCache safely retrieves a tenant's stats cache
func (ss *StatsStore) GetTenantCache(tenantID string) (*types.TenantStatsCache, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	cache, exists := ss.tenantCaches[tenantID]
	return cache, exists
}

// GetCandidateStats retrieves candidate counts for a campaign
func (ss *StatsStore) GetCandidateStats(tenantID, campaignID string) (*dating.CandidateStats, bool) {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	entry, exists := cache.CandidateStats[campaignID]
	if !exists {
		return nil, false
	}

	if time.Since(entry.ComputedAt) > config.StatsCacheTTL {
		return nil, false
	}

	return entry.Stats, true
}

// SetCandidateStats stores candidate counts for a campaign
func (ss *StatsStore) SetCandidateStats(tenantID, campaignID string, stats *dating.CandidateStats) {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		ss.InitializeTenant(tenantID)
		cache, _ = ss.GetTenantCache(tenantID)
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.CandidateStats[campaignID] = &types.StatsEntry{
		Stats:      stats,
		ComputedAt: time.Now().UTC(),
	}
	cache.LastUpdated = time.Now().UTC()
}

// InvalidateCandidateStats drops the cached counts for a single campaign
func (ss *StatsStore) InvalidateCandidateStats(tenantID, campaignID string) {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	delete(cache.CandidateStats, campaignID)
	cache.LastUpdated = time.Now().UTC()
}

// InvalidateStatsCache clears all stats cache for a tenant
func (ss *StatsStore) InvalidateStatsCache(tenantID string) {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.CandidateStats = make(map[string]*types.StatsEntry)
	cache.LastUpdated = time.Now().UTC()
}

// PurgeExpired removes expired entries so idle campaigns don't pin memory
func (ss *StatsStore) PurgeExpired(tenantID string) int {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return 0
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	removed := 0
	for campaignID, entry := range cache.CandidateStats {
		if time.Since(entry.ComputedAt) > config.StatsCacheTTL {
			delete(cache.CandidateStats, campaignID)
			removed++
		}
	}
	return removed
}

// RemoveTenant drops a tenant's stats cache entirely
func (ss *StatsStore) RemoveTenant(tenantID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.tenantCaches, tenantID)
}
