// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/infrastructure/caching/types"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/pkg/config"
)

// DirectoryStore implements campaign and profile caching with tenant isolation
type DirectoryStore struct {
	tenantCaches map[string]*types.TenantDirectoryCache
	mu           sync.RWMutex
	logger       *logging.ChanneledLogger
}

// NewDirectoryStore creates a new directory cache store
func NewDirectoryStore(logger *logging.ChanneledLogger) *DirectoryStore {
	return &DirectoryStore{
		tenantCaches: make(map[string]*types.TenantDirectoryCache),
		logger:       logger,
	}
}

// InitializeTenant creates cache structures for a tenant
func (ds *DirectoryStore) InitializeTenant(tenantID string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.tenantCaches[tenantID] == nil {
		ds.tenantCaches[tenantID] = &types.TenantDirectoryCache{
			Campaigns:   make(map[string]*dating.Campaign),
			Profiles:    make(map[string]*dating.Profile),
			SlugToID:    make(map[string]string),
			EmailToID:   make(map[string]string),
			LastUpdated: time.Now().UTC(),
		}
	}
}

// GetTenantCache safely retrieves a tenant's directory cache
func (ds *DirectoryStore) GetTenantCache(tenantID string) (*types.TenantDirectoryCache, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	cache, exists := ds.tenantCaches[tenantID]
	return cache, exists
}

// GetAllTenantIDs returns all tenant IDs present in the store
func (ds *DirectoryStore) GetAllTenantIDs() []string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	ids := make([]string, 0, len(ds.tenantCaches))
	for id := range ds.tenantCaches {
		ids = append(ids, id)
	}
	return ids
}

// GetCampaign retrieves a campaign by ID
func (ds *DirectoryStore) GetCampaign(tenantID, id string) (*dating.Campaign, bool) {
	cache, exists := ds.GetTenantCache(tenantID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	if time.Since(cache.LastUpdated) > config.ContentCacheTTL {
		return nil, false
	}

	campaign, exists := cache.Campaigns[id]
	return campaign, exists
}

// SetCampaign stores a campaign and indexes its slug
func (ds *DirectoryStore) SetCampaign(tenantID string, campaign *dating.Campaign) {
	cache, exists := ds.GetTenantCache(tenantID)
	if !exists {
		ds.InitializeTenant(tenantID)
		cache, _ = ds.GetTenantCache(tenantID)
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Campaigns[campaign.ID] = campaign
	cache.SlugToID[campaign.Slug] = campaign.ID
	cache.LastUpdated = time.Now().UTC()
}

// GetCampaignIDBySlug resolves a landing page slug to a campaign ID
func (ds *DirectoryStore) GetCampaignIDBySlug(tenantID, slug string) (string, bool) {
	cache, exists := ds.GetTenantCache(tenantID)
	if !exists {
		return "", false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	if time.Since(cache.LastUpdated) > config.ContentCacheTTL {
		return "", false
	}

	id, exists := cache.SlugToID[slug]
	return id, exists
}

// GetProfile retrieves a profile by ID
func (ds *DirectoryStore) GetProfile(tenantID, id string) (*dating.Profile, bool) {
	cache, exists := ds.GetTenantCache(tenantID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	if time.Since(cache.LastUpdated) > config.ContentCacheTTL {
		return nil, false
	}

	profile, exists := cache.Profiles[id]
	return profile, exists
}

// SetProfile stores a profile and indexes its email
func (ds *DirectoryStore) SetProfile(tenantID string, profile *dating.Profile) {
	cache, exists := ds.GetTenantCache(tenantID)
	if !exists {
		ds.InitializeTenant(tenantID)
		cache, _ = ds.GetTenantCache(tenantID)
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Profiles[profile.ID] = profile
	cache.EmailToID[profile.Email] = profile.ID
	cache.LastUpdated = time.Now().UTC()
}

// GetProfileIDByEmail resolves a login email to a profile ID
func (ds *DirectoryStore) GetProfileIDByEmail(tenantID, email string) (string, bool) {
	cache, exists := ds.GetTenantCache(tenantID)
	if !exists {
		return "", false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	id, exists := cache.EmailToID[email]
	return id, exists
}

// InvalidateCampaign removes a single campaign and its slug index entry
func (ds *DirectoryStore) InvalidateCampaign(tenantID, id string) {
	cache, exists := ds.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	if campaign, ok := cache.Campaigns[id]; ok {
		delete(cache.SlugToID, campaign.Slug)
	}
	delete(cache.Campaigns, id)
	cache.LastUpdated = time.Now().UTC()
}

// InvalidateProfile removes a single profile and its email index entry
func (ds *DirectoryStore) InvalidateProfile(tenantID, id string) {
	cache, exists := ds.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	if profile, ok := cache.Profiles[id]; ok {
		delete(cache.EmailToID, profile.Email)
	}
	delete(cache.Profiles, id)
	cache.LastUpdated = time.Now().UTC()
}

// InvalidateDirectoryCache clears all directory cache for a tenant
func (ds *DirectoryStore) InvalidateDirectoryCache(tenantID string) {
	cache, exists := ds.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Campaigns = make(map[string]*dating.Campaign)
	cache.Profiles = make(map[string]*dating.Profile)
	cache.SlugToID = make(map[string]string)
	cache.EmailToID = make(map[string]string)
	cache.LastUpdated = time.Now().UTC()
}

// RemoveTenant drops a tenant's directory cache entirely
func (ds *DirectoryStore) RemoveTenant(tenantID string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.tenantCaches, tenantID)
}
