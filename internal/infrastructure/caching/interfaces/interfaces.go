// Package interfaces defines cache operation contracts for multi-tenant campaign state.
package interfaces

import (
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
)

// DirectoryCache defines operations for campaign and profile caching
type DirectoryCache interface {
	GetCampaign(tenantID, id string) (*dating.Campaign, bool)
	SetCampaign(tenantID string, campaign *dating.Campaign)
	GetCampaignIDBySlug(tenantID, slug string) (string, bool)
	GetProfile(tenantID, id string) (*dating.Profile, bool)
	SetProfile(tenantID string, profile *dating.Profile)
	GetProfileIDByEmail(tenantID, email string) (string, bool)
	InvalidateCampaign(tenantID, id string)
	InvalidateProfile(tenantID, id string)
	InvalidateDirectoryCache(tenantID string)
}

// StatsCache defines operations for candidate statistics caching
type StatsCache interface {
	GetCandidateStats(tenantID, campaignID string) (*dating.CandidateStats, bool)
	SetCandidateStats(tenantID, campaignID string, stats *dating.CandidateStats)
	InvalidateCandidateStats(tenantID, campaignID string)
	InvalidateStatsCache(tenantID string)
}

// Cache is the main interface that combines all cache operations
type Cache interface {
	DirectoryCache
	StatsCache
	InitializeTenant(tenantID string)
	InvalidateTenant(tenantID string)
	GetTenantStats(tenantID string) CacheStats
	GetMemoryStats() map[string]any
	InvalidateAll()
	Health() map[string]any
}

type CacheStats struct {
	Campaigns int `json:"campaigns"`
	Profiles  int `json:"profiles"`
	Stats     int `json:"stats"`
}

type CacheTTL time.Duration

const (
	TTLNever    CacheTTL = CacheTTL(0)
	TTL1Minute  CacheTTL = CacheTTL(time.Minute)
	TTL5Minutes CacheTTL = CacheTTL(5 * time.Minute)
	TTL1Hour    CacheTTL = CacheTTL(time.Hour)
	TTL24Hours  CacheTTL = CacheTTL(24 * time.Hour)
)
