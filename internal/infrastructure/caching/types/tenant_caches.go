// Package types defines cache data structures for multi-tenant campaign state.
package types

import (
	"sync"
	"time"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
)

// TenantDirectoryCache holds campaign and profile records for a single tenant
type TenantDirectoryCache struct {
	Campaigns map[string]*dating.Campaign // id -> campaign
	Profiles  map[string]*dating.Profile  // id -> profile

	// Lookup indices
	SlugToID  map[string]string // campaign slug -> campaign id
	EmailToID map[string]string // profile email -> profile id

	// Cache metadata
	LastUpdated time.Time
	Mu          sync.RWMutex // Exported for access
}

// TenantStatsCache holds computed candidate statistics for a single tenant.
// Stats have a much shorter TTL than directory entries because every
// application and stage change moves them.
type TenantStatsCache struct {
	CandidateStats map[string]*StatsEntry // campaignId -> stats
	LastUpdated    time.Time
	Mu             sync.RWMutex // Exported for access
}

// StatsEntry wraps candidate counts with the time they were computed
type StatsEntry struct {
	Stats      *dating.CandidateStats `json:"stats"`
	ComputedAt time.Time              `json:"computedAt"`
}
