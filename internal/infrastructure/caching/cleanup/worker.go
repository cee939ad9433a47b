// Package cleanup runs the background cache eviction worker.
package cleanup

import (
	"context"
	"time"

	"github.com/blindcal/blindcal-go/internal/infrastructure/caching/manager"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/pkg/config"
)

// Worker periodically evicts idle tenant caches and expired stats entries
type Worker struct {
	cacheManager *manager.Manager
	logger       *logging.ChanneledLogger
	interval     time.Duration
	tenantIdle   time.Duration
}

// NewWorker creates a cleanup worker with intervals from config
func NewWorker(cacheManager *manager.Manager, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		cacheManager: cacheManager,
		logger:       logger,
		interval:     config.CleanupInterval,
		tenantIdle:   config.TenantTimeout,
	}
}

// Start runs the cleanup loop until ctx is cancelled
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if w.logger != nil {
		w.logger.Cache().Info("Cache cleanup worker started",
			"interval", w.interval, "tenantIdle", w.tenantIdle)
	}

	for {
		select {
		case <-ctx.Done():
			if w.logger != nil {
				w.logger.Cache().Info("Cache cleanup worker stopped")
			}
			return
		case <-ticker.C:
			w.runOnce()
		}
	}
}

// runOnce performs a single cleanup sweep
func (w *Worker) runOnce() {
	start := time.Now()
	evicted := 0
	purged := 0

	for _, tenantID := range w.cacheManager.GetAllTenantIDs() {
		lastAccess, ok := w.cacheManager.GetLastAccessed(tenantID)
		if ok && time.Since(lastAccess) > w.tenantIdle {
			w.cacheManager.RemoveTenant(tenantID)
			evicted++
			continue
		}
		purged += w.cacheManager.PurgeExpiredStats(tenantID)
	}

	if w.logger != nil && (evicted > 0 || purged > 0) {
		w.logger.Cache().Info("Cache cleanup sweep complete",
			"evictedTenants", evicted, "purgedStats", purged, "duration", time.Since(start))
	}
}
