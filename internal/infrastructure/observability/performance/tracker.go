package performance

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Tracker manages performance markers and provides metrics aggregation
type Tracker struct {
	markers    map[string]*Marker  // Active and completed markers by unique ID
	alerts     []*PerformanceAlert // Active performance alerts
	thresholds *AlertThresholds    // Configurable alert thresholds
	mu         sync.RWMutex        // Protects concurrent access
	started    time.Time           // When tracking started
	config     *TrackerConfig      // Tracker configuration
}

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	MaxMarkers      int           `json:"maxMarkers"`      // Maximum number of markers to retain
	MaxAlerts       int           `json:"maxAlerts"`       // Maximum number of alerts to retain
	CleanupInterval time.Duration `json:"cleanupInterval"` // How often to clean up old data
	EnableAlerts    bool          `json:"enableAlerts"`    // Whether to generate performance alerts
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers:      10000,
		MaxAlerts:       500,
		CleanupInterval: time.Minute * 10,
		EnableAlerts:    true,
	}
}

// AlertThresholds defines performance thresholds for generating alerts
type AlertThresholds struct {
	SlowResponseThreshold     time.Duration `json:"slowResponseThreshold"`     // 500ms
	VerySlowResponseThreshold time.Duration `json:"verySlowResponseThreshold"` // 2s
	CriticalResponseThreshold time.Duration `json:"criticalResponseThreshold"` // 5s

	LowCacheHitRatio      float64 `json:"lowCacheHitRatio"`      // 0.85 (85%)
	CriticalCacheHitRatio float64 `json:"criticalCacheHitRatio"` // 0.70 (70%)

	HighMemoryUsage     int64 `json:"highMemoryUsage"`     // 500MB
	CriticalMemoryUsage int64 `json:"criticalMemoryUsage"` // 1GB

	AuthOperationThreshold  time.Duration `json:"authOperationThreshold"`  // 200ms
	RenderThreshold         time.Duration `json:"renderThreshold"`         // 100ms
	PipelineThreshold       time.Duration `json:"pipelineThreshold"`       // 250ms
	CalendarCallThreshold   time.Duration `json:"calendarCallThreshold"`   // 2s
	DatabaseQueryThreshold  time.Duration `json:"databaseQueryThreshold"`  // 50ms
}

// DefaultAlertThresholds returns sensible default alert thresholds
func DefaultAlertThresholds() *AlertThresholds {
	return &AlertThresholds{
		SlowResponseThreshold:     time.Millisecond * 500,
		VerySlowResponseThreshold: time.Second * 2,
		CriticalResponseThreshold: time.Second * 5,
		LowCacheHitRatio:          0.85,
		CriticalCacheHitRatio:     0.70,
		HighMemoryUsage:           500 * 1024 * 1024,  // 500MB
		CriticalMemoryUsage:       1024 * 1024 * 1024, // 1GB
		AuthOperationThreshold:    time.Millisecond * 200,
		RenderThreshold:           time.Millisecond * 100,
		PipelineThreshold:         time.Millisecond * 250,
		CalendarCallThreshold:     time.Second * 2,
		DatabaseQueryThreshold:    time.Millisecond * 50,
	}
}

// NewTracker creates a new performance tracker with the given configuration
func NewTracker(config *TrackerConfig) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}

	return &Tracker{
		markers:    make(map[string]*Marker),
		alerts:     make([]*PerformanceAlert, 0),
		thresholds: DefaultAlertThresholds(),
		started:    time.Now(),
		config:     config,
	}
}

// StartOperation creates and tracks a new performance marker for an operation
func (t *Tracker) StartOperation(operation, tenantID string) *Marker {
	marker := &Marker{
		Operation: operation,
		TenantID:  tenantID,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
		Success:   true, // Assume success until proven otherwise
	}

	markerID := fmt.Sprintf("%s_%s_%d", tenantID, operation, time.Now().UnixNano())

	t.mu.Lock()
	t.markers[markerID] = marker
	t.mu.Unlock()

	return marker
}

// StartOperationWithContext creates a performance marker with context cancellation support
func (t *Tracker) StartOperationWithContext(ctx context.Context, operation, tenantID string) *Marker {
	marker := t.StartOperation(operation, tenantID)

	go func() {
		<-ctx.Done()
		if !marker.Completed {
			marker.SetError(ctx.Err())
			marker.Complete()
		}
	}()

	return marker
}

// CompleteOperation manually completes an operation and checks for alerts
func (t *Tracker) CompleteOperation(marker *Marker) {
	if marker == nil || marker.Completed {
		return
	}

	marker.Complete()

	if t.config.EnableAlerts {
		t.checkForAlerts(marker)
	}
}

// checkForAlerts evaluates a completed marker against alert thresholds
func (t *Tracker) checkForAlerts(marker *Marker) {
	if marker == nil || !marker.Completed {
		return
	}

	alerts := t.evaluateThresholds(marker)

	t.mu.Lock()
	for _, alert := range alerts {
		t.alerts = append(t.alerts, alert)

		if len(t.alerts) > t.config.MaxAlerts {
			t.alerts = t.alerts[len(t.alerts)-t.config.MaxAlerts:]
		}
	}
	t.mu.Unlock()
}

// evaluateThresholds checks a marker against all relevant thresholds
func (t *Tracker) evaluateThresholds(marker *Marker) []*PerformanceAlert {
	var alerts []*PerformanceAlert

	if marker.Duration > t.thresholds.CriticalResponseThreshold {
		alerts = append(alerts, t.createAlert(marker, AlertCritical,
			"Operation exceeded critical response time threshold"))
	} else if marker.Duration > t.thresholds.VerySlowResponseThreshold {
		alerts = append(alerts, t.createAlert(marker, AlertWarning,
			"Operation exceeded slow response time threshold"))
	}

	switch {
	case strings.Contains(marker.Operation, "auth"):
		if marker.Duration > t.thresholds.AuthOperationThreshold {
			alerts = append(alerts, t.createAlert(marker, AlertWarning,
				"Authentication operation exceeded threshold"))
		}
	case strings.Contains(marker.Operation, "render"):
		if marker.Duration > t.thresholds.RenderThreshold {
			alerts = append(alerts, t.createAlert(marker, AlertWarning,
				"Landing page render exceeded threshold"))
		}
	case strings.Contains(marker.Operation, "pipeline"):
		if marker.Duration > t.thresholds.PipelineThreshold {
			alerts = append(alerts, t.createAlert(marker, AlertWarning,
				"Pipeline operation exceeded threshold"))
		}
	case strings.Contains(marker.Operation, "calendar"):
		if marker.Duration > t.thresholds.CalendarCallThreshold {
			alerts = append(alerts, t.createAlert(marker, AlertWarning,
				"Calendar provider call exceeded threshold"))
		}
	}

	if marker.CacheHits+marker.CacheMisses > 0 {
		hitRatio := marker.GetCacheHitRatio()
		if hitRatio < t.thresholds.CriticalCacheHitRatio {
			alerts = append(alerts, t.createAlert(marker, AlertCritical,
				"Cache hit ratio critically low"))
		} else if hitRatio < t.thresholds.LowCacheHitRatio {
			alerts = append(alerts, t.createAlert(marker, AlertWarning,
				"Cache hit ratio below optimal"))
		}
	}

	memoryMB := marker.MemoryUsage / (1024 * 1024)
	if marker.MemoryUsage > t.thresholds.CriticalMemoryUsage {
		alerts = append(alerts, t.createAlert(marker, AlertCritical,
			fmt.Sprintf("Critical memory usage: %d MB", memoryMB)))
	} else if marker.MemoryUsage > t.thresholds.HighMemoryUsage {
		alerts = append(alerts, t.createAlert(marker, AlertWarning,
			fmt.Sprintf("High memory usage: %d MB", memoryMB)))
	}

	return alerts
}

// createAlert creates a new performance alert
func (t *Tracker) createAlert(marker *Marker, severity AlertSeverity, message string) *PerformanceAlert {
	return &PerformanceAlert{
		ID:        fmt.Sprintf("alert_%d", time.Now().UnixNano()),
		Timestamp: time.Now(),
		TenantID:  marker.TenantID,
		Severity:  severity,
		Operation: marker.Operation,
		Actual:    marker.Duration,
		Message:   message,
		Metadata: map[string]any{
			"cacheHitRatio": marker.GetCacheHitRatio(),
			"memoryUsageMB": marker.MemoryUsage / (1024 * 1024),
			"success":       marker.Success,
		},
	}
}

// GetMetrics returns performance metrics for a specific tenant
func (t *Tracker) GetMetrics(tenantID string) []Marker {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var metrics []Marker
	for _, marker := range t.markers {
		if marker.TenantID == tenantID && marker.Completed {
			metrics = append(metrics, *marker)
		}
	}
	return metrics
}

// GetRecentMetrics returns metrics for operations completed within the specified duration
func (t *Tracker) GetRecentMetrics(tenantID string, within time.Duration) []Marker {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cutoff := time.Now().Add(-within)
	var metrics []Marker

	for _, marker := range t.markers {
		if marker.TenantID == tenantID && marker.Completed && marker.EndTime.After(cutoff) {
			metrics = append(metrics, *marker)
		}
	}
	return metrics
}

// GetActiveOperations returns currently running operations for a tenant
func (t *Tracker) GetActiveOperations(tenantID string) []Marker {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var active []Marker
	for _, marker := range t.markers {
		if marker.TenantID == tenantID && !marker.Completed {
			snapshot := *marker
			snapshot.Duration = time.Since(marker.StartTime)
			active = append(active, snapshot)
		}
	}
	return active
}

// GetAlerts returns performance alerts for a specific tenant
func (t *Tracker) GetAlerts(tenantID string) []*PerformanceAlert {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var alerts []*PerformanceAlert
	for _, alert := range t.alerts {
		if alert.TenantID == tenantID {
			alerts = append(alerts, alert)
		}
	}
	return alerts
}

// Cleanup removes old markers to prevent memory leaks
func (t *Tracker) Cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := time.Now().Add(-time.Hour) // Keep last hour of markers
	for id, marker := range t.markers {
		if marker.Completed && marker.EndTime.Before(cutoff) {
			delete(t.markers, id)
		}
	}

	if len(t.markers) > t.config.MaxMarkers {
		count := 0
		for id := range t.markers {
			if count > t.config.MaxMarkers/2 {
				delete(t.markers, id)
			}
			count++
		}
	}
}

// GetOverallStats returns overall tracker statistics
func (t *Tracker) GetOverallStats() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	activeCount := 0
	completedCount := 0

	for _, marker := range t.markers {
		if marker.Completed {
			completedCount++
		} else {
			activeCount++
		}
	}

	return map[string]any{
		"trackerUptime":       time.Since(t.started),
		"totalMarkers":        len(t.markers),
		"activeOperations":    activeCount,
		"completedOperations": completedCount,
		"totalAlerts":         len(t.alerts),
		"memoryUsageMB":       memStats.Alloc / (1024 * 1024),
		"systemMemoryMB":      memStats.Sys / (1024 * 1024),
	}
}
