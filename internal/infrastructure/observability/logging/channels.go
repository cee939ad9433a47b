// Package logging provides structured logging channels for BlindCal
// operations with multi-tenant support and performance correlation.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Channel represents a logical logging channel for different system components
type Channel string

const (
	// System channels
	ChannelSystem   Channel = "system"   // General system operations
	ChannelStartup  Channel = "startup"  // Application startup and initialization
	ChannelShutdown Channel = "shutdown" // Application shutdown and cleanup

	// Business logic channels
	ChannelAuth      Channel = "auth"      // Authentication and authorization
	ChannelCampaign  Channel = "campaign"  // Campaign lifecycle operations
	ChannelPipeline  Channel = "pipeline"  // Candidate pipeline transitions
	ChannelBooking   Channel = "booking"   // Booking and calendar operations
	ChannelMessaging Channel = "messaging" // Masked message threads
	ChannelRender    Channel = "render"    // Landing page template rendering

	// Infrastructure channels
	ChannelDatabase Channel = "database" // Database operations and queries
	ChannelTenant   Channel = "tenant"   // Multi-tenant operations
	ChannelEmail    Channel = "email"    // Outbound transactional email
	ChannelCache    Channel = "cache"    // Cache operations and management

	// Performance and monitoring channels
	ChannelPerf      Channel = "performance" // Performance monitoring and metrics
	ChannelSlowQuery Channel = "slow-query"  // Slow database queries
	ChannelAlert     Channel = "alert"       // Performance alerts and warnings

	// Development and debugging channels
	ChannelDebug Channel = "debug" // Debug information
	ChannelTrace Channel = "trace" // Detailed tracing information
)

// ChanneledLogger provides structured logging with multiple channels
type ChanneledLogger struct {
	channels map[Channel]*slog.Logger
	config   *LoggerConfig
	baseDir  string
	configMu sync.RWMutex
}

// LoggerConfig contains configuration options for the channeled logger
type LoggerConfig struct {
	OutputToFile    bool   `json:"outputToFile"`    // Whether to write logs to files
	OutputToConsole bool   `json:"outputToConsole"` // Whether to write logs to console
	LogDirectory    string `json:"logDirectory"`    // Directory for log files
	JSONFormat      bool   `json:"jsonFormat"`      // Use JSON format for structured logging
	IncludeSource   bool   `json:"includeSource"`   // Include source file and line in logs

	DefaultLevel  slog.Level             `json:"defaultLevel"`  // Default log level
	ChannelLevels map[Channel]slog.Level `json:"channelLevels"` // Per-channel log levels
}

// DefaultLoggerConfig returns a sensible default configuration
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		OutputToFile:    true,
		OutputToConsole: true,
		LogDirectory:    "logs",
		JSONFormat:      true,
		IncludeSource:   true,
		DefaultLevel:    slog.LevelInfo,
		ChannelLevels:   make(map[Channel]slog.Level), // Start with empty map to respect DefaultLevel
	}
}

// NewChanneledLogger creates a new channeled logger with the given configuration
func NewChanneledLogger(config *LoggerConfig) (*ChanneledLogger, error) {
	if config == nil {
		config = DefaultLoggerConfig()
	}

	logger := &ChanneledLogger{
		channels: make(map[Channel]*slog.Logger),
		config:   config,
		baseDir:  config.LogDirectory,
	}

	if config.OutputToFile {
		if err := os.MkdirAll(config.LogDirectory, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	channels := []Channel{
		ChannelSystem, ChannelStartup, ChannelShutdown,
		ChannelAuth, ChannelCampaign, ChannelPipeline, ChannelBooking,
		ChannelMessaging, ChannelRender,
		ChannelDatabase, ChannelTenant, ChannelEmail, ChannelCache,
		ChannelPerf, ChannelSlowQuery, ChannelAlert,
		ChannelDebug, ChannelTrace,
	}

	for _, channel := range channels {
		channelLogger, err := logger.createChannelLogger(channel)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger for channel %s: %w", channel, err)
		}
		logger.channels[channel] = channelLogger
	}

	return logger, nil
}

// createChannelLogger creates a slog.Logger for a specific channel
func (cl *ChanneledLogger) createChannelLogger(channel Channel) (*slog.Logger, error) {
	cl.configMu.RLock()
	defer cl.configMu.RUnlock()
	return cl.createChannelLoggerLocked(channel)
}

// createChannelLoggerLocked requires configMu to be held.
func (cl *ChanneledLogger) createChannelLoggerLocked(channel Channel) (*slog.Logger, error) {
	// Respect DefaultLevel unless explicitly overridden
	level := cl.config.DefaultLevel
	if channelLevel, exists := cl.config.ChannelLevels[channel]; exists {
		level = channelLevel
	}

	var writers []io.Writer

	if cl.config.OutputToConsole {
		writers = append(writers, os.Stdout)
	}

	if cl.config.OutputToFile {
		filename := fmt.Sprintf("%s.log", string(channel))
		logPath := filepath.Join(cl.config.LogDirectory, filename)

		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
		}

		writers = append(writers, file)
	}

	var writer io.Writer
	if len(writers) == 1 {
		writer = writers[0]
	} else if len(writers) > 1 {
		writer = io.MultiWriter(writers...)
	} else {
		writer = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cl.config.IncludeSource,
	}

	var handler slog.Handler
	if cl.config.JSONFormat {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	logger := slog.New(handler).With(slog.String("channel", string(channel)))

	return logger, nil
}

func (cl *ChanneledLogger) System() *slog.Logger    { return cl.channels[ChannelSystem] }
func (cl *ChanneledLogger) Startup() *slog.Logger   { return cl.channels[ChannelStartup] }
func (cl *ChanneledLogger) Shutdown() *slog.Logger  { return cl.channels[ChannelShutdown] }
func (cl *ChanneledLogger) Auth() *slog.Logger      { return cl.channels[ChannelAuth] }
func (cl *ChanneledLogger) Campaign() *slog.Logger  { return cl.channels[ChannelCampaign] }
func (cl *ChanneledLogger) Pipeline() *slog.Logger  { return cl.channels[ChannelPipeline] }
func (cl *ChanneledLogger) Booking() *slog.Logger   { return cl.channels[ChannelBooking] }
func (cl *ChanneledLogger) Messaging() *slog.Logger { return cl.channels[ChannelMessaging] }
func (cl *ChanneledLogger) Render() *slog.Logger    { return cl.channels[ChannelRender] }
func (cl *ChanneledLogger) Database() *slog.Logger  { return cl.channels[ChannelDatabase] }
func (cl *ChanneledLogger) Tenant() *slog.Logger    { return cl.channels[ChannelTenant] }
func (cl *ChanneledLogger) Email() *slog.Logger     { return cl.channels[ChannelEmail] }
func (cl *ChanneledLogger) Cache() *slog.Logger     { return cl.channels[ChannelCache] }
func (cl *ChanneledLogger) Perf() *slog.Logger      { return cl.channels[ChannelPerf] }
func (cl *ChanneledLogger) SlowQuery() *slog.Logger { return cl.channels[ChannelSlowQuery] }
func (cl *ChanneledLogger) Alert() *slog.Logger     { return cl.channels[ChannelAlert] }
func (cl *ChanneledLogger) Debug() *slog.Logger     { return cl.channels[ChannelDebug] }
func (cl *ChanneledLogger) Trace() *slog.Logger     { return cl.channels[ChannelTrace] }

// GetChannel returns a logger for a specific channel
func (cl *ChanneledLogger) GetChannel(channel Channel) *slog.Logger {
	if logger, exists := cl.channels[channel]; exists {
		return logger
	}
	return cl.channels[ChannelSystem]
}

// WithTenant returns a logger with tenant context
func (cl *ChanneledLogger) WithTenant(channel Channel, tenantID string) *slog.Logger {
	return cl.GetChannel(channel).With(slog.String("tenantId", tenantID))
}

// WithOperation returns a logger with operation context
func (cl *ChanneledLogger) WithOperation(channel Channel, operation string) *slog.Logger {
	return cl.GetChannel(channel).With(slog.String("operation", operation))
}

// WithTenantAndOperation returns a logger with both tenant and operation context
func (cl *ChanneledLogger) WithTenantAndOperation(channel Channel, tenantID, operation string) *slog.Logger {
	return cl.GetChannel(channel).With(
		slog.String("tenantId", tenantID),
		slog.String("operation", operation),
	)
}

// LogSlowQuery logs a slow database query
func (cl *ChanneledLogger) LogSlowQuery(query string, duration time.Duration, tenantID string) {
	cl.SlowQuery().Warn("Slow query detected",
		slog.String("query", cl.sanitizeQuery(query)),
		slog.Duration("duration", duration),
		slog.String("tenantId", tenantID),
		slog.String("timestamp", time.Now().Format(time.RFC3339)),
	)
}

// LogCacheOperation logs cache operations with performance context
func (cl *ChanneledLogger) LogCacheOperation(operation, key string, hit bool, duration time.Duration, tenantID string) {
	logger := cl.Cache().With(
		slog.String("operation", operation),
		slog.String("key", key),
		slog.Bool("hit", hit),
		slog.Duration("duration", duration),
		slog.String("tenantId", tenantID),
	)

	if hit {
		logger.Debug("Cache hit")
	} else {
		logger.Debug("Cache miss")
	}
}

// LogAuthOperation logs authentication operations with security context
func (cl *ChanneledLogger) LogAuthOperation(operation, tenantID, profileID string, success bool) {
	logger := cl.Auth().With(
		slog.String("operation", operation),
		slog.String("tenantId", tenantID),
		slog.String("profileId", cl.sanitizeProfileID(profileID)),
		slog.Bool("success", success),
	)

	if success {
		logger.Info("Authentication operation completed")
	} else {
		logger.Warn("Authentication operation failed")
	}
}

// LogRenderFallback records that a landing page fell back to the degraded
// fragment, with the template error for the operator.
func (cl *ChanneledLogger) LogRenderFallback(tenantID, campaignSlug string, err error) {
	cl.Render().Error("Template render fell back",
		slog.String("tenantId", tenantID),
		slog.String("campaignSlug", campaignSlug),
		slog.String("error", err.Error()),
	)
}

// LogPipelineTransition logs one candidate stage change.
func (cl *ChanneledLogger) LogPipelineTransition(tenantID, candidateID, fromStage, toStage string) {
	cl.Pipeline().Info("Candidate stage changed",
		slog.String("tenantId", tenantID),
		slog.String("candidateId", candidateID),
		slog.String("fromStage", fromStage),
		slog.String("toStage", toStage),
	)
}

// LogError logs an error with appropriate context and channel
func (cl *ChanneledLogger) LogError(channel Channel, operation string, err error, tenantID string, metadata map[string]any) {
	logger := cl.GetChannel(channel).With(
		slog.String("operation", operation),
		slog.String("tenantId", tenantID),
		slog.String("error", err.Error()),
	)

	for key, value := range metadata {
		logger = logger.With(slog.Any(key, value))
	}

	logger.Error("Operation failed")
}

// LogTenantOperation logs tenant-specific operations
func (cl *ChanneledLogger) LogTenantOperation(operation, tenantID string, success bool, duration time.Duration, metadata map[string]any) {
	logger := cl.Tenant().With(
		slog.String("operation", operation),
		slog.String("tenantId", tenantID),
		slog.Bool("success", success),
		slog.Duration("duration", duration),
	)

	for key, value := range metadata {
		logger = logger.With(slog.Any(key, value))
	}

	if success {
		logger.Info("Tenant operation completed")
	} else {
		logger.Error("Tenant operation failed")
	}
}

// LogStartupPhase logs application startup phases
func (cl *ChanneledLogger) LogStartupPhase(phase string, duration time.Duration, success bool, metadata map[string]any) {
	logger := cl.Startup().With(
		slog.String("phase", phase),
		slog.Duration("duration", duration),
		slog.Bool("success", success),
	)

	for key, value := range metadata {
		logger = logger.With(slog.Any(key, value))
	}

	if success {
		logger.Info("Startup phase completed")
	} else {
		logger.Error("Startup phase failed")
	}
}

// sanitizeQuery removes sensitive information from SQL queries for logging
func (cl *ChanneledLogger) sanitizeQuery(query string) string {
	query = strings.ReplaceAll(query, "\n", " ")
	query = strings.ReplaceAll(query, "\t", " ")

	if len(query) > 500 {
		query = query[:500] + "..."
	}

	return query
}

// sanitizeProfileID partially masks profile IDs for privacy
func (cl *ChanneledLogger) sanitizeProfileID(profileID string) string {
	if len(profileID) <= 4 {
		return "****"
	}
	return profileID[:2] + "****" + profileID[len(profileID)-2:]
}

// Close closes all file handles and cleans up resources
func (cl *ChanneledLogger) Close() error {
	cl.System().Info("Channeled logger shutting down")
	return nil
}

// GetConfig returns the current logger configuration
func (cl *ChanneledLogger) GetConfig() *LoggerConfig {
	return cl.config
}

// SetChannelLevel dynamically sets the log level for a specific channel
func (cl *ChanneledLogger) SetChannelLevel(channel Channel, level slog.Level) error {
	cl.configMu.Lock()
	defer cl.configMu.Unlock()

	if _, exists := cl.channels[channel]; !exists {
		return fmt.Errorf("channel %s does not exist", channel)
	}

	cl.config.ChannelLevels[channel] = level

	newLogger, err := cl.createChannelLoggerLocked(channel)
	if err != nil {
		cl.System().Error("Failed to recreate logger for channel on level change", "channel", channel, "error", err)
		return fmt.Errorf("failed to recreate logger for channel %s: %w", channel, err)
	}

	cl.channels[channel] = newLogger

	cl.System().Info("Channel log level updated dynamically",
		slog.String("channel", string(channel)),
		slog.String("level", level.String()),
	)

	return nil
}

// GetChannelLevels returns the current log levels for all channels.
func (cl *ChanneledLogger) GetChannelLevels() map[string]string {
	cl.configMu.RLock()
	defer cl.configMu.RUnlock()

	levels := make(map[string]string)
	for channel := range cl.channels {
		if level, ok := cl.config.ChannelLevels[channel]; ok {
			levels[string(channel)] = level.String()
		} else {
			levels[string(channel)] = cl.config.DefaultLevel.String()
		}
	}
	return levels
}
