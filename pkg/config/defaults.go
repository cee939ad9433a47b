// Package config provides centralized default values for BlindCal
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Tenant and memory limits
	MaxTenants  int
	MaxMemoryMB int

	// Database Pool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int

	// TTL Configuration
	ContentCacheTTL time.Duration
	StatsCacheTTL   time.Duration

	// Cleanup Intervals
	CleanupInterval       time.Duration
	TenantTimeout         time.Duration
	DBPoolCleanupInterval time.Duration

	// Query diagnostics
	SlowQueryThreshold time.Duration

	// Pipeline websocket fanout
	PipelineSendBuffer   int
	PipelinePingInterval time.Duration

	// Outbound email
	ResendAPIKey string
	EmailFrom    string
	BaseURL      string

	// Calendar provider
	CalendarBaseURL string

	// Media storage
	MediaPath       string
	MaxPhotoBytes   int
	PhotoThumbWidth int
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Tenant and memory limits
	MaxTenants = getEnvInt("MAX_TENANTS", 5)
	MaxMemoryMB = getEnvInt("MAX_MEMORY_MB", 768)

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)

	// TTL Configuration
	ContentCacheTTL = time.Duration(getEnvInt("CONTENT_CACHE_TTL_HOURS", 24)) * time.Hour
	StatsCacheTTL = time.Duration(getEnvInt("STATS_CACHE_TTL_MINUTES", 5)) * time.Minute

	// Cleanup Intervals
	CleanupInterval = time.Duration(getEnvInt("CACHE_CLEANUP_INTERVAL_MINUTES", 30)) * time.Minute
	TenantTimeout = time.Duration(getEnvInt("TENANT_TIMEOUT_HOURS", 4)) * time.Hour
	DBPoolCleanupInterval = time.Duration(getEnvInt("DB_POOL_CLEANUP_INTERVAL_MINUTES", 5)) * time.Minute

	// Query diagnostics
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 100*time.Millisecond)

	// Pipeline websocket fanout
	PipelineSendBuffer = getEnvInt("PIPELINE_SEND_BUFFER", 64)
	PipelinePingInterval = getEnvDuration("PIPELINE_PING_INTERVAL", 30*time.Second)

	// Outbound email
	ResendAPIKey = getEnvString("RESEND_API_KEY", "")
	EmailFrom = getEnvString("EMAIL_FROM", "BlindCal <noreply@blindcal.app>")
	BaseURL = getEnvString("BASE_URL", "http://localhost:8080")

	// Calendar provider
	CalendarBaseURL = getEnvString("CALCOM_BASE_URL", "https://api.cal.com/v2")

	// Media storage
	MediaPath = getEnvString("MEDIA_PATH", "media")
	MaxPhotoBytes = getEnvInt("MAX_PHOTO_BYTES", 10*1024*1024)
	PhotoThumbWidth = getEnvInt("PHOTO_THUMB_WIDTH", 400)
}
