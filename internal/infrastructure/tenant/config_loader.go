// Package tenant handles loading and providing tenant-specific configurations.
package tenant

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/security"
)

// Config represents the structure of a single tenant's configuration
type Config struct {
	TenantID      string   `json:"tenantId"`
	Domains       []string `json:"domains"`
	Status        string   `json:"status"`
	DatabaseType  string   `json:"databaseType"`
	TursoDatabase string   `json:"TURSO_DATABASE_URL"`
	TursoToken    string   `json:"TURSO_AUTH_TOKEN"`
	JWTSecret     string   `json:"JWT_SECRET"`
	TursoEnabled  bool     `json:"TURSO_ENABLED"`
	AdminPassword string   `json:"ADMIN_PASSWORD,omitempty"`
	CalComAPIKey  string   `json:"CALCOM_API_KEY,omitempty"`
	SQLitePath    string   `json:"-"`
}

// LoadTenantConfig loads configuration for a specific tenant from its env.json file.
func LoadTenantConfig(tenantID string, logger *logging.ChanneledLogger) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not find user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, "blindcal-server", "config", tenantID, "env.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("tenant config file not found at %s", configPath)
	}

	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read tenant config file: %w", err)
	}

	var tenantConfig Config
	if err := json.Unmarshal(configFile, &tenantConfig); err != nil {
		return nil, fmt.Errorf("could not parse tenant config json: %w", err)
	}

	// Set computed fields
	tenantConfig.TenantID = tenantID
	tenantConfig.SQLitePath = filepath.Join(homeDir, "blindcal-server", "db", tenantID, "blindcal.db")

	// A tenant provisioned without a session secret gets one minted and
	// persisted; generating on every load would invalidate sessions at
	// each restart.
	if tenantConfig.JWTSecret == "" {
		secret, err := security.GenerateSecureKey(64)
		if err != nil {
			return nil, fmt.Errorf("could not generate tenant JWT secret: %w", err)
		}
		tenantConfig.JWTSecret = secret
		updated, err := json.MarshalIndent(&tenantConfig, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("could not marshal tenant config: %w", err)
		}
		if err := os.WriteFile(configPath, updated, 0644); err != nil {
			return nil, fmt.Errorf("could not persist tenant JWT secret: %w", err)
		}
		if logger != nil {
			logger.Tenant().Info("Minted JWT secret for tenant", "tenantId", tenantID)
		}
	}

	if logger != nil {
		logger.Tenant().Debug("Loaded tenant config", "tenantId", tenantID,
			"tursoEnabled", tenantConfig.TursoEnabled, "calendarEnabled", tenantConfig.CalComAPIKey != "")
	}

	return &tenantConfig, nil
}

// TenantRegistry holds the global tenant configuration
type TenantRegistry struct {
	Tenants map[string]TenantInfo `json:"tenants"`
}

// TenantInfo holds tenant metadata
type TenantInfo struct {
	TenantID     string   `json:"tenantId"`
	Domains      []string `json:"domains"`
	Status       string   `json:"status"`       // "unknown", "inactive", "active"
	DatabaseType string   `json:"databaseType"` // "turso", "sqlite3"
}

// LoadTenantRegistry loads the global tenant registry
func LoadTenantRegistry() (*TenantRegistry, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not find user home directory: %w", err)
	}

	registryPath := filepath.Join(homeDir, "blindcal-server", "config", "blindcal", "tenants.json")

	if _, err := os.Stat(registryPath); os.IsNotExist(err) {
		// Create default registry if it doesn't exist
		defaultRegistry := &TenantRegistry{
			Tenants: map[string]TenantInfo{
				"default": {
					TenantID:     "default",
					Domains:      []string{"*"},
					Status:       "inactive",
					DatabaseType: "",
				},
			},
		}
		return defaultRegistry, nil
	}

	data, err := os.ReadFile(registryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tenant registry: %w", err)
	}

	var registry TenantRegistry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse tenant registry: %w", err)
	}

	return &registry, nil
}

// RegisterTenant adds a new tenant to the registry
func RegisterTenant(tenantID string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not find user home directory: %w", err)
	}

	registryPath := filepath.Join(homeDir, "blindcal-server", "config", "blindcal", "tenants.json")

	registry, err := LoadTenantRegistry()
	if err != nil {
		return err
	}

	// Add tenant if it doesn't exist
	if _, exists := registry.Tenants[tenantID]; !exists {
		registry.Tenants[tenantID] = TenantInfo{
			TenantID:     tenantID,
			Domains:      []string{"*"},
			Status:       "inactive",
			DatabaseType: "",
		}

		// Ensure directory exists
		registryDir := filepath.Dir(registryPath)
		if err := os.MkdirAll(registryDir, 0755); err != nil {
			return fmt.Errorf("failed to create registry directory: %w", err)
		}

		// Save registry
		data, err := json.MarshalIndent(registry, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal registry: %w", err)
		}

		if err := os.WriteFile(registryPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write registry: %w", err)
		}
	}

	return nil
}
