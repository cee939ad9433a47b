// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/application/container"
	"github.com/blindcal/blindcal-go/internal/infrastructure/caching/cleanup"
	"github.com/blindcal/blindcal-go/internal/infrastructure/observability/logging"
	"github.com/blindcal/blindcal-go/internal/infrastructure/tenant"
	"github.com/blindcal/blindcal-go/internal/presentation/http/server"
	"github.com/blindcal/blindcal-go/pkg/config"
)

// Initialize performs the complete multi-tenant startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("BlindCal server starting - dating, delegated")

	// Step 1: Channeled logger first, everything else logs through it
	logger, err := logging.NewChanneledLogger(nil)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	// Step 2: Tenant system
	logger.Startup().Info("Initializing tenant system...")
	tenantManager := tenant.NewManager(logger)

	registry, err := tenant.LoadTenantRegistry()
	if err != nil {
		return fmt.Errorf("failed to load tenant registry: %w", err)
	}
	if len(registry.Tenants) == 0 {
		logger.Startup().Info("No tenants in registry, creating default tenant")
		if err := tenant.RegisterTenant("default"); err != nil {
			return fmt.Errorf("failed to register default tenant: %w", err)
		}
		registry, err = tenant.LoadTenantRegistry()
		if err != nil {
			return fmt.Errorf("failed to reload registry: %w", err)
		}
	}
	logger.Startup().Info("Tenant registry loaded", "tenants", len(registry.Tenants))

	// Step 3: Pre-activate tenants (opens databases, creates schema)
	if err := tenantManager.PreActivateAllTenants(); err != nil {
		return fmt.Errorf("tenant pre-activation failed: %w", err)
	}
	if err := tenantManager.ValidatePreActivation(); err != nil {
		return fmt.Errorf("tenant validation failed: %w", err)
	}
	activeCount, err := tenantManager.GetActiveTenantCount()
	if err != nil {
		return fmt.Errorf("failed to get active tenant count: %w", err)
	}
	logger.Startup().Info("Tenant pre-activation complete", "activeTenants", activeCount)

	// Step 4: Cache system
	cacheManager := tenantManager.GetCacheManager()
	for tenantID, tenantInfo := range registry.Tenants {
		if tenantInfo.Status == "active" {
			cacheManager.InitializeTenant(tenantID)
		}
	}
	logger.Startup().Info("Cache system initialized")

	// Step 5: Dependency injection container (broadcaster, email, tracker)
	appContainer := container.NewContainer(tenantManager, cacheManager, logger)
	logger.Startup().Info("Dependency injection container created")

	// Step 6: Background cache cleanup worker
	cleanupWorker := cleanup.NewWorker(cacheManager, logger)
	go cleanupWorker.Start(ctx)
	logger.Startup().Info("Background cleanup worker started")

	// Step 7: HTTP server
	port := config.Port
	httpServer := server.New(port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"activeTenants", activeCount,
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()
	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped")
	}

	if err := tenantManager.Close(); err != nil {
		logger.Shutdown().Error("Error closing tenant manager", "error", err.Error())
	} else {
		logger.Shutdown().Info("Tenant manager closed")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))
	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
