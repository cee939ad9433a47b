// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blindcal/blindcal-go/internal/application/container"
	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
	"github.com/blindcal/blindcal-go/internal/presentation/http/handlers"
	"github.com/blindcal/blindcal-go/internal/presentation/http/middleware"
	"github.com/blindcal/blindcal-go/pkg/config"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Candidate photos and thumbnails are served straight off disk.
	r.Static("/media", config.MediaPath)

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(container.Logger, container.PerfTracker)
	profileHandlers := handlers.NewProfileHandlers(container.Logger, container.PerfTracker)
	delegationHandlers := handlers.NewDelegationHandlers(container.EmailService, container.Logger, container.PerfTracker)
	campaignHandlers := handlers.NewCampaignHandlers(container.Logger, container.PerfTracker)
	candidateHandlers := handlers.NewCandidateHandlers(container.EmailService, container.Broadcaster, container.Logger, container.PerfTracker)
	bookingHandlers := handlers.NewBookingHandlers(container.EmailService, container.Broadcaster, container.Logger, container.PerfTracker)
	messageHandlers := handlers.NewMessageHandlers(container.Broadcaster, container.Logger, container.PerfTracker)
	landingHandlers := handlers.NewLandingHandlers(container.Logger, container.PerfTracker)
	templateHandlers := handlers.NewTemplateHandlers(container.TemplateService)
	pipelineHandlers := handlers.NewPipelineHandlers(container.Broadcaster, container.Logger)

	r.GET("/health", handlers.NewHealthHandler(container))

	// Public campaign surface: landing pages, applications, candidate replies.
	// Tenant resolves from the header or falls back to "default".
	public := r.Group("/c")
	public.Use(middleware.TenantMiddleware(container.TenantManager, container.PerfTracker))
	{
		public.GET("/:slug", landingHandlers.GetLandingPage)
		public.POST("/:slug/apply", candidateHandlers.PostApply)
		public.POST("/candidates/:id/messages", messageHandlers.PostReply)
	}

	// API routes with tenant middleware
	api := r.Group("/api/v1")
	api.Use(middleware.TenantMiddleware(container.TenantManager, container.PerfTracker))
	api.Use(middleware.DomainValidationMiddleware(container.TenantManager))
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandlers.PostRegister)
			auth.POST("/login", authHandlers.PostLogin)
		}

		// Template catalog is readable without a session so the public
		// campaign builder can show theme previews.
		templates := api.Group("/templates")
		{
			templates.GET("", templateHandlers.GetTemplates)
			templates.POST("/validate", templateHandlers.PostValidate)
		}

		// Everything below requires a session
		authed := api.Group("/")
		authed.Use(middleware.AuthMiddleware())
		{
			profiles := authed.Group("/profiles")
			{
				profiles.GET("/me", profileHandlers.GetMe)
				profiles.PUT("/me", profileHandlers.PutMe)
			}

			delegations := authed.Group("/delegations")
			{
				delegations.POST("", middleware.RequireRole(dating.RoleSingle), delegationHandlers.PostInvite)
				delegations.POST("/accept", middleware.RequireRole(dating.RoleWingman), delegationHandlers.PostAccept)
				delegations.DELETE("/:id", middleware.RequireRole(dating.RoleSingle), delegationHandlers.DeleteDelegation)
				delegations.GET("", delegationHandlers.GetDelegations)
			}

			campaigns := authed.Group("/campaigns")
			{
				campaigns.POST("", middleware.RequireRole(dating.RoleWingman), campaignHandlers.PostCreate)
				campaigns.GET("", campaignHandlers.GetCampaigns)
				campaigns.GET("/:id", campaignHandlers.GetCampaign)
				campaigns.PUT("/:id", campaignHandlers.PutCampaign)
				campaigns.POST("/:id/publish", campaignHandlers.PostPublish)
				campaigns.POST("/:id/unpublish", campaignHandlers.PostUnpublish)
				campaigns.DELETE("/:id", campaignHandlers.DeleteCampaign)
				campaigns.POST("/:id/preview", landingHandlers.PostPreview)

				campaigns.GET("/:id/candidates", candidateHandlers.GetCandidates)
				campaigns.GET("/:id/stats", candidateHandlers.GetStats)
				campaigns.GET("/:id/bookings", bookingHandlers.GetBookings)
				campaigns.GET("/:id/threads", messageHandlers.GetThreads)
				campaigns.GET("/:id/pipeline/ws", pipelineHandlers.GetPipelineSocket)
			}

			candidates := authed.Group("/candidates")
			{
				candidates.GET("/:id", candidateHandlers.GetCandidate)
				candidates.PUT("/:id/stage", candidateHandlers.PutStage)
				candidates.PUT("/:id/notes", candidateHandlers.PutNotes)
				candidates.DELETE("/:id", candidateHandlers.DeleteCandidate)
				candidates.GET("/:id/events", candidateHandlers.GetEvents)
				candidates.POST("/:id/messages", messageHandlers.PostMessage)
				candidates.GET("/:id/messages", messageHandlers.GetThread)
			}

			bookings := authed.Group("/bookings")
			{
				bookings.POST("", bookingHandlers.PostSchedule)
				bookings.GET("/availability", bookingHandlers.GetAvailability)
				bookings.POST("/:id/cancel", bookingHandlers.PostCancel)
				bookings.POST("/:id/reschedule", bookingHandlers.PostReschedule)
				bookings.POST("/:id/complete", bookingHandlers.PostComplete)
				bookings.POST("/:id/no-show", bookingHandlers.PostNoShow)
			}
		}
	}

	return r
}
