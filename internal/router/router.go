// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/permit-portal/internal/config"
	"github.com/javajoker/permit-portal/internal/handlers"
	"github.com/javajoker/permit-portal/internal/i18n"
	"github.com/javajoker/permit-portal/internal/middleware"
	"github.com/javajoker/permit-portal/internal/repository"
	"github.com/javajoker/permit-portal/internal/services"
	"github.com/javajoker/permit-portal/internal/utils"
)

func Initialize(store *repository.Store, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(store.Audit, cfg, nil)
	submissionService := services.NewSubmissionService(store.Applications, notificationService)
	applicantService := services.NewApplicantService(store.Applications)
	reviewService := services.NewReviewService(store.Applications, store.Audit, notificationService)

	// Initialize handlers
	permitHandler := handlers.NewPermitHandler()
	applicationHandler := handlers.NewApplicationHandler(submissionService, applicantService, cfg.Server.MaxUploadMB)
	adminHandler := handlers.NewAdminHandler(reviewService)

	// Identity tokens
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	utils.SetJWTIssuer(cfg.JWT.Issuer)

	// Initialize Gin router
	r := gin.New()
	r.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.CORSOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(store.Audit))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"version":   "1.0.0",
			"languages": i18n.GetSupportedLanguages(),
		})
	})

	submissionLimit := middleware.SubmissionRateLimit(cfg.RateLimit.SubmissionsPerMinute, cfg.RateLimit.Burst)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Permit catalog (public)
		permitRoutes := v1.Group("/permits")
		permitRoutes.Use(middleware.OptionalAuth())
		{
			permitRoutes.GET("", permitHandler.ListPermits)
			permitRoutes.GET("/:slug/schema", permitHandler.GetSchema)
			permitRoutes.POST("/:slug/steps/:step/validate", permitHandler.ValidateStep)
		}

		// Applicant routes
		applications := v1.Group("/applications")
		applications.Use(middleware.AuthRequired())
		{
			applications.POST("", submissionLimit, applicationHandler.Submit)
			applications.POST("/upload", submissionLimit, applicationHandler.Upload)
			applications.GET("/mine", applicationHandler.ListMine)
			applications.GET("/mine/summary", applicationHandler.Summary)
			applications.GET("/mine/:id", applicationHandler.GetMine)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			adminApps := admin.Group("/applications")
			{
				adminApps.GET("", adminHandler.ListApplications)
				adminApps.GET("/stats", adminHandler.GetStats)
				adminApps.GET("/:id", adminHandler.GetApplication)
				adminApps.PUT("/:id/status", adminHandler.UpdateStatus)
				adminApps.GET("/:id/history", adminHandler.History)
			}

			admin.GET("/notifications", adminHandler.Notifications)
		}
	}

	return r
}
