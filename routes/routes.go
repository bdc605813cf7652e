package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eventsynk/eventsynk-backend/config"
	"github.com/eventsynk/eventsynk-backend/internal/auditlog"
	"github.com/eventsynk/eventsynk-backend/internal/auth"
	"github.com/eventsynk/eventsynk-backend/internal/event"
	"github.com/eventsynk/eventsynk-backend/internal/notification"
	"github.com/eventsynk/eventsynk-backend/internal/registration"
	"github.com/eventsynk/eventsynk-backend/internal/reports"
	"github.com/eventsynk/eventsynk-backend/middleware"
	"github.com/eventsynk/eventsynk-backend/utils"
)

// Setup wires every module's repositories, services and handlers onto the
// router. Shared infrastructure (DB handle, Kafka producer, session
// verifier) is owned by main and passed in.
func Setup(r *gin.Engine, cfg *config.Config, db *gorm.DB, producer *utils.KafkaProducer, verifier *utils.SessionVerifier) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := r.Group("/api")
	api.Use(middleware.RateLimiter(cfg))
	api.Use(middleware.AuditMiddleware()) // capture client IP for audit trails

	// ========== Audit Log Module ==========
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo, producer)

	// ========== Auth ==========
	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc, verifier)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/sync-user", authHandler.SyncUser)
		authGroup.GET("/me", middleware.AuthMiddleware(cfg, authSvc), authHandler.Me)
	}

	// ========== Notification Module ==========
	notifRepo := notification.NewRepository(db)
	sender := notification.NewEmailSender(cfg)
	emailNotifier := notification.NewEmailNotifier(sender, notifRepo)

	// ========== Events + Registrations ==========
	eventRepo := event.NewRepository(db)
	regRepo := registration.NewRepository(db)

	// The hub resolves registrants through the registration repository and
	// fans event changes out to every attached notifier.
	hub := notification.NewHub(regRepo)
	hub.Attach(emailNotifier)

	eventSvc := event.NewService(eventRepo, auditSvc, hub)
	eventHandler := event.NewHandler(eventSvc, utils.NewPosterUploader(cfg))

	regSvc := registration.NewService(regRepo, eventRepo, auditSvc)
	regHandler := registration.NewHandler(regSvc)

	// ========== Reports ==========
	reportsHandler := reports.NewHandler(reports.NewRosterExporter(), regSvc, eventSvc)

	eventGroup := api.Group("/events")
	{
		eventGroup.GET("/", eventHandler.ListEvents)
		eventGroup.GET("/:id", eventHandler.GetEvent)

		protected := eventGroup.Group("/")
		protected.Use(middleware.AuthMiddleware(cfg, authSvc))
		{
			protected.POST("/", eventHandler.CreateEvent)
			protected.PUT("/:id", eventHandler.UpdateEvent)
			protected.DELETE("/:id", eventHandler.DeleteEvent)

			protected.POST("/:id/register", regHandler.Register)
			protected.DELETE("/:id/register", regHandler.Cancel)

			protected.GET("/:id/participants", regHandler.GetParticipants)
			protected.GET("/:id/participants/export", reportsHandler.ExportParticipants)
		}
	}

	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware(cfg, authSvc))
	{
		userGroup.GET("/:id/events", eventHandler.GetUserEvents)
		userGroup.GET("/:id/registrations", regHandler.GetUserRegistrations)
	}
}
