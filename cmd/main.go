package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eventsynk/eventsynk-backend/config"
	"github.com/eventsynk/eventsynk-backend/database"
	"github.com/eventsynk/eventsynk-backend/internal/auditlog"
	"github.com/eventsynk/eventsynk-backend/internal/auth"
	"github.com/eventsynk/eventsynk-backend/internal/event"
	"github.com/eventsynk/eventsynk-backend/internal/notification"
	"github.com/eventsynk/eventsynk-backend/internal/registration"
	"github.com/eventsynk/eventsynk-backend/routes"
	"github.com/eventsynk/eventsynk-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Kafka producer for the audit pipeline. Nil when no brokers are
	// configured, in which case audit entries go straight to the DB.
	producer := utils.NewKafkaProducer(cfg)
	if producer != nil {
		defer producer.Close()
		auditlog.StartKafkaConsumer(cfg, auditlog.NewRepository(db))
		log.Println("✅ Kafka audit pipeline initialized")
	} else {
		log.Println("ℹ️ Kafka not configured, audit logs will be written directly")
	}

	// Third-party session verifier for synced sign-ins
	verifier, err := utils.NewSessionVerifier(cfg)
	if err != nil {
		log.Printf("⚠️ Session verifier init failed: %v", err)
		log.Println("ℹ️ Continuing without third-party sign-in (password auth still available)")
	} else if verifier != nil {
		log.Println("✅ Session verifier initialized")
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&event.Event{},
		&event.RegistrationField{},
		&registration.Registration{},
		&registration.RegistrationFieldResponse{},
		&notification.NotificationLog{},
		&auditlog.AuditLog{},
	); err != nil {
		log.Fatalf("❌ DB AutoMigrate failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	allowedOrigins := []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, db, producer, verifier)

	log.Printf("🚀 Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
