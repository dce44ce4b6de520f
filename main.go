package main

import (
	"errors"
	"log"
	"net/http"

	"civilregistry-go/config"
	"civilregistry-go/database"
	"civilregistry-go/handlers"
	"civilregistry-go/middleware"
	"civilregistry-go/models"
	"civilregistry-go/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	config.ValidateConfig(cfg)

	if err := utils.InitializeJWT(cfg.JWTSecret); err != nil {
		log.Fatal("Failed to initialize JWT:", err)
	}

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if err := seedAdmin(db, cfg); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	h := handlers.NewHandlers(db, cfg)

	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.CORS)
	r.Use(middleware.RateLimit)

	// Public routes
	r.HandleFunc("/api/register", h.Register).Methods("POST")
	r.HandleFunc("/api/login", h.Login).Methods("POST")
	r.HandleFunc("/api/health", h.HealthCheck).Methods("GET")

	// Protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.JWTAuth)

	// Citizen routes
	protected.HandleFunc("/profile", h.GetProfile).Methods("GET")
	protected.HandleFunc("/profile/contact", h.UpdateContact).Methods("PUT")
	protected.HandleFunc("/profile/photo", h.UploadPhoto).Methods("PUT")
	protected.HandleFunc("/profile/photo", h.GetPhoto).Methods("GET")
	protected.HandleFunc("/artifacts", h.RegisterArtifact).Methods("POST")
	protected.HandleFunc("/artifacts", h.ListArtifacts).Methods("GET")
	protected.HandleFunc("/artifacts/status", h.SetArtifactStatus).Methods("PUT")
	protected.HandleFunc("/cases", h.ListOwnCases).Methods("GET")

	// Admin routes
	adminRoutes := protected.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AdminAuth)
	adminRoutes.HandleFunc("/registrations/pending", h.ListPendingRegistrations).Methods("GET")
	adminRoutes.HandleFunc("/registrations/{id}/decide", h.DecideRegistration).Methods("POST")
	adminRoutes.HandleFunc("/registrations/{id}/approve", h.ApproveRegistration).Methods("POST")
	adminRoutes.HandleFunc("/registrations/{id}/reject", h.RejectRegistration).Methods("POST")
	adminRoutes.HandleFunc("/citizens/{uid}/summary", h.CitizenSummary).Methods("GET")
	adminRoutes.HandleFunc("/citizens/{uid}/status", h.SetAccountStatus).Methods("POST")
	adminRoutes.HandleFunc("/reports/artifacts", h.MinimumArtifactsReport).Methods("GET")
	adminRoutes.HandleFunc("/statistics", h.GetStatistics).Methods("GET")
	adminRoutes.HandleFunc("/cases", h.RegisterCase).Methods("POST")
	adminRoutes.HandleFunc("/cases/{caseNo}", h.GetCase).Methods("GET")
	adminRoutes.HandleFunc("/audit-logs", h.GetAuditLogs).Methods("GET")

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", cfg.Environment)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Fatal(http.ListenAndServe(":"+port, r))
}

// seedAdmin provisions the bootstrap admin account on first start. Admins
// are never self-registered.
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.BootstrapPass == "" {
		log.Println("BOOTSTRAP_ADMIN_PASS not set, skipping admin seed")
		return nil
	}

	var existing models.Admin
	err := db.Where("username = ?", cfg.BootstrapUser).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashAdminPassword(cfg.BootstrapPass)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Username:     cfg.BootstrapUser,
		PasswordHash: hash,
		Name:         "Registrar",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Seeded bootstrap admin %q", cfg.BootstrapUser)
	return nil
}
