// @title           Navix Backend API
// @version         1.0.0
// @description     Backend API for the Navix trade operations app: process registration wizard, document management, wallet and notifications over Supabase.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a Supabase JWT token.

package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"navix-backend/internal/advisory"
	"navix-backend/internal/config"
	"navix-backend/internal/database"
	"navix-backend/internal/handlers"
	"navix-backend/internal/middleware"
	"navix-backend/internal/supabase"
	"navix-backend/internal/wizard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbURL := cfg.DatabaseURL
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required: set it to your Supabase PostgreSQL connection string")
	}

	// Initialize advisory client
	advisoryClient := advisory.NewClient(cfg.GeminiAPIBaseURL, cfg.GeminiAPIKey)

	// Initialize Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	dbClient, err := supabase.NewDatabaseClient(dbURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	// Run migrations
	migrator, err := database.NewMigrator(dbURL)
	if err != nil {
		log.Printf("Warning: Failed to initialize migrator: %v", err)
	} else {
		defer migrator.Close()
		if err := migrator.Run(); err != nil {
			log.Printf("Warning: Migration failed: %v", err)
		} else {
			log.Println("Migrations completed successfully")
		}
	}

	// Wizard sessions live in memory for the lifetime of the server
	sessions := wizard.NewSessionStore()

	// Initialize handlers
	wizardHandler := handlers.NewWizardHandler(sessions, storageClient, dbClient, realtimeClient, advisoryClient)
	processesHandler := handlers.NewProcessesHandler(dbClient)
	documentsHandler := handlers.NewDocumentsHandler(dbClient, storageClient)
	walletHandler := handlers.NewWalletHandler(dbClient, realtimeClient)
	notificationsHandler := handlers.NewNotificationsHandler(dbClient)
	profilesHandler := handlers.NewProfilesHandler(dbClient)

	// Setup router
	router := gin.Default()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Registration wizard
	api.POST("/wizard", wizardHandler.Start)
	api.GET("/wizard/:session_id", wizardHandler.Get)
	api.PUT("/wizard/:session_id", wizardHandler.SetDetails)
	api.DELETE("/wizard/:session_id", wizardHandler.Abandon)
	api.POST("/wizard/:session_id/next", wizardHandler.Next)
	api.POST("/wizard/:session_id/back", wizardHandler.Back)
	api.GET("/wizard/:session_id/estimate", wizardHandler.Estimate)
	api.POST("/wizard/:session_id/documents", wizardHandler.AttachDocument)
	api.POST("/wizard/:session_id/documents/summary", wizardHandler.DocumentSummary)
	api.POST("/wizard/:session_id/advisory", wizardHandler.Advisory)
	api.POST("/wizard/:session_id/finish", wizardHandler.Finish)

	// Processes
	api.GET("/processes", processesHandler.List)
	api.GET("/processes/:process_id", processesHandler.Get)

	// Documents
	api.GET("/documents", documentsHandler.List)
	api.POST("/documents", documentsHandler.Upload)
	api.GET("/documents/:document_id/url", documentsHandler.SignedURL)

	// Wallet
	api.GET("/wallet", walletHandler.Balance)
	api.GET("/wallet/transactions", walletHandler.Transactions)
	api.POST("/wallet/transactions", walletHandler.Transact)

	// Notifications
	api.GET("/notifications", notificationsHandler.List)
	api.PATCH("/notifications/:notification_id/read", notificationsHandler.MarkRead)

	// Profile
	api.GET("/profile", profilesHandler.Get)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
