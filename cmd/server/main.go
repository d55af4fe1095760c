package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"designflow-backend/internal/config"
	"designflow-backend/internal/database"
	"designflow-backend/internal/handlers"
	"designflow-backend/internal/middleware"
	"designflow-backend/internal/notify"
	"designflow-backend/internal/orders"
	"designflow-backend/internal/realtime"
	"designflow-backend/internal/store"
	"designflow-backend/internal/supabase"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	storageClient := supabase.NewStorageClient(supabaseClient, cfg.SupabaseStorageBucket)
	realtimeClient := supabase.NewRealtimeClient(cfg.SupabaseURL, cfg.SupabaseKey)

	// Document store: Postgres when DATABASE_URL is set, in-memory otherwise.
	var docs store.DocumentStore
	if cfg.DatabaseURL != "" {
		migrator, err := database.NewMigrator(cfg.DatabaseURL, log)
		if err != nil {
			log.Fatalf("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		migrator.Close()
		log.Info("Migrations completed successfully")

		pg, err := store.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pg.Close()
		docs = pg
	} else {
		log.Warn("DATABASE_URL not set, using in-memory store; data will not survive restarts")
		docs = store.NewMemoryStore()
	}

	notifier := notify.New(cfg, log)
	builder := orders.NewBuilder(storageClient, log, cfg.UploadTimeout)
	synchronizer := realtime.NewSynchronizer(docs, log)

	// Initialize handlers
	ordersHandler := handlers.NewOrdersHandler(docs, builder, notifier, realtimeClient, log)
	adminHandler := handlers.NewAdminHandler(docs, storageClient, notifier, realtimeClient, log)
	usersHandler := handlers.NewUsersHandler(docs, log)
	streamHandler := handlers.NewStreamHandler(synchronizer, log)

	// Setup router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Catalog (no auth)
	router.GET("/api/v1/services", handlers.ListServices)
	router.GET("/api/v1/services/:service_id/presets", handlers.ListPresets)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Profile
	api.PUT("/users/me", usersHandler.UpsertProfile)

	// Orders
	api.POST("/orders", ordersHandler.SubmitOrder)
	api.GET("/orders", ordersHandler.ListMyOrders)
	api.GET("/orders/stream", streamHandler.StreamMyOrders)
	api.GET("/orders/:order_id", ordersHandler.GetOrder)
	api.GET("/orders/:order_id/stream", streamHandler.StreamOrder)
	api.GET("/orders/:order_id/help", ordersHandler.GetHelpLink)
	api.POST("/orders/:order_id/cancel", ordersHandler.CancelOrder)
	api.POST("/orders/:order_id/approve", ordersHandler.ApproveDraft)
	api.POST("/orders/:order_id/revision", ordersHandler.RequestRevision)

	// Admin dashboard
	admin := api.Group("/admin")
	admin.Use(middleware.AdminOnly())
	admin.GET("/orders", adminHandler.ListOrders)
	admin.GET("/orders/stream", streamHandler.StreamAllOrders)
	admin.PUT("/orders/:order_id", adminHandler.SaveOrder)
	admin.POST("/orders/:order_id/draft", adminHandler.UploadDraft)
	admin.DELETE("/orders/:order_id/draft", adminHandler.RemoveDraft)
	admin.POST("/orders/:order_id/final", adminHandler.UploadFinalFiles)
	admin.DELETE("/orders/:order_id/assets", adminHandler.PurgeAssets)
	admin.GET("/orders/:order_id/palette", adminHandler.ExportPalette)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Infof("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
