package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"tripbuilder/internal/cache"
	"tripbuilder/internal/config"
	"tripbuilder/internal/database"
	"tripbuilder/internal/db"
	"tripbuilder/internal/fieldmap"
	"tripbuilder/internal/ghl"
	"tripbuilder/internal/handlers"
	"tripbuilder/internal/health"
	h "tripbuilder/internal/http"
	"tripbuilder/internal/middleware"
	"tripbuilder/internal/repositories"
	"tripbuilder/internal/services"
	"tripbuilder/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dropdown lookups will hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	// Uses embedded migrations for standalone binary operation
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.FS)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// GHL API client
	client := ghl.NewClient(cfg.GHL.LocationID, cfg.GHL.APIToken,
		ghl.WithBaseURL(cfg.GHL.BaseURL))

	// Initialize repositories
	tripRepo := repositories.NewTripRepository(pool)
	passengerRepo := repositories.NewPassengerRepository(pool)
	contactRepo := repositories.NewContactRepository(pool)
	pipelineRepo := repositories.NewPipelineRepository(pool)
	customFieldRepo := repositories.NewCustomFieldRepository(pool)
	fieldMapRepo := repositories.NewFieldMapRepository(pool)
	syncLogRepo := repositories.NewSyncLogRepository(pool)
	vendorRepo := repositories.NewVendorRepository(pool)
	fileRepo := repositories.NewFileRepository(pool)

	// Field registry: load the persisted CRM field mappings so pushes
	// work before the first full sync rebuilds them.
	registry := fieldmap.NewRegistry()
	if rows, err := fieldMapRepo.ListAll(ctx); err != nil {
		log.Printf("[FieldMap] Could not load persisted mappings: %v", err)
	} else {
		registry.LoadPersisted(rows)
	}
	codec := fieldmap.NewCodec(registry)

	// Initialize services
	twoWay := services.NewTwoWaySyncService(client, codec,
		tripRepo, passengerRepo, contactRepo,
		cfg.GHL.TripPipelineID, cfg.GHL.PassengerPipelineID)
	linker := services.NewTripLinkService(tripRepo, passengerRepo)
	vendorSync := services.NewVendorSyncService(client, vendorRepo, customFieldRepo)
	fullSync := services.NewGHLSyncService(client, registry, twoWay, linker, vendorSync,
		pipelineRepo, customFieldRepo, fieldMapRepo, syncLogRepo,
		cfg.GHL.TripPipelineID, cfg.GHL.PassengerPipelineID)
	tripService := services.NewTripService(tripRepo, passengerRepo, twoWay)
	passengerService := services.NewPassengerService(passengerRepo, contactRepo, tripRepo, twoWay)
	contactService := services.NewContactService(contactRepo, client, twoWay)

	fileService, err := services.NewFileService(ctx,
		cfg.S3.Bucket, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey, fileRepo)
	if err != nil {
		log.Fatalf("Failed to initialize S3 client: %v", err)
	}

	pdfService := services.NewPDFService()
	documentService := services.NewDocumentService(pdfService, fileService,
		passengerRepo, tripRepo, contactRepo, client)

	// Initialize handlers
	tripHandler := handlers.NewTripHandler(tripService)
	passengerHandler := handlers.NewPassengerHandler(passengerService)
	contactHandler := handlers.NewContactHandler(contactService)
	vendorHandler := handlers.NewVendorHandler(vendorSync, vendorRepo)
	syncHandler := handlers.NewSyncHandler(fullSync, twoWay, syncLogRepo,
		cfg.GHL.TripPipelineID, cfg.GHL.PassengerPipelineID)
	documentHandler := handlers.NewDocumentHandler(documentService)
	fileHandler := handlers.NewFileHandler(fileService)
	fieldHandler := handlers.NewFieldHandler(customFieldRepo)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Router and middleware chain
	router := h.NewRouter(tripHandler, passengerHandler, contactHandler,
		vendorHandler, syncHandler, documentHandler, fileHandler,
		fieldHandler, healthHandler)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.RequestLogging(
				corsMiddleware(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("TripBuilder server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
