package main

import (
	"context"
	"log"
	"os"

	"relviz-backend/config"
	"relviz-backend/handlers"
	"relviz-backend/render"
	"relviz-backend/repository"
	"relviz-backend/service"
	"relviz-backend/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg, err := config.Load(os.Getenv("RELVIZ_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize storage
	exportStorage, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Printf("Storage initialized (%s)", cfg.Storage.Type)

	// Export metadata lives in Postgres when configured, in memory otherwise
	var (
		exportRepo repository.ExportRepository
		memoryRepo *repository.MemoryExportRepository
	)
	if cfg.Database.URL != "" {
		db, err := initPostgres(cfg.Database.URL)
		if err != nil {
			log.Fatal("Failed to initialize Postgres:", err)
		}
		defer db.Close()
		exportRepo = repository.NewPostgresExportRepository(db)
	} else {
		log.Printf("DATABASE_URL not set, keeping export records in memory for %s", cfg.Export.Retention)
		memoryRepo = repository.NewMemoryExportRepository(cfg.Export.Retention)
		exportRepo = memoryRepo
	}

	reportService := service.NewReportService(
		service.WithExportRepository(exportRepo),
		service.WithStorage(exportStorage),
		service.WithFilenamePrefix(cfg.Export.FilenamePrefix),
	)
	if memoryRepo != nil {
		// expired records take their workbooks with them
		memoryRepo.OnEvicted(reportService.RemoveExportFile)
	}

	tmpl, err := render.Templates()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	reportHandler := handlers.NewReportHandler(reportService, cfg.Server.MaxInputBytes)
	exportHandler := handlers.NewExportHandler(reportService, cfg.Server.MaxInputBytes)
	r := handlers.NewRouter(reportHandler, exportHandler, tmpl)

	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func initPostgres(connString string) (*pgxpool.Pool, error) {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Println("Postgres connection established")
	return pool, nil
}
