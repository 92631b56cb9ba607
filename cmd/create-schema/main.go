package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables: %v", err)
	}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Fatal("DATABASE_URL must be set to create the exports schema")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	exportsSQL := `
CREATE TABLE IF NOT EXISTS exports (
    id UUID PRIMARY KEY,
    filename VARCHAR(255) NOT NULL,
    mime_type VARCHAR(100) NOT NULL,
    size BIGINT NOT NULL,
    storage_path TEXT NOT NULL,

    -- per-sheet row counts of the workbook
    relation_count INTEGER NOT NULL DEFAULT 0,
    right_rows INTEGER NOT NULL DEFAULT 0,
    duty_rows INTEGER NOT NULL DEFAULT 0,
    goal_rows INTEGER NOT NULL DEFAULT 0,
    object_rows INTEGER NOT NULL DEFAULT 0,
    subject_rows INTEGER NOT NULL DEFAULT 0,

    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

	if _, err := pool.Exec(ctx, exportsSQL); err != nil {
		log.Fatalf("Failed to create exports table: %v", err)
	}
	log.Println("✓ Created exports table")

	if _, err := pool.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at DESC)"); err != nil {
		log.Fatalf("Failed to create index: %v", err)
	}
	log.Println("✓ Created idx_exports_created_at")

	log.Println("✓ Schema ready")
}
