package main

import (
	"log"
	"os"

	"immoflow-be/internal/model"
	"immoflow-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDB(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions
	log.Println("Step 1: Setting up Extensions...")

	// Status and role columns are plain varchar; the transition tables in
	// internal/entity are the authoritative vocabulary, so no enum types.
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.RoleChangeRequest{},
		&model.Lease{},
		&model.Certification{},
		&model.Mandate{},
		&model.ReviewSettings{},
		&model.AlertType{},
		&model.Alert{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: partial indexes GORM tags cannot express
	log.Println("Step 3: Creating partial indexes...")

	postMigrationSQL := []string{
		// One open role change request per (user, target role). This index is
		// the authoritative duplicate guard; the application pre-check only
		// exists for a friendlier error message.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_role_change_requests_open
		 ON role_change_requests (user_id, to_role)
		 WHERE status IN ('pending', 'under_review');`,

		// One open-or-approved certification per lease.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_certifications_lease_open
		 ON ansut_certifications (lease_id)
		 WHERE status IN ('pending', 'under_review', 'approved');`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
