package main

import (
	"log"
	"os"

	"immoflow-be/internal/model"
	"immoflow-be/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDB(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Alert Types...")
	SeedAlertTypes(db)

	log.Println("Seeding Review Settings...")
	seedReviewSettings(db)

	log.Println("Seeding Admin User...")
	seedAdminUser(db)

	log.Println("Seeding completed!")
}

// seedReviewSettings ensures the single settings row exists with the
// default 72h deadline and no auto action.
func seedReviewSettings(db *gorm.DB) {
	settings := model.ReviewSettings{
		ID:            1,
		DeadlineHours: 72,
		AutoAction:    "none",
	}
	if err := db.Where("id = ?", settings.ID).FirstOrCreate(&settings).Error; err != nil {
		log.Printf("Error seeding review settings: %v", err)
		return
	}
	log.Println("✅ Review settings seeded successfully.")
}

// seedAdminUser creates the initial admin account. Credentials come from
// ADMIN_EMAIL / ADMIN_PASSWORD so no default password ships in code.
func seedAdminUser(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("Info: ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Admin user '%s' already exists, skipping...", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}
	hashStr := string(hash)

	admin := model.User{
		Email:         email,
		PasswordHash:  &hashStr,
		FullName:      "Platform Administrator",
		Role:          "admin",
		Status:        "active",
		EmailVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
		return
	}
	log.Printf("Created admin user: %s", email)
}
