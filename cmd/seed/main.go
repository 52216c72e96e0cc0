package main

import (
	"flag"
	"log"

	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/seed"
	"github.com/ecotrack/backend/pkg/config"
)

func main() {
	users := flag.Int("users", 10, "number of users to seed")
	posts := flag.Int("posts", 25, "number of posts to seed")
	flag.Parse()

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Reaction{},
		&models.Comment{},
		&models.PasswordResetCode{},
	); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	if err := seed.Run(db, *users, *posts, nil); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding completed.")
}
