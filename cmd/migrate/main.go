package main

import (
	"flag"
	"log"

	"quizwhiz/internal/config"
	"quizwhiz/internal/database"
)

func main() {
	migrationsDir := flag.String("dir", "database/migrations", "directory containing migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.RunMigrations(cfg.DB.Path, *migrationsDir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations applied successfully")
}
