package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/traillog/route-log-backend/internal/config"
	"github.com/traillog/route-log-backend/internal/database"
)

// Wipes every logged route from the local store and optionally reseeds the
// sample data. Meant for development devices, not end users.
func main() {
	var dbPathFlag string
	var reseed bool
	flag.StringVar(&dbPathFlag, "database-path", "", "SQLite file path (overrides DATABASE_PATH)")
	flag.BoolVar(&reseed, "reseed", false, "insert the sample routes after wiping")
	flag.Parse()

	// Try loading .env from current working directory (optional)
	_ = godotenv.Load()

	dbPath := dbPathFlag
	if dbPath == "" {
		dbPath = os.Getenv("DATABASE_PATH")
	}
	if dbPath == "" {
		log.Fatal("DATABASE_PATH is not set and -database-path was not provided")
	}

	db, err := database.NewConnection(config.DatabaseConfig{Path: dbPath})
	if err != nil {
		log.Fatalf("failed to open route store: %v", err)
	}
	defer db.Close()

	repo := database.NewRouteRepository(db)
	if err := repo.Init(); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	fmt.Println("Connected to route store. Deleting all routes...")
	if _, err := db.Exec(`DELETE FROM rutas`); err != nil {
		log.Fatalf("failed to delete routes: %v", err)
	}

	if reseed {
		if err := repo.Seed(); err != nil {
			log.Fatalf("failed to reseed sample routes: %v", err)
		}
		fmt.Println("Sample routes inserted.")
	}

	fmt.Println("Done.")
}
