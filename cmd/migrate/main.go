package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"stockkeeper/config"
	"stockkeeper/internal/pkg/database"
)

// Uso: go run ./cmd/migrate [up|down|status|reset|version|...] [args]
// As migrations vêm embutidas do pacote migrations.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Warning: .env file not found or failed to read. Loading configs from system environment only: %v", err)
	}

	cfg := config.LoadConfig()
	if cfg.DBDriver == config.DriverMemory {
		log.Fatalf("goose: DB_DRIVER=%s não tem migrations", cfg.DBDriver)
	}

	verbose := flag.Bool("v", false, "enable goose logging")
	flag.Parse()

	// Connect to the database
	db, dialect, err := database.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("goose: failed to connect to DB: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: failed to close DB: %v\n", err)
		}
	}()

	if !*verbose {
		goose.SetLogger(goose.NopLogger())
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"} // Default to 'up' if no command is provided
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := database.RunMigrations(db, dialect, command, args...); err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("goose %s success (%s)\n", command, dialect.Name)
}
