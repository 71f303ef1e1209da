package main

import (
	"database/sql"
	"flag"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"samad-backend/internal/config"
	"samad-backend/internal/database/migrations"
	"samad-backend/internal/logger"
)

// Applies the SQL schema to the configured Postgres database.
//
//	go run ./cmd/migrate            # migrate up
//	go run ./cmd/migrate -down      # roll everything back
//	go run ./cmd/migrate -to 1      # migrate to a specific version
func main() {
	down := flag.Bool("down", false, "roll back all migrations")
	to := flag.Uint("to", 0, "migrate to a specific version")
	dir := flag.String("dir", "./migrations", "migrations directory")
	flag.Parse()

	_ = godotenv.Load()
	log := logger.NewLogger()
	defer log.Close()

	cfg := config.Load()
	if cfg.Storage.PostgresDSN == "" {
		log.Fatal("MIGRATE", "POSTGRES_DSN is not set")
	}

	sqldb, err := sql.Open("postgres", cfg.Storage.PostgresDSN)
	if err != nil {
		log.Fatal("MIGRATE", "Failed to open Postgres: "+err.Error())
	}
	bunDB := bun.NewDB(sqldb, pgdialect.New())
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, *dir, log)
	defer runner.Close()

	switch {
	case *down:
		err = runner.Down()
	case *to > 0:
		err = runner.To(*to)
	default:
		err = runner.Up()
	}
	if err != nil {
		log.Error("MIGRATE", err.Error())
		os.Exit(1)
	}
	log.Info("MIGRATE", "Done")
}
