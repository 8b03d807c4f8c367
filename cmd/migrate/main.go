// Command migrate applies the schema for the shared admission-window store.
// Only needed when the server runs with DATABASE_URL set; the in-process
// store needs no schema.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/relaypost/backend/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS admission_windows (
	addr         TEXT PRIMARY KEY,
	count        INTEGER NOT NULL,
	window_start TIMESTAMPTZ NOT NULL
)`

func main() {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")
	logging.Setup(os.Getenv("LOG_LEVEL"))

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logging.Fatal("DATABASE_URL is not set; the in-memory limiter store needs no migration")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		logging.Fatal("migration failed", "error", err)
	}
	slog.Info("admission_windows schema applied")
}
