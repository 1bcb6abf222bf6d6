package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"futurenews/db/migrations"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// Connect opens the entitlement database for driver ("postgres" or "sqlite")
// and applies pending migrations.
func Connect(driver, dsn string) error {
	if dsn == "" {
		slog.Warn("DATABASE_URL environment variable is not set", "driver", driver)
	}

	var err error
	DB, err = Open(driver, dsn)
	if err != nil {
		return err
	}

	return migrations.Run(DB, driver)
}

// Open returns a pinged connection pool without running migrations.
func Open(driver, dsn string) (*sql.DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// SQLite serialises writers; one connection keeps :memory: databases shared.
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	} else {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(25)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return conn, nil
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}
