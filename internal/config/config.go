// Package config reads the process configuration from the
// environment.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DefaultDatabasePath is used when AGENDA_DB is not set.
const DefaultDatabasePath = "agenda.db"

// Config holds the process configuration.
type Config struct {
	// DatabasePath is the location of the SQLite database file.
	DatabasePath string
}

// Load reads the configuration from environment variables. A .env
// file in the working directory is loaded first when present, so
// development setups do not need to export variables.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{DatabasePath: DefaultDatabasePath}
	if path := os.Getenv("AGENDA_DB"); path != "" {
		cfg.DatabasePath = path
	}
	return cfg
}
