package config

import "os"

// PostgresConfig enables the optional results sink; an empty URL leaves it
// disabled.
type PostgresConfig struct {
	Url string
}

func NewPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		Url: os.Getenv("DATABASE_URL"),
	}
}
