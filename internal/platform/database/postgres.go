package database

import (
	"context"
	"database/sql"
	"time"

	"cublex/internal/platform/config"
	"cublex/internal/platform/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

var DB *sql.DB

func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Error opening database")
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Verify connection
	if err = DB.PingContext(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Error connecting to database")
	}
	if err = Migrate(ctx, DB); err != nil {
		logger.Log.Fatal().Err(err).Msg("Error applying migrations")
	}

	logger.Log.Info().Str("host", config.AppConfig.DBHost).Msg("Successfully connected to PostgreSQL database")
}

func Close() {
	if DB != nil {
		DB.Close()
		logger.Log.Info().Msg("Database connection closed")
	}
}

// Status reports the database mode for the health endpoint.
func Status(ctx context.Context) string {
	if DB == nil {
		return "development-mode"
	}
	if err := DB.PingContext(ctx); err != nil {
		return "unavailable"
	}
	return "connected"
}
