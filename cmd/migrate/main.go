package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/urbavisu/urbavisu-api/internal/config"
	"github.com/urbavisu/urbavisu-api/internal/pkg/database"
	"github.com/urbavisu/urbavisu-api/internal/pkg/logger"
)

// Usage:
//
//	migrate           apply all pending migrations
//	migrate down N    roll back N migrations
func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	args := flag.Args()
	if len(args) == 0 || args[0] == "up" {
		if err := database.Migrate(db.DB); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
		return
	}

	if args[0] != "down" {
		log.Error().Str("command", args[0]).Msg("Unknown command, expected up or down N")
		os.Exit(2)
	}

	steps := 1
	if len(args) > 1 {
		if steps, err = strconv.Atoi(args[1]); err != nil {
			log.Fatal().Str("steps", args[1]).Msg("Steps must be a number")
		}
	}
	if err := database.Rollback(db.DB, steps); err != nil {
		log.Fatal().Err(err).Msg("Rollback failed")
	}
	log.Info().Int("steps", steps).Msg("Migrations rolled back")
}
