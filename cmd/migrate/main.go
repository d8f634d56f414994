package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/config"
	"book-catalog/internal/infrastructure/database"
	"book-catalog/pkg/logger"
)

func main() {
	command := flag.String("command", "up", "Migration command: up, down, status, reset")
	flag.Parse()

	_ = godotenv.Load()

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load database config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	ctx := context.Background()
	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.Migrate(ctx, db.Pool, *command); err != nil {
		db.Close()
		log.Fatal().Err(err).Str("command", *command).Msg("Migration failed")
	}

	log.Info().Str("command", *command).Msg("Migration finished")
}
