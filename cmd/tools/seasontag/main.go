// Command seasontag stamps a season id onto team, match, roster and
// stat rows that predate season scoping, in batches, and ensures the
// season row itself exists.
package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/andrwlab/Season2App/internal/db"
	"github.com/andrwlab/Season2App/internal/league"
	"github.com/andrwlab/Season2App/internal/store"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const batchSize = 400

var collections = []string{"teams", "matches", "rosters", "player_stats"}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	godotenv.Load()

	seasonID := os.Getenv("SEASON_ID")
	if seasonID == "" {
		seasonID = "s1"
	}
	seasonName := os.Getenv("SEASON_NAME")
	if seasonName == "" {
		seasonName = "Season 1"
	}
	startDate := os.Getenv("SEASON_START_DATE")
	if startDate == "" {
		startDate = "2025-01-01"
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "league.db"
	}
	database, err := db.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()
	if err := db.RunMigrations(database.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()
	seasons := store.NewSeasonStore(database)
	if _, err := seasons.GetSeason(ctx, seasonID); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Fatal().Err(err).Msg("failed to check season")
		}
		if err := seasons.UpsertSeason(ctx, &league.Season{
			ID:         seasonID,
			Name:       seasonName,
			StartDate:  startDate,
			DataSource: league.SourceLive,
		}); err != nil {
			log.Fatal().Err(err).Msg("failed to create season")
		}
		log.Info().Str("season", seasonID).Msg("season row created")
	}

	admin := store.NewAdminStore(database)
	for _, collection := range collections {
		var total int64
		for {
			stamped, err := admin.StampSeasonID(ctx, collection, seasonID, batchSize)
			if err != nil {
				log.Fatal().Err(err).Str("collection", collection).Msg("stamp failed")
			}
			total += stamped
			if stamped < batchSize {
				break
			}
		}
		log.Info().Str("collection", collection).Int64("stamped", total).Msg("collection tagged")
	}

	log.Info().Str("season", seasonID).Msg("season tagging complete")
}
