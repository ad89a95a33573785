// Command dedupe merges player records that collapse to the same
// normalized name key, rewriting roster, stat and trade references to
// the surviving record. Runs dry by default; set DRY_RUN=0 to apply.
package main

import (
	"context"
	"os"
	"time"

	"github.com/andrwlab/Season2App/internal/db"
	"github.com/andrwlab/Season2App/internal/service"
	"github.com/andrwlab/Season2App/internal/store"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	godotenv.Load()

	dryRun := os.Getenv("DRY_RUN") != "0"

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

	rosterService := service.NewRosterService(database, store.NewRosterStore(database), store.NewMatchStore(database))

	ctx := context.Background()
	groups, err := rosterService.FindDuplicatePlayers(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to scan for duplicates")
	}
	if len(groups) == 0 {
		log.Info().Msg("no duplicate players found")
		return
	}

	for _, group := range groups {
		removed := make([]string, 0, len(group.Removed))
		for _, p := range group.Removed {
			removed = append(removed, p.ID)
		}
		log.Info().
			Str("nameKey", group.NameKey).
			Str("survivor", group.Survivor.ID).
			Strs("removed", removed).
			Msg("duplicate group")
	}

	if dryRun {
		log.Info().Int("groups", len(groups)).Msg("dry run complete, set DRY_RUN=0 to apply")
		return
	}

	if err := rosterService.MergeDuplicates(ctx, groups); err != nil {
		log.Fatal().Err(err).Msg("merge failed")
	}
	log.Info().Int("groups", len(groups)).Msg("deduplication complete")
}
