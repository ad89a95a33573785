// Command legacyimport backfills the inaugural season's final player
// totals, carried over from the spreadsheet era, as a legacy-fixed
// season with real roster and stat rows.
package main

import (
	"context"
	"os"
	"time"

	"github.com/andrwlab/Season2App/internal/db"
	"github.com/andrwlab/Season2App/internal/league"
	"github.com/andrwlab/Season2App/internal/service"
	"github.com/andrwlab/Season2App/internal/store"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var seasonOneTotals = []service.LegacyPlayerTotal{
	{Name: "Rocco Lokee", Team: "Team Blue", Attack: 23, Blocks: 5, Assists: 0, Service: 3},
	{Name: "Mr. Hall", Team: "Team Red", Attack: 24, Blocks: 1, Assists: 0, Service: 6},
	{Name: "Lucas Wu", Team: "Team Pink", Attack: 18, Blocks: 2, Assists: 0, Service: 4},
	{Name: "Wilson Chen", Team: "Team Black", Attack: 9, Blocks: 6, Assists: 0, Service: 5},
	{Name: "Mr. Torres", Team: "Team Pink", Attack: 10, Blocks: 0, Assists: 0, Service: 3},
	{Name: "Mr. Solis", Team: "Team Blue", Attack: 7, Blocks: 0, Assists: 0, Service: 5},
	{Name: "Edgar Justavino", Team: "Team Red", Attack: 6, Blocks: 0, Assists: 0, Service: 5},
	{Name: "James De Gracia", Team: "Team Blue", Attack: 4, Blocks: 2, Assists: 0, Service: 2},
	{Name: "Willy Hou", Team: "Team Red", Attack: 4, Blocks: 1, Assists: 0, Service: 2},
	{Name: "Ferran Ponton", Team: "Team Pink", Attack: 4, Blocks: 0, Assists: 0, Service: 0},
	{Name: "Joel Pérez", Team: "Team Black", Attack: 2, Blocks: 0, Assists: 0, Service: 2},
	{Name: "Mr. Marmolejo", Team: "Team Black", Attack: 2, Blocks: 0, Assists: 0, Service: 1},
	{Name: "Mrs. Almanza", Team: "Team Red", Attack: 1, Blocks: 0, Assists: 0, Service: 2},
	{Name: "Rafael Romero", Team: "Team Pink", Attack: 2, Blocks: 1, Assists: 0, Service: 0},
	{Name: "Lauren Tapia", Team: "Team Red", Attack: 0, Blocks: 0, Assists: 0, Service: 2},
	{Name: "Mr. Pérez", Team: "Team Pink", Attack: 1, Blocks: 0, Assists: 0, Service: 1},
	{Name: "Mario Zhong", Team: "Team Blue", Attack: 0, Blocks: 0, Assists: 0, Service: 2},
	{Name: "Anny Deng", Team: "Team Pink", Attack: 0, Blocks: 0, Assists: 0, Service: 2},
	{Name: "William Chen", Team: "Team Blue", Attack: 2, Blocks: 0, Assists: 0, Service: 0},
	{Name: "Mr. Aguilera", Team: "Team Blue", Attack: 0, Blocks: 0, Assists: 0, Service: 1},
	{Name: "Dhruvin Ahir", Team: "Team Blue", Attack: 0, Blocks: 0, Assists: 0, Service: 1},
	{Name: "Mr. Vergara", Team: "Team Black", Attack: 1, Blocks: 0, Assists: 0, Service: 0},
	{Name: "Michell Qiu", Team: "Team Pink", Attack: 0, Blocks: 0, Assists: 0, Service: 1},
	{Name: "Mavielis Castillero", Team: "Team Blue", Attack: 0, Blocks: 0, Assists: 0, Service: 1},
	{Name: "Héctor Chen", Team: "Team Black", Attack: 0, Blocks: 0, Assists: 0, Service: 1},
}

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

	importer := service.NewImportService(
		database,
		store.NewSeasonStore(database),
		store.NewMatchStore(database),
		store.NewRosterStore(database),
	)

	report, err := importer.ImportLegacyTotals(context.Background(), league.Season{
		ID:        seasonID,
		Name:      seasonName,
		StartDate: startDate,
	}, seasonOneTotals)
	if err != nil {
		log.Fatal().Err(err).Msg("legacy import failed")
	}

	log.Info().
		Str("season", seasonID).
		Int("teamsCreated", report.TeamsCreated).
		Int("playersMatched", report.PlayersMatched).
		Int("playersCreated", report.PlayersCreated).
		Int("statRowsLoaded", report.StatRowsLoaded).
		Msg("legacy import complete")
}
