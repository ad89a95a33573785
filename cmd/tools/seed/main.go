// Command seed creates a season, its teams and its scheduled matches
// from a schedule JSON file. Match ids derive from their slot, so the
// command is safe to re-run after results have been recorded.
package main

import (
	"context"
	"encoding/json"
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

func strPtr(s string) *string { return &s }

var defaultTeams = []service.SeedTeam{
	{ID: "red-flame-dragons", Name: "Red Flame Dragons", LogoFile: strPtr("redflamedragons.png")},
	{ID: "black-wolves", Name: "Black Wolves", LogoFile: strPtr("blackwolves.png")},
	{ID: "white-sharks", Name: "White Sharks", LogoFile: strPtr("whitesharks.png")},
	{ID: "yellow-lions", Name: "The Roaring Yellow Lions", LogoFile: strPtr("yellowlions.png")},
	{ID: "green-vipers", Name: "Green Vipers", LogoFile: strPtr("greenvipers.png")},
	{ID: "blue-raptors", Name: "Blue Raptors", LogoFile: strPtr("blueraptors.png")},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	godotenv.Load()

	seasonID := os.Getenv("SEASON_ID")
	if seasonID == "" {
		seasonID = "s2"
	}
	seasonName := os.Getenv("SEASON_NAME")
	if seasonName == "" {
		seasonName = "Season 2"
	}
	startDate := os.Getenv("SEASON_START_DATE")
	if startDate == "" {
		startDate = "2026-01-30"
	}
	scheduleFile := os.Getenv("SCHEDULE_FILE")
	if scheduleFile == "" {
		scheduleFile = "schedule.json"
	}

	raw, err := os.ReadFile(scheduleFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", scheduleFile).Msg("failed to read schedule file")
	}
	var schedule service.SchedulePayload
	if err := json.Unmarshal(raw, &schedule); err != nil {
		log.Fatal().Err(err).Str("file", scheduleFile).Msg("failed to parse schedule file")
	}

	teams := defaultTeams
	if teamsFile := os.Getenv("TEAMS_FILE"); teamsFile != "" {
		raw, err := os.ReadFile(teamsFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", teamsFile).Msg("failed to read teams file")
		}
		if err := json.Unmarshal(raw, &teams); err != nil {
			log.Fatal().Err(err).Str("file", teamsFile).Msg("failed to parse teams file")
		}
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

	report, err := importer.SeedSeason(context.Background(), league.Season{
		ID:         seasonID,
		Name:       seasonName,
		StartDate:  startDate,
		IsActive:   true,
		DataSource: league.SourceLive,
	}, teams, schedule)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	log.Info().
		Str("season", seasonID).
		Int("teamsUpserted", report.TeamsUpserted).
		Int("matchesCreated", report.MatchesCreated).
		Msg("season seed complete")
}
