// Command rostersync replaces a season's rosters from a file mapping
// team ids to player display names, creating missing player records
// along the way. Accepts a JSON object ({"team-id": ["Name", ...]})
// or CSV-like lines ("team-id,Player Name").
package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"
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

	seasonID := os.Getenv("SEASON_ID")
	if seasonID == "" {
		seasonID = "s2"
	}
	inputFile := os.Getenv("ROSTER_FILE")
	if inputFile == "" {
		log.Fatal().Msg("ROSTER_FILE env var is required")
	}
	prune := strings.ToLower(os.Getenv("PRUNE_STATS")) != "false"

	input, err := loadRosterFile(inputFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", inputFile).Msg("failed to load roster file")
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

	report, err := importer.SyncRosters(context.Background(), seasonID, input, prune)
	if err != nil {
		log.Fatal().Err(err).Msg("roster sync failed")
	}

	log.Info().
		Str("season", seasonID).
		Int("playersCreated", report.PlayersCreated).
		Int("rostersUpserted", report.RostersUpserted).
		Int("statsPruned", report.StatsPruned).
		Msg("roster sync complete")
}

func loadRosterFile(path string) (map[string][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		out := map[string][]string{}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	out := map[string][]string{}
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		team, player, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		team = strings.TrimSpace(team)
		player = strings.TrimSpace(player)
		if team == "" || player == "" {
			continue
		}
		out[team] = append(out[team], player)
	}
	return out, nil
}
