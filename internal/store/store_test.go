package store

import (
	"context"
	"testing"

	"github.com/andrwlab/Season2App/internal/db"
	"github.com/andrwlab/Season2App/internal/league"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	require.NoError(t, db.RunMigrations(database.DB), "Failed to apply migrations")

	return database
}

func seedSeason(t *testing.T, database *sqlx.DB, id string) {
	t.Helper()
	err := NewSeasonStore(database).UpsertSeason(context.Background(), &league.Season{
		ID:         id,
		Name:       "Season " + id,
		StartDate:  "2026-01-30",
		IsActive:   true,
		DataSource: league.SourceLive,
	})
	require.NoError(t, err)
}

func seedTeam(t *testing.T, database *sqlx.DB, seasonID, teamID string) {
	t.Helper()
	err := NewMatchStore(database).UpsertTeam(context.Background(), &league.Team{
		ID:       teamID,
		SeasonID: seasonID,
		Name:     teamID,
		Slug:     teamID,
	})
	require.NoError(t, err)
}

func seedPlayer(t *testing.T, database *sqlx.DB, id, fullName string) {
	t.Helper()
	err := NewRosterStore(database).CreatePlayer(context.Background(), &league.Player{
		ID:       id,
		FullName: fullName,
		NameKey:  league.NameKey(fullName),
		Type:     league.DetectPlayerType(fullName),
	})
	require.NoError(t, err)
}

func seedMatch(t *testing.T, database *sqlx.DB, seasonID, home, away string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	created, err := NewMatchStore(database).CreateMatch(context.Background(), &league.Match{
		ID:         id,
		SeasonID:   seasonID,
		DateISO:    "2026-02-06",
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     league.MatchScheduled,
	})
	require.NoError(t, err)
	require.True(t, created)
	return id
}
