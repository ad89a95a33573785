package service

import (
	"context"
	"testing"

	"github.com/andrwlab/Season2App/internal/db"
	"github.com/andrwlab/Season2App/internal/league"
	"github.com/andrwlab/Season2App/internal/store"
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

type fixture struct {
	db      *sqlx.DB
	seasons *store.SeasonStore
	matches *store.MatchStore
	rosters *store.RosterStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := setupTestDB(t)
	t.Cleanup(func() { database.Close() })
	return &fixture{
		db:      database,
		seasons: store.NewSeasonStore(database),
		matches: store.NewMatchStore(database),
		rosters: store.NewRosterStore(database),
	}
}

func (f *fixture) season(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.seasons.UpsertSeason(context.Background(), &league.Season{
		ID: id, Name: "Season " + id, StartDate: "2026-01-30", IsActive: true, DataSource: league.SourceLive,
	}))
}

func (f *fixture) team(t *testing.T, seasonID, teamID string) {
	t.Helper()
	require.NoError(t, f.matches.UpsertTeam(context.Background(), &league.Team{
		ID: teamID, SeasonID: seasonID, Name: "Team " + teamID, Slug: teamID,
	}))
}

func (f *fixture) player(t *testing.T, id, fullName string) {
	t.Helper()
	require.NoError(t, f.rosters.CreatePlayer(context.Background(), &league.Player{
		ID: id, FullName: fullName, NameKey: league.NameKey(fullName), Type: league.DetectPlayerType(fullName),
	}))
}

func (f *fixture) roster(t *testing.T, seasonID, teamID string, playerIDs ...string) {
	t.Helper()
	tx, err := f.db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, f.rosters.UpsertRosterTx(context.Background(), tx, &league.Roster{
		ID: league.RosterID(seasonID, teamID), SeasonID: seasonID, TeamID: teamID, PlayerIDs: playerIDs,
	}))
	require.NoError(t, tx.Commit())
}

func (f *fixture) match(t *testing.T, seasonID, home, away string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	created, err := f.matches.CreateMatch(context.Background(), &league.Match{
		ID: id, SeasonID: seasonID, DateISO: "2026-02-06",
		HomeTeamID: home, AwayTeamID: away, Status: league.MatchScheduled,
	})
	require.NoError(t, err)
	require.True(t, created)
	return id
}

func intPtr(v int) *int { return &v }
