package store

import (
	"context"
	"testing"

	"github.com/andrwlab/Season2App/internal/league"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCreateMatchDoesNotClobberExisting(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	store := NewMatchStore(database)
	ctx := context.Background()

	seedSeason(t, database, "s2")
	seedTeam(t, database, "s2", "red")
	seedTeam(t, database, "s2", "blue")
	matchID := seedMatch(t, database, "s2", "red", "blue")

	// Record a result, then try to re-create the same match id.
	tx, err := database.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.UpdateResultTx(ctx, tx, &league.Match{
		ID: matchID, Status: league.MatchCompleted, HomeScore: intPtr(25), AwayScore: intPtr(20),
	}))
	require.NoError(t, tx.Commit())

	created, err := store.CreateMatch(ctx, &league.Match{
		ID: matchID, SeasonID: "s2", DateISO: "2026-02-06",
		HomeTeamID: "red", AwayTeamID: "blue", Status: league.MatchScheduled,
	})
	require.NoError(t, err)
	assert.False(t, created)

	match, err := store.GetMatch(ctx, matchID.String())
	require.NoError(t, err)
	assert.Equal(t, league.MatchCompleted, match.Status)
	require.True(t, match.HasResult())
	assert.Equal(t, 25, *match.HomeScore)
	assert.Equal(t, 20, *match.AwayScore)
}

func TestInsertAndListStats(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	store := NewMatchStore(database)
	ctx := context.Background()

	seedSeason(t, database, "s2")
	seedTeam(t, database, "s2", "red")
	seedTeam(t, database, "s2", "blue")
	seedPlayer(t, database, "p1", "Lucas Wu")
	seedPlayer(t, database, "p2", "Mr. Hall")
	matchID := seedMatch(t, database, "s2", "red", "blue")

	tx, err := database.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.InsertStatsTx(ctx, tx, []league.PlayerStat{
		{ID: uuid.New(), SeasonID: "s2", MatchID: matchID, PlayerID: "p1", Attack: 5, Blocks: 1},
		{ID: uuid.New(), SeasonID: "s2", MatchID: matchID, PlayerID: "p2", Service: 3},
	}))
	require.NoError(t, tx.Commit())

	bySeason, err := store.ListStatsBySeason(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, bySeason, 2)

	byMatch, err := store.ListStatsByMatch(ctx, matchID.String())
	require.NoError(t, err)
	assert.Len(t, byMatch, 2)

	byPlayer, err := store.ListStatsByPlayer(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, byPlayer, 1)
	assert.Equal(t, 5, byPlayer[0].Attack)
	assert.Equal(t, 1, byPlayer[0].Blocks)
}

func TestInsertStatsRejectsDuplicatePlayerInMatch(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	store := NewMatchStore(database)
	ctx := context.Background()

	seedSeason(t, database, "s2")
	seedTeam(t, database, "s2", "red")
	seedTeam(t, database, "s2", "blue")
	seedPlayer(t, database, "p1", "Lucas Wu")
	matchID := seedMatch(t, database, "s2", "red", "blue")

	tx, err := database.BeginTxx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = store.InsertStatsTx(ctx, tx, []league.PlayerStat{
		{ID: uuid.New(), SeasonID: "s2", MatchID: matchID, PlayerID: "p1", Attack: 5},
		{ID: uuid.New(), SeasonID: "s2", MatchID: matchID, PlayerID: "p1", Attack: 2},
	})
	assert.Error(t, err)
}

func TestDeleteMatchRemovesItsStats(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	store := NewMatchStore(database)
	ctx := context.Background()

	seedSeason(t, database, "s2")
	seedTeam(t, database, "s2", "red")
	seedTeam(t, database, "s2", "blue")
	seedPlayer(t, database, "p1", "Lucas Wu")
	matchID := seedMatch(t, database, "s2", "red", "blue")
	keepID := seedMatch(t, database, "s2", "blue", "red")

	tx, err := database.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.InsertStatsTx(ctx, tx, []league.PlayerStat{
		{ID: uuid.New(), SeasonID: "s2", MatchID: matchID, PlayerID: "p1", Attack: 5},
		{ID: uuid.New(), SeasonID: "s2", MatchID: keepID, PlayerID: "p1", Attack: 2},
	}))
	require.NoError(t, tx.Commit())

	tx, err = database.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.DeleteMatchTx(ctx, tx, matchID.String()))
	require.NoError(t, tx.Commit())

	_, err = store.GetMatch(ctx, matchID.String())
	assert.Error(t, err)

	remaining, err := store.ListStatsBySeason(ctx, "s2")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, keepID, remaining[0].MatchID)
}

func TestDeleteStatsByIDs(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	store := NewMatchStore(database)
	ctx := context.Background()

	seedSeason(t, database, "s2")
	seedTeam(t, database, "s2", "red")
	seedTeam(t, database, "s2", "blue")
	seedPlayer(t, database, "p1", "Lucas Wu")
	seedPlayer(t, database, "p2", "Mr. Hall")
	matchID := seedMatch(t, database, "s2", "red", "blue")

	dropID := uuid.New()
	tx, err := database.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.InsertStatsTx(ctx, tx, []league.PlayerStat{
		{ID: dropID, SeasonID: "s2", MatchID: matchID, PlayerID: "p1", Attack: 5},
		{ID: uuid.New(), SeasonID: "s2", MatchID: matchID, PlayerID: "p2", Service: 1},
	}))
	require.NoError(t, tx.Commit())

	tx, err = database.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.DeleteStatsByIDsTx(ctx, tx, []string{dropID.String()}))
	require.NoError(t, tx.Commit())

	remaining, err := store.ListAllStats(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "p2", remaining[0].PlayerID)
}

func TestListTeamsScopedToSeason(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	store := NewMatchStore(database)
	ctx := context.Background()

	seedSeason(t, database, "s1")
	seedSeason(t, database, "s2")
	seedTeam(t, database, "s1", "s1_team-blue")
	seedTeam(t, database, "s2", "red")
	seedTeam(t, database, "s2", "blue")

	teams, err := store.ListTeams(ctx, "s2")
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "blue", teams[0].ID)
	assert.Equal(t, "red", teams[1].ID)
}
