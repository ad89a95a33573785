package store

import (
	"context"
	"testing"

	"github.com/andrwlab/Season2App/internal/league"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upsertRoster(t *testing.T, database *sqlx.DB, store *RosterStore, roster *league.Roster) {
	t.Helper()
	tx, err := database.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, store.UpsertRosterTx(context.Background(), tx, roster))
	require.NoError(t, tx.Commit())
}

func TestUpsertRosterReplacesMembership(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	store := NewRosterStore(database)
	ctx := context.Background()

	seedSeason(t, database, "s2")
	seedTeam(t, database, "s2", "red")
	seedPlayer(t, database, "p1", "Lucas Wu")
	seedPlayer(t, database, "p2", "Mr. Hall")
	seedPlayer(t, database, "p3", "Anny Deng")

	roster := &league.Roster{
		ID:       league.RosterID("s2", "red"),
		SeasonID: "s2",
		TeamID:   "red",
		// p1 listed twice; the join table keeps one row.
		PlayerIDs: []string{"p1", "p2", "p1"},
	}
	upsertRoster(t, database, store, roster)

	got, err := store.GetRoster(ctx, roster.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, got.PlayerIDs)

	roster.PlayerIDs = []string{"p3"}
	upsertRoster(t, database, store, roster)

	got, err = store.GetRoster(ctx, roster.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, got.PlayerIDs)
}

func TestListRostersLoadsMembers(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	store := NewRosterStore(database)
	ctx := context.Background()

	seedSeason(t, database, "s2")
	seedTeam(t, database, "s2", "red")
	seedTeam(t, database, "s2", "blue")
	seedPlayer(t, database, "p1", "Lucas Wu")
	seedPlayer(t, database, "p2", "Mr. Hall")

	upsertRoster(t, database, store, &league.Roster{
		ID: league.RosterID("s2", "red"), SeasonID: "s2", TeamID: "red", PlayerIDs: []string{"p1"},
	})
	upsertRoster(t, database, store, &league.Roster{
		ID: league.RosterID("s2", "blue"), SeasonID: "s2", TeamID: "blue", PlayerIDs: []string{"p2"},
	})

	rosters, err := store.ListRosters(ctx, "s2")
	require.NoError(t, err)
	require.Len(t, rosters, 2)

	byTeam := map[string][]string{}
	for _, r := range rosters {
		byTeam[r.TeamID] = r.PlayerIDs
	}
	assert.Equal(t, []string{"p1"}, byTeam["red"])
	assert.Equal(t, []string{"p2"}, byTeam["blue"])
}

func TestRewritePlayerRefs(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	rosters := NewRosterStore(database)
	matches := NewMatchStore(database)
	ctx := context.Background()

	seedSeason(t, database, "s2")
	seedTeam(t, database, "s2", "red")
	seedTeam(t, database, "s2", "blue")
	seedPlayer(t, database, "survivor", "Mr. Hall")
	seedPlayer(t, database, "dup", "Mr.  Hall ")

	// Both records are on the same roster; both have a row in match1,
	// only the duplicate has a row in match2.
	upsertRoster(t, database, rosters, &league.Roster{
		ID: league.RosterID("s2", "red"), SeasonID: "s2", TeamID: "red",
		PlayerIDs: []string{"survivor", "dup"},
	})
	match1 := seedMatch(t, database, "s2", "red", "blue")
	match2 := seedMatch(t, database, "s2", "blue", "red")

	tx, err := database.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, matches.InsertStatsTx(ctx, tx, []league.PlayerStat{
		{ID: uuid.New(), SeasonID: "s2", MatchID: match1, PlayerID: "survivor", Attack: 3},
		{ID: uuid.New(), SeasonID: "s2", MatchID: match1, PlayerID: "dup", Attack: 2},
		{ID: uuid.New(), SeasonID: "s2", MatchID: match2, PlayerID: "dup", Service: 1},
	}))
	require.NoError(t, rosters.InsertTradeTx(ctx, tx, &league.Trade{
		ID: uuid.New(), SeasonID: "s2", PlayerID: "dup", FromTeamID: "red", ToTeamID: "blue",
	}))
	require.NoError(t, tx.Commit())

	tx, err = database.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, rosters.RewritePlayerRefsTx(ctx, tx, "dup", "survivor"))
	require.NoError(t, rosters.DeletePlayerTx(ctx, tx, "dup"))
	require.NoError(t, tx.Commit())

	roster, err := rosters.GetRoster(ctx, league.RosterID("s2", "red"))
	require.NoError(t, err)
	assert.Equal(t, []string{"survivor"}, roster.PlayerIDs)

	// match1's colliding row was dropped, match2's row was repointed.
	rows, err := matches.ListStatsByPlayer(ctx, "survivor")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	trades, err := rosters.ListTrades(ctx, "s2")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "survivor", trades[0].PlayerID)

	_, err = rosters.GetPlayer(ctx, "dup")
	assert.Error(t, err)
}

func TestUpsertPlayerUpdatesNameFields(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	store := NewRosterStore(database)
	ctx := context.Background()

	player := &league.Player{ID: "p1", FullName: "Lucas Wu 8A", NameKey: league.NameKey("Lucas Wu 8A"), Type: league.PlayerStudent}
	require.NoError(t, store.UpsertPlayer(ctx, player))

	player.FullName = "Lucas Wu"
	require.NoError(t, store.UpsertPlayer(ctx, player))

	got, err := store.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Lucas Wu", got.FullName)
	assert.Equal(t, "lucas wu", got.NameKey)
}
