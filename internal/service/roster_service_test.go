package service

import (
	"context"
	"testing"

	"github.com/andrwlab/Season2App/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovePlayerBetweenRosters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.season(t, "s2")
	f.team(t, "s2", "red")
	f.team(t, "s2", "blue")
	f.player(t, "p9", "Lucas Wu")
	f.player(t, "p1", "Mr. Hall")
	f.player(t, "p2", "Anny Deng")
	f.roster(t, "s2", "red", "p9", "p1")
	f.roster(t, "s2", "blue", "p2")

	svc := NewRosterService(f.db, f.rosters, f.matches)
	require.NoError(t, svc.MovePlayer(ctx, "s2", "p9", "red", "blue", "midseason trade"))

	from, err := f.rosters.GetRoster(ctx, league.RosterID("s2", "red"))
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, from.PlayerIDs)

	to, err := f.rosters.GetRoster(ctx, league.RosterID("s2", "blue"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p2", "p9"}, to.PlayerIDs)

	trades, err := f.rosters.ListTrades(ctx, "s2")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "p9", trades[0].PlayerID)
	assert.Equal(t, "red", trades[0].FromTeamID)
	assert.Equal(t, "blue", trades[0].ToTeamID)
	assert.Equal(t, "midseason trade", trades[0].Note)
}

func TestMovePlayerCreatesMissingDestinationRoster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.season(t, "s2")
	f.team(t, "s2", "red")
	f.team(t, "s2", "blue")
	f.player(t, "p9", "Lucas Wu")
	f.roster(t, "s2", "red", "p9")

	svc := NewRosterService(f.db, f.rosters, f.matches)
	require.NoError(t, svc.MovePlayer(ctx, "s2", "p9", "red", "blue", ""))

	to, err := f.rosters.GetRoster(ctx, league.RosterID("s2", "blue"))
	require.NoError(t, err)
	assert.Equal(t, []string{"p9"}, to.PlayerIDs)
}

func TestMovePlayerSameTeam(t *testing.T) {
	f := newFixture(t)
	svc := NewRosterService(f.db, f.rosters, f.matches)

	err := svc.MovePlayer(context.Background(), "s2", "p9", "red", "red", "")
	assert.ErrorIs(t, err, ErrSameTeam)

	err = svc.MovePlayer(context.Background(), "s2", "p9", "red", "", "")
	assert.ErrorIs(t, err, ErrSameTeam)
}

func TestMovePlayerRequiresSeason(t *testing.T) {
	f := newFixture(t)
	svc := NewRosterService(f.db, f.rosters, f.matches)

	err := svc.MovePlayer(context.Background(), "", "p9", "red", "blue", "")
	assert.Error(t, err)
}

func TestFindAndMergeDuplicatePlayers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.season(t, "s2")
	f.team(t, "s2", "red")
	f.team(t, "s2", "blue")
	f.player(t, "hall-1", "Mr. Hall")
	f.player(t, "hall-2", "Mr. Hall 8A")
	f.player(t, "p3", "Anny Deng")
	f.roster(t, "s2", "red", "hall-1")
	f.roster(t, "s2", "blue", "hall-2")
	matchID := f.match(t, "s2", "red", "blue")

	matchSvc := NewMatchService(f.db, f.matches, f.rosters)
	require.NoError(t, matchSvc.SubmitResult(ctx, matchID, league.ResultDoc{
		ScoreA: intPtr(25), ScoreB: intPtr(20),
		Stats: map[string]league.StatDoc{"hall-2": {Service: intPtr(2)}},
	}))

	svc := NewRosterService(f.db, f.rosters, f.matches)
	groups, err := svc.FindDuplicatePlayers(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "mr. hall", groups[0].NameKey)
	assert.Equal(t, "hall-1", groups[0].Survivor.ID)
	require.Len(t, groups[0].Removed, 1)
	assert.Equal(t, "hall-2", groups[0].Removed[0].ID)

	require.NoError(t, svc.MergeDuplicates(ctx, groups))

	_, err = f.rosters.GetPlayer(ctx, "hall-2")
	assert.Error(t, err)

	rows, err := f.matches.ListStatsByPlayer(ctx, "hall-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Service)

	blue, err := f.rosters.GetRoster(ctx, league.RosterID("s2", "blue"))
	require.NoError(t, err)
	assert.Equal(t, []string{"hall-1"}, blue.PlayerIDs)
}

func TestFindDuplicatePlayersNoneFound(t *testing.T) {
	f := newFixture(t)

	f.player(t, "p1", "Lucas Wu")
	f.player(t, "p2", "Mr. Hall")

	svc := NewRosterService(f.db, f.rosters, f.matches)
	groups, err := svc.FindDuplicatePlayers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
}
