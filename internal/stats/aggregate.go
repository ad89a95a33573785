// Package stats holds the pure aggregation engine: synchronous
// transformations from collection snapshots to display-ready
// aggregates. Nothing here performs I/O or mutates its inputs, and a
// partially-loaded world (stats without players, players without
// rosters) degrades to zero values and raw ids instead of erroring.
package stats

import (
	"sort"
	"time"

	"github.com/andrwlab/Season2App/internal/league"
)

// AggregatePlayerStats sums every stat row per player. Calling it
// twice on the same input yields the same output.
func AggregatePlayerStats(rows []league.PlayerStat) map[string]league.StatLine {
	totals := make(map[string]league.StatLine)
	for _, row := range rows {
		line := totals[row.PlayerID]
		line.Add(league.StatLine{
			Attack:  row.Attack,
			Blocks:  row.Blocks,
			Assists: row.Assists,
			Service: row.Service,
		})
		totals[row.PlayerID] = line
	}
	return totals
}

// PlayerTeamIndex maps each player to their roster team for the
// season. When a player somehow appears on two rosters the first
// roster in slice order wins, matching the reduce the views used.
func PlayerTeamIndex(rosters []league.Roster) map[string]string {
	index := make(map[string]string)
	for _, r := range rosters {
		for _, playerID := range r.PlayerIDs {
			if _, ok := index[playerID]; !ok {
				index[playerID] = r.TeamID
			}
		}
	}
	return index
}

// AggregateTeamStats folds per-player totals into per-team totals via
// roster membership. A player on no roster contributes to no team.
func AggregateTeamStats(playerTotals map[string]league.StatLine, rosters []league.Roster) map[string]league.StatLine {
	index := PlayerTeamIndex(rosters)
	totals := make(map[string]league.StatLine)
	for playerID, line := range playerTotals {
		teamID, ok := index[playerID]
		if !ok {
			continue
		}
		team := totals[teamID]
		team.Add(line)
		totals[teamID] = team
	}
	return totals
}

type LeaderEntry struct {
	PlayerID string          `json:"playerId"`
	Line     league.StatLine `json:"line"`
}

// Leader returns the player holding the maximum value for one stat
// category, or nil when there is no data at all. Ties break
// lexicographically by player id so the answer is stable across runs.
func Leader(playerTotals map[string]league.StatLine, key string) *LeaderEntry {
	var best *LeaderEntry
	for playerID, line := range playerTotals {
		if best == nil ||
			line.Value(key) > best.Line.Value(key) ||
			(line.Value(key) == best.Line.Value(key) && playerID < best.PlayerID) {
			best = &LeaderEntry{PlayerID: playerID, Line: line}
		}
	}
	return best
}

// TopTeam mirrors Leader for team totals.
func TopTeam(teamTotals map[string]league.StatLine, key string) (string, league.StatLine, bool) {
	var (
		bestID   string
		bestLine league.StatLine
		found    bool
	)
	for teamID, line := range teamTotals {
		if !found ||
			line.Value(key) > bestLine.Value(key) ||
			(line.Value(key) == bestLine.Value(key) && teamID < bestID) {
			bestID, bestLine, found = teamID, line, true
		}
	}
	return bestID, bestLine, found
}

// UpcomingMatches filters to matches starting after now and returns
// the soonest first, at most limit entries (0 means no cap).
func UpcomingMatches(matches []league.Match, now time.Time, limit int) []league.Match {
	var upcoming []league.Match
	for _, m := range matches {
		if start := m.StartsAt(); !start.IsZero() && start.After(now) {
			upcoming = append(upcoming, m)
		}
	}
	upcoming = SortedByStart(upcoming)
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// SortedByStart orders matches chronologically; undated matches sink
// to the end.
func SortedByStart(matches []league.Match) []league.Match {
	out := make([]league.Match, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].StartsAt(), out[j].StartsAt()
		if ti.IsZero() {
			return false
		}
		if tj.IsZero() {
			return true
		}
		return ti.Before(tj)
	})
	return out
}
