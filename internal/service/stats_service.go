package service

import (
	"context"
	"sort"

	"github.com/andrwlab/Season2App/internal/league"
	"github.com/andrwlab/Season2App/internal/stats"
	"github.com/andrwlab/Season2App/internal/store"
)

// StatsService feeds the read-only pages: it fetches collection
// snapshots and hands them to the pure aggregation functions. A nil or
// empty season id yields empty payloads instead of an error so pages
// render cleanly before any season exists.
type StatsService struct {
	matches *store.MatchStore
	rosters *store.RosterStore
}

func NewStatsService(matches *store.MatchStore, rosters *store.RosterStore) *StatsService {
	return &StatsService{matches: matches, rosters: rosters}
}

type StandingRow struct {
	stats.TeamStanding
	TeamName string `json:"teamName"`
}

func (s *StatsService) GetStandings(ctx context.Context, seasonID string) ([]StandingRow, error) {
	if seasonID == "" {
		return []StandingRow{}, nil
	}
	teams, err := s.matches.ListTeams(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	matches, err := s.matches.ListMatches(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	seed := make([]string, 0, len(teams))
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		seed = append(seed, t.ID)
		names[t.ID] = t.Name
	}

	table := stats.ComputeStandings(matches, seed)
	rows := make([]StandingRow, 0, len(table))
	for _, entry := range table {
		name, ok := names[entry.TeamID]
		if !ok {
			name = entry.TeamID
		}
		rows = append(rows, StandingRow{TeamStanding: entry, TeamName: name})
	}
	return rows, nil
}

type PlayerTotalsRow struct {
	PlayerID string            `json:"playerId"`
	Name     string            `json:"name"`
	Type     league.PlayerType `json:"type,omitempty"`
	TeamID   string            `json:"teamId,omitempty"`
	TeamName string            `json:"teamName,omitempty"`
	Line     league.StatLine   `json:"line"`
	Total    int               `json:"total"`
}

func (s *StatsService) GetPlayerTotals(ctx context.Context, seasonID string) ([]PlayerTotalsRow, error) {
	if seasonID == "" {
		return []PlayerTotalsRow{}, nil
	}
	rows, err := s.matches.ListStatsBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	rosters, err := s.rosters.ListRosters(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return s.buildPlayerRows(ctx, stats.AggregatePlayerStats(rows), rosters, seasonID)
}

// GetCumulativeTotals aggregates every stat row across all seasons,
// the backfilled legacy season included.
func (s *StatsService) GetCumulativeTotals(ctx context.Context) ([]PlayerTotalsRow, error) {
	rows, err := s.matches.ListAllStats(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildPlayerRows(ctx, stats.AggregatePlayerStats(rows), nil, "")
}

func (s *StatsService) buildPlayerRows(ctx context.Context, totals map[string]league.StatLine, rosters []league.Roster, seasonID string) ([]PlayerTotalsRow, error) {
	players, err := s.rosters.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]league.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	var teamIndex map[string]string
	teamNames := map[string]string{}
	if rosters != nil {
		teamIndex = stats.PlayerTeamIndex(rosters)
		if teams, err := s.matches.ListTeams(ctx, seasonID); err == nil {
			for _, t := range teams {
				teamNames[t.ID] = t.Name
			}
		}
	}

	out := make([]PlayerTotalsRow, 0, len(totals))
	for playerID, line := range totals {
		row := PlayerTotalsRow{
			PlayerID: playerID,
			Name:     playerID, // raw id fallback when the lookup is incomplete
			Line:     line,
			Total:    line.Total(),
		}
		if p, ok := byID[playerID]; ok {
			row.Name = p.FullName
			row.Type = p.Type
		}
		if teamIndex != nil {
			if teamID, ok := teamIndex[playerID]; ok {
				row.TeamID = teamID
				row.TeamName = teamNames[teamID]
				if row.TeamName == "" {
					row.TeamName = teamID
				}
			}
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

type TeamTotalsRow struct {
	TeamID   string          `json:"teamId"`
	TeamName string          `json:"teamName"`
	Line     league.StatLine `json:"line"`
}

func (s *StatsService) GetTeamTotals(ctx context.Context, seasonID string) ([]TeamTotalsRow, error) {
	if seasonID == "" {
		return []TeamTotalsRow{}, nil
	}
	statRows, err := s.matches.ListStatsBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	rosters, err := s.rosters.ListRosters(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	totals := stats.AggregateTeamStats(stats.AggregatePlayerStats(statRows), rosters)

	names := map[string]string{}
	if teams, err := s.matches.ListTeams(ctx, seasonID); err == nil {
		for _, t := range teams {
			names[t.ID] = t.Name
		}
	}

	out := make([]TeamTotalsRow, 0, len(totals))
	for teamID, line := range totals {
		name, ok := names[teamID]
		if !ok {
			name = teamID
		}
		out = append(out, TeamTotalsRow{TeamID: teamID, TeamName: name, Line: line})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line.Total() != out[j].Line.Total() {
			return out[i].Line.Total() > out[j].Line.Total()
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

// LeaderCategories are the tracked award races, in display order.
var LeaderCategories = []string{"attack", "blocks", "assists", "service"}

type LeaderRow struct {
	Category string `json:"category"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Value    int    `json:"value"`
}

func (s *StatsService) GetLeaders(ctx context.Context, seasonID string) ([]LeaderRow, error) {
	if seasonID == "" {
		return []LeaderRow{}, nil
	}
	statRows, err := s.matches.ListStatsBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	players, err := s.rosters.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]league.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	totals := stats.AggregatePlayerStats(statRows)
	out := make([]LeaderRow, 0, len(LeaderCategories))
	for _, category := range LeaderCategories {
		leader := stats.Leader(totals, category)
		if leader == nil {
			continue
		}
		name := leader.PlayerID
		if p, ok := byID[leader.PlayerID]; ok {
			name = p.FullName
		}
		out = append(out, LeaderRow{
			Category: category,
			PlayerID: leader.PlayerID,
			Name:     name,
			Value:    leader.Line.Value(category),
		})
	}
	return out, nil
}
