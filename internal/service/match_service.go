package service

import (
	"context"
	"fmt"

	"github.com/andrwlab/Season2App/internal/league"
	"github.com/andrwlab/Season2App/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MatchService struct {
	db      *sqlx.DB
	matches *store.MatchStore
	rosters *store.RosterStore
}

func NewMatchService(db *sqlx.DB, matches *store.MatchStore, rosters *store.RosterStore) *MatchService {
	return &MatchService{db: db, matches: matches, rosters: rosters}
}

type MatchData struct {
	Match    *league.Match       `json:"match"`
	HomeTeam *league.Team        `json:"homeTeam,omitempty"`
	AwayTeam *league.Team        `json:"awayTeam,omitempty"`
	Stats    []league.PlayerStat `json:"stats"`
}

func (s *MatchService) GetMatchViewData(ctx context.Context, matchID string) (*MatchData, error) {
	match, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	data := &MatchData{Match: match}

	// Team lookups may fail for half-imported data; the view falls
	// back to raw ids in that case.
	if team, err := s.matches.GetTeam(ctx, match.HomeTeamID); err == nil {
		data.HomeTeam = team
	}
	if team, err := s.matches.GetTeam(ctx, match.AwayTeamID); err == nil {
		data.AwayTeam = team
	}

	stats, err := s.matches.ListStatsByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match stats: %w", err)
	}
	data.Stats = stats

	return data, nil
}

// SubmitResult records a final score and the per-player stat lines for
// a match. Any previously recorded rows for the match are deleted and
// replaced inside the same transaction, so re-submitting a result is an
// overwrite, never an accumulation.
func (s *MatchService) SubmitResult(ctx context.Context, matchID uuid.UUID, doc league.ResultDoc) error {
	match, err := s.matches.GetMatch(ctx, matchID.String())
	if err != nil {
		return err
	}
	if match.Status == league.MatchCanceled {
		return fmt.Errorf("match %s is canceled", matchID)
	}

	players, err := s.rosters.ListPlayers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	knownIDs := make(map[string]struct{}, len(players))
	idByNameKey := make(map[string]string, len(players))
	for _, p := range players {
		knownIDs[p.ID] = struct{}{}
		idByNameKey[league.NameKey(p.FullName)] = p.ID
	}

	result, err := league.NormalizeResult(doc, knownIDs, idByNameKey)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	match.HomeScore = &result.HomeScore
	match.AwayScore = &result.AwayScore
	match.Status = league.MatchCompleted
	if err := s.matches.UpdateResultTx(ctx, tx, match); err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}

	if err := s.matches.DeleteStatsForMatchTx(ctx, tx, matchID.String()); err != nil {
		return fmt.Errorf("failed to clear stats: %w", err)
	}

	rows := make([]league.PlayerStat, 0, len(result.Lines))
	for playerID, line := range result.Lines {
		rows = append(rows, league.PlayerStat{
			ID:       uuid.New(),
			SeasonID: match.SeasonID,
			MatchID:  match.ID,
			PlayerID: playerID,
			Attack:   line.Attack,
			Blocks:   line.Blocks,
			Assists:  line.Assists,
			Service:  line.Service,
		})
	}
	if err := s.matches.InsertStatsTx(ctx, tx, rows); err != nil {
		return fmt.Errorf("failed to insert stats: %w", err)
	}

	return tx.Commit()
}

// DeleteMatch removes a match and cascades to its stat rows.
func (s *MatchService) DeleteMatch(ctx context.Context, matchID uuid.UUID) error {
	if _, err := s.matches.GetMatch(ctx, matchID.String()); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.matches.DeleteMatchTx(ctx, tx, matchID.String()); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	return tx.Commit()
}
