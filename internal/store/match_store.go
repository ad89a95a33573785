package store

import (
	"context"

	"github.com/andrwlab/Season2App/internal/league"
	"github.com/jmoiron/sqlx"
)

type MatchStore struct {
	db *sqlx.DB
}

const (
	listTeamsQuery   = "SELECT * FROM teams WHERE season_id = ? ORDER BY name ASC"
	getTeamQuery     = "SELECT * FROM teams WHERE id = ?"
	listMatchesQuery = "SELECT * FROM matches WHERE season_id = ? ORDER BY date_iso ASC, time_hhmm ASC"
	getMatchQuery    = "SELECT * FROM matches WHERE id = ?"

	upsertTeamQuery = `
		INSERT INTO teams (id, season_id, name, slug, logo_file, updated_at)
		VALUES (:id, :season_id, :name, :slug, :logo_file, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			season_id = excluded.season_id,
			name = excluded.name,
			slug = excluded.slug,
			logo_file = excluded.logo_file,
			updated_at = CURRENT_TIMESTAMP
	`
	// Re-seeding must not clobber results already recorded for a
	// match, hence DO NOTHING instead of an upsert.
	insertMatchQuery = `
		INSERT INTO matches (id, season_id, date_iso, time_hhmm, home_team_id, away_team_id, status, home_score, away_score)
		VALUES (:id, :season_id, :date_iso, :time_hhmm, :home_team_id, :away_team_id, :status, :home_score, :away_score)
		ON CONFLICT(id) DO NOTHING
	`
	updateResultQuery = `
		UPDATE matches SET
			home_score = :home_score,
			away_score = :away_score,
			status = :status,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = :id
	`
	insertStatQuery = `
		INSERT INTO player_stats (id, season_id, match_id, player_id, attack, blocks, assists, service)
		VALUES (:id, :season_id, :match_id, :player_id, :attack, :blocks, :assists, :service)
	`
)

func NewMatchStore(db *sqlx.DB) *MatchStore {
	return &MatchStore{db: db}
}

func (s *MatchStore) ListTeams(ctx context.Context, seasonID string) ([]league.Team, error) {
	var teams []league.Team
	err := s.db.SelectContext(ctx, &teams, listTeamsQuery, seasonID)
	return teams, err
}

func (s *MatchStore) GetTeam(ctx context.Context, id string) (*league.Team, error) {
	var team league.Team
	if err := s.db.GetContext(ctx, &team, getTeamQuery, id); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *MatchStore) UpsertTeam(ctx context.Context, team *league.Team) error {
	_, err := s.db.NamedExecContext(ctx, upsertTeamQuery, team)
	return err
}

func (s *MatchStore) ListMatches(ctx context.Context, seasonID string) ([]league.Match, error) {
	var matches []league.Match
	err := s.db.SelectContext(ctx, &matches, listMatchesQuery, seasonID)
	return matches, err
}

func (s *MatchStore) GetMatch(ctx context.Context, id string) (*league.Match, error) {
	var match league.Match
	if err := s.db.GetContext(ctx, &match, getMatchQuery, id); err != nil {
		return nil, err
	}
	return &match, nil
}

// CreateMatch inserts a schedule entry, reporting whether a row was
// actually created (false when the match already existed).
func (s *MatchStore) CreateMatch(ctx context.Context, match *league.Match) (bool, error) {
	res, err := s.db.NamedExecContext(ctx, insertMatchQuery, match)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *MatchStore) UpdateResultTx(ctx context.Context, tx *sqlx.Tx, match *league.Match) error {
	_, err := tx.NamedExecContext(ctx, updateResultQuery, match)
	return err
}

// DeleteStatsForMatchTx clears every stat row recorded for the match;
// result re-submission replaces rows wholesale.
func (s *MatchStore) DeleteStatsForMatchTx(ctx context.Context, tx *sqlx.Tx, matchID string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM player_stats WHERE match_id = ?", matchID)
	return err
}

func (s *MatchStore) InsertStatsTx(ctx context.Context, tx *sqlx.Tx, rows []league.PlayerStat) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, insertStatQuery, rows)
	return err
}

func (s *MatchStore) DeleteMatchTx(ctx context.Context, tx *sqlx.Tx, matchID string) error {
	if err := s.DeleteStatsForMatchTx(ctx, tx, matchID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, "DELETE FROM matches WHERE id = ?", matchID)
	return err
}

func (s *MatchStore) ListStatsBySeason(ctx context.Context, seasonID string) ([]league.PlayerStat, error) {
	var rows []league.PlayerStat
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM player_stats WHERE season_id = ?", seasonID)
	return rows, err
}

func (s *MatchStore) ListStatsByMatch(ctx context.Context, matchID string) ([]league.PlayerStat, error) {
	var rows []league.PlayerStat
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM player_stats WHERE match_id = ?", matchID)
	return rows, err
}

func (s *MatchStore) ListStatsByPlayer(ctx context.Context, playerID string) ([]league.PlayerStat, error) {
	var rows []league.PlayerStat
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM player_stats WHERE player_id = ?", playerID)
	return rows, err
}

// DeleteStatsByIDsTx removes an explicit batch of stat rows; the
// roster sync tool uses it to prune stats of de-rostered players.
func (s *MatchStore) DeleteStatsByIDsTx(ctx context.Context, tx *sqlx.Tx, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM player_stats WHERE id IN (?)", ids)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(query), args...)
	return err
}

// ListAllStats feeds the cumulative all-seasons views.
func (s *MatchStore) ListAllStats(ctx context.Context) ([]league.PlayerStat, error) {
	var rows []league.PlayerStat
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM player_stats")
	return rows, err
}
