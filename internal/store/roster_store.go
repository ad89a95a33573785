package store

import (
	"context"

	"github.com/andrwlab/Season2App/internal/league"
	"github.com/jmoiron/sqlx"
)

type RosterStore struct {
	db *sqlx.DB
}

const (
	listPlayersQuery = "SELECT * FROM players ORDER BY full_name ASC"
	getPlayerQuery   = "SELECT * FROM players WHERE id = ?"

	insertPlayerQuery = `
		INSERT INTO players (id, full_name, name_key, type, photo_url)
		VALUES (:id, :full_name, :name_key, :type, :photo_url)
	`
	upsertRosterQuery = `
		INSERT INTO rosters (id, season_id, team_id, updated_at)
		VALUES (:id, :season_id, :team_id, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET updated_at = CURRENT_TIMESTAMP
	`
	insertTradeQuery = `
		INSERT INTO trades (id, season_id, player_id, from_team_id, to_team_id, note)
		VALUES (:id, :season_id, :player_id, :from_team_id, :to_team_id, :note)
	`
)

func NewRosterStore(db *sqlx.DB) *RosterStore {
	return &RosterStore{db: db}
}

func (s *RosterStore) ListPlayers(ctx context.Context) ([]league.Player, error) {
	var players []league.Player
	err := s.db.SelectContext(ctx, &players, listPlayersQuery)
	return players, err
}

func (s *RosterStore) GetPlayer(ctx context.Context, id string) (*league.Player, error) {
	var player league.Player
	if err := s.db.GetContext(ctx, &player, getPlayerQuery, id); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *RosterStore) CreatePlayerTx(ctx context.Context, tx *sqlx.Tx, player *league.Player) error {
	_, err := tx.NamedExecContext(ctx, insertPlayerQuery, player)
	return err
}

func (s *RosterStore) CreatePlayer(ctx context.Context, player *league.Player) error {
	_, err := s.db.NamedExecContext(ctx, insertPlayerQuery, player)
	return err
}

func (s *RosterStore) UpsertPlayer(ctx context.Context, player *league.Player) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO players (id, full_name, name_key, type, photo_url)
		VALUES (:id, :full_name, :name_key, :type, :photo_url)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			name_key = excluded.name_key,
			type = excluded.type,
			updated_at = CURRENT_TIMESTAMP`, player)
	return err
}

func (s *RosterStore) ListRosters(ctx context.Context, seasonID string) ([]league.Roster, error) {
	var rosters []league.Roster
	if err := s.db.SelectContext(ctx, &rosters,
		"SELECT * FROM rosters WHERE season_id = ?", seasonID); err != nil {
		return nil, err
	}
	if len(rosters) == 0 {
		return rosters, nil
	}

	ids := make([]string, 0, len(rosters))
	for _, r := range rosters {
		ids = append(ids, r.ID)
	}
	query, args, err := sqlx.In(
		"SELECT roster_id, player_id FROM roster_players WHERE roster_id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	var members []struct {
		RosterID string `db:"roster_id"`
		PlayerID string `db:"player_id"`
	}
	if err := s.db.SelectContext(ctx, &members, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	byRoster := make(map[string][]string, len(rosters))
	for _, m := range members {
		byRoster[m.RosterID] = append(byRoster[m.RosterID], m.PlayerID)
	}
	for i := range rosters {
		rosters[i].PlayerIDs = byRoster[rosters[i].ID]
	}
	return rosters, nil
}

func (s *RosterStore) GetRoster(ctx context.Context, id string) (*league.Roster, error) {
	var roster league.Roster
	if err := s.db.GetContext(ctx, &roster, "SELECT * FROM rosters WHERE id = ?", id); err != nil {
		return nil, err
	}
	if err := s.db.SelectContext(ctx, &roster.PlayerIDs,
		"SELECT player_id FROM roster_players WHERE roster_id = ?", id); err != nil {
		return nil, err
	}
	return &roster, nil
}

// UpsertRosterTx ensures the roster row exists and replaces its
// membership with roster.PlayerIDs, deduplicated by the join table's
// primary key.
func (s *RosterStore) UpsertRosterTx(ctx context.Context, tx *sqlx.Tx, roster *league.Roster) error {
	if _, err := tx.NamedExecContext(ctx, upsertRosterQuery, roster); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM roster_players WHERE roster_id = ?", roster.ID); err != nil {
		return err
	}
	for _, playerID := range roster.PlayerIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO roster_players (roster_id, player_id) VALUES (?, ?)",
			roster.ID, playerID); err != nil {
			return err
		}
	}
	return nil
}

func (s *RosterStore) InsertTradeTx(ctx context.Context, tx *sqlx.Tx, trade *league.Trade) error {
	_, err := tx.NamedExecContext(ctx, insertTradeQuery, trade)
	return err
}

func (s *RosterStore) ListTrades(ctx context.Context, seasonID string) ([]league.Trade, error) {
	var trades []league.Trade
	err := s.db.SelectContext(ctx, &trades,
		"SELECT * FROM trades WHERE season_id = ? ORDER BY created_at ASC", seasonID)
	return trades, err
}

// RewritePlayerRefsTx repoints every roster membership, stat row and
// trade from one player id to another. Collisions with rows the
// survivor already owns are dropped rather than duplicated.
func (s *RosterStore) RewritePlayerRefsTx(ctx context.Context, tx *sqlx.Tx, fromID, toID string) error {
	if _, err := tx.ExecContext(ctx,
		"UPDATE OR IGNORE roster_players SET player_id = ? WHERE player_id = ?", toID, fromID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM roster_players WHERE player_id = ?", fromID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE OR IGNORE player_stats SET player_id = ? WHERE player_id = ?", toID, fromID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM player_stats WHERE player_id = ?", fromID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx,
		"UPDATE trades SET player_id = ? WHERE player_id = ?", toID, fromID)
	return err
}

func (s *RosterStore) DeletePlayerTx(ctx context.Context, tx *sqlx.Tx, id string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM players WHERE id = ?", id)
	return err
}
