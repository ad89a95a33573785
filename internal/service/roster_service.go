package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andrwlab/Season2App/internal/league"
	"github.com/andrwlab/Season2App/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type RosterService struct {
	db      *sqlx.DB
	rosters *store.RosterStore
	matches *store.MatchStore
}

func NewRosterService(db *sqlx.DB, rosters *store.RosterStore, matches *store.MatchStore) *RosterService {
	return &RosterService{db: db, rosters: rosters, matches: matches}
}

var ErrSameTeam = errors.New("player is already on the destination team")

// MovePlayer removes the player from the source roster, adds them to
// the destination roster and appends one trade audit record, all in a
// single transaction. Rosters that do not exist yet are created empty.
func (s *RosterService) MovePlayer(ctx context.Context, seasonID, playerID, fromTeamID, toTeamID, note string) error {
	if seasonID == "" {
		return errors.New("no season selected")
	}
	if toTeamID == "" || toTeamID == fromTeamID {
		return ErrSameTeam
	}

	from, err := s.loadOrEmptyRoster(ctx, seasonID, fromTeamID)
	if err != nil {
		return err
	}
	to, err := s.loadOrEmptyRoster(ctx, seasonID, toTeamID)
	if err != nil {
		return err
	}

	nextFrom := make([]string, 0, len(from.PlayerIDs))
	for _, id := range from.PlayerIDs {
		if id != playerID {
			nextFrom = append(nextFrom, id)
		}
	}
	from.PlayerIDs = nextFrom
	if !to.Contains(playerID) {
		to.PlayerIDs = append(to.PlayerIDs, playerID)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.rosters.UpsertRosterTx(ctx, tx, from); err != nil {
		return fmt.Errorf("failed to update source roster: %w", err)
	}
	if err := s.rosters.UpsertRosterTx(ctx, tx, to); err != nil {
		return fmt.Errorf("failed to update destination roster: %w", err)
	}
	if err := s.rosters.InsertTradeTx(ctx, tx, &league.Trade{
		ID:         uuid.New(),
		SeasonID:   seasonID,
		PlayerID:   playerID,
		FromTeamID: fromTeamID,
		ToTeamID:   toTeamID,
		Note:       note,
	}); err != nil {
		return fmt.Errorf("failed to record trade: %w", err)
	}

	return tx.Commit()
}

func (s *RosterService) loadOrEmptyRoster(ctx context.Context, seasonID, teamID string) (*league.Roster, error) {
	roster, err := s.rosters.GetRoster(ctx, league.RosterID(seasonID, teamID))
	if err == nil {
		return roster, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &league.Roster{
			ID:       league.RosterID(seasonID, teamID),
			SeasonID: seasonID,
			TeamID:   teamID,
		}, nil
	}
	return nil, err
}

// MergeGroup reports one set of players that share a normalized name.
type MergeGroup struct {
	NameKey  string
	Survivor league.Player
	Removed  []league.Player
}

// FindDuplicatePlayers groups players by normalized name key and picks
// a survivor per group: the first record with a non-empty full name,
// else the first record.
func (s *RosterService) FindDuplicatePlayers(ctx context.Context) ([]MergeGroup, error) {
	players, err := s.rosters.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	order := make([]string, 0)
	grouped := make(map[string][]league.Player)
	for _, p := range players {
		key := league.NameKey(p.FullName)
		if key == "" {
			continue
		}
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], p)
	}

	var groups []MergeGroup
	for _, key := range order {
		list := grouped[key]
		if len(list) < 2 {
			continue
		}
		survivor := list[0]
		for _, p := range list {
			if p.FullName != "" {
				survivor = p
				break
			}
		}
		group := MergeGroup{NameKey: key, Survivor: survivor}
		for _, p := range list {
			if p.ID != survivor.ID {
				group.Removed = append(group.Removed, p)
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// MergeDuplicates rewrites roster, stat and trade references from each
// removed player to the group survivor and deletes the duplicates. One
// transaction per group so a failure leaves earlier groups merged.
func (s *RosterService) MergeDuplicates(ctx context.Context, groups []MergeGroup) error {
	for _, group := range groups {
		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		if err := s.mergeGroupTx(ctx, tx, group); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to merge %q: %w", group.NameKey, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

func (s *RosterService) mergeGroupTx(ctx context.Context, tx *sqlx.Tx, group MergeGroup) error {
	for _, dup := range group.Removed {
		if err := s.rosters.RewritePlayerRefsTx(ctx, tx, dup.ID, group.Survivor.ID); err != nil {
			return err
		}
		if err := s.rosters.DeletePlayerTx(ctx, tx, dup.ID); err != nil {
			return err
		}
	}
	return nil
}
