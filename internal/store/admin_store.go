package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// AdminStore backs the one-off migration tools. Collection names are
// whitelisted so the tools can never be pointed at arbitrary tables.
type AdminStore struct {
	db *sqlx.DB
}

func NewAdminStore(db *sqlx.DB) *AdminStore {
	return &AdminStore{db: db}
}

var taggable = map[string]struct{}{
	"teams":        {},
	"matches":      {},
	"rosters":      {},
	"player_stats": {},
}

// StampSeasonID sets season_id on up to limit rows of the collection
// that have none, returning the number of rows updated. Callers loop
// until it reports zero.
func (s *AdminStore) StampSeasonID(ctx context.Context, collection, seasonID string, limit int) (int64, error) {
	if _, ok := taggable[collection]; !ok {
		return 0, fmt.Errorf("collection %q cannot be season-tagged", collection)
	}
	query := fmt.Sprintf(`
		UPDATE %s SET season_id = ?
		WHERE rowid IN (
			SELECT rowid FROM %s WHERE season_id IS NULL OR season_id = '' LIMIT ?
		)`, collection, collection)
	res, err := s.db.ExecContext(ctx, query, seasonID, limit)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
