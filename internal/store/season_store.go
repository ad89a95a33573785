package store

import (
	"context"

	"github.com/andrwlab/Season2App/internal/league"
	"github.com/jmoiron/sqlx"
)

type SeasonStore struct {
	db *sqlx.DB
}

const (
	listSeasonsQuery = "SELECT * FROM seasons ORDER BY start_date ASC"
	getSeasonQuery   = "SELECT * FROM seasons WHERE id = ?"
	upsertSeasonQuery = `
		INSERT INTO seasons (id, name, start_date, is_active, data_source, updated_at)
		VALUES (:id, :name, :start_date, :is_active, :data_source, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			start_date = excluded.start_date,
			is_active = excluded.is_active,
			data_source = excluded.data_source,
			updated_at = CURRENT_TIMESTAMP
	`
)

func NewSeasonStore(db *sqlx.DB) *SeasonStore {
	return &SeasonStore{db: db}
}

func (s *SeasonStore) ListSeasons(ctx context.Context) ([]league.Season, error) {
	var seasons []league.Season
	err := s.db.SelectContext(ctx, &seasons, listSeasonsQuery)
	return seasons, err
}

func (s *SeasonStore) GetSeason(ctx context.Context, id string) (*league.Season, error) {
	var season league.Season
	if err := s.db.GetContext(ctx, &season, getSeasonQuery, id); err != nil {
		return nil, err
	}
	return &season, nil
}

func (s *SeasonStore) UpsertSeason(ctx context.Context, season *league.Season) error {
	_, err := s.db.NamedExecContext(ctx, upsertSeasonQuery, season)
	return err
}

func (s *SeasonStore) ListMatchDates(ctx context.Context, seasonID string) ([]league.MatchDate, error) {
	var dates []league.MatchDate
	err := s.db.SelectContext(ctx, &dates,
		"SELECT * FROM match_dates WHERE season_id = ? ORDER BY date_iso ASC", seasonID)
	return dates, err
}

func (s *SeasonStore) UpsertMatchDate(ctx context.Context, date *league.MatchDate) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO match_dates (id, season_id, date_iso, label)
		VALUES (:id, :season_id, :date_iso, :label)
		ON CONFLICT(id) DO UPDATE SET date_iso = excluded.date_iso, label = excluded.label`, date)
	return err
}
