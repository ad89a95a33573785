// Package season tracks which season a visitor is looking at. The
// selection lives in the server-side session under a fixed key and
// survives reloads; non-privileged viewers are pinned to the active
// season on every request so they can never linger on a stale one.
package season

import (
	"context"
	"errors"

	"github.com/alexedwards/scs/v2"
	"github.com/andrwlab/Season2App/internal/league"
	"github.com/andrwlab/Season2App/internal/store"
	users "github.com/andrwlab/Season2App/internal/user"
)

const SessionKey = "seasonId"

var ErrUnknownSeason = errors.New("unknown season id")

type Selector struct {
	sessions *scs.SessionManager
	seasons  *store.SeasonStore
}

func NewSelector(sessions *scs.SessionManager, seasons *store.SeasonStore) *Selector {
	return &Selector{sessions: sessions, seasons: seasons}
}

// Resolve returns the effective season id for this request, or the
// empty string when no seasons exist (dependent queries then no-op).
// Admins keep any valid persisted selection; everyone else is pinned
// to the active season whenever their selection diverges from it.
func (s *Selector) Resolve(ctx context.Context, user *users.User) (string, error) {
	seasons, err := s.seasons.ListSeasons(ctx)
	if err != nil {
		return "", err
	}
	active := league.ActiveSeason(seasons)
	if active == nil {
		return "", nil
	}

	stored := s.sessions.GetString(ctx, SessionKey)

	if !user.IsAdmin() {
		if stored != active.ID {
			s.sessions.Put(ctx, SessionKey, active.ID)
		}
		return active.ID, nil
	}

	if stored != "" && seasonExists(seasons, stored) {
		return stored, nil
	}
	s.sessions.Put(ctx, SessionKey, active.ID)
	return active.ID, nil
}

// Select persists an explicit selection. Idempotent: re-selecting the
// current season is a no-op.
func (s *Selector) Select(ctx context.Context, id string) error {
	seasons, err := s.seasons.ListSeasons(ctx)
	if err != nil {
		return err
	}
	if !seasonExists(seasons, id) {
		return ErrUnknownSeason
	}
	if s.sessions.GetString(ctx, SessionKey) != id {
		s.sessions.Put(ctx, SessionKey, id)
	}
	return nil
}

func seasonExists(seasons []league.Season, id string) bool {
	for _, season := range seasons {
		if season.ID == id {
			return true
		}
	}
	return false
}
