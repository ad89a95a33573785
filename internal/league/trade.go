package league

import (
	"time"

	"github.com/google/uuid"
)

// Trade is an append-only audit record of a player moving between two
// team rosters within a season.
type Trade struct {
	ID         uuid.UUID `db:"id" json:"id"`
	SeasonID   string    `db:"season_id" json:"seasonId"`
	PlayerID   string    `db:"player_id" json:"playerId"`
	FromTeamID string    `db:"from_team_id" json:"fromTeamId"`
	ToTeamID   string    `db:"to_team_id" json:"toTeamId"`
	Note       string    `db:"note" json:"note,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

type MatchDate struct {
	ID       string `db:"id" json:"id"`
	SeasonID string `db:"season_id" json:"seasonId"`
	DateISO  string `db:"date_iso" json:"date"`
	Label    string `db:"label" json:"label"`
}
