package league

import "github.com/google/uuid"

// PlayerStat is one player's line for one match. Rows are replaced
// wholesale when a result is re-submitted.
type PlayerStat struct {
	ID       uuid.UUID `db:"id" json:"id"`
	SeasonID string    `db:"season_id" json:"seasonId"`
	MatchID  uuid.UUID `db:"match_id" json:"matchId"`
	PlayerID string    `db:"player_id" json:"playerId"`
	Attack   int       `db:"attack" json:"attack"`
	Blocks   int       `db:"blocks" json:"blocks"`
	Assists  int       `db:"assists" json:"assists"`
	Service  int       `db:"service" json:"service"`
}

// StatLine holds cumulative counts for one player or team.
type StatLine struct {
	Attack  int `json:"attack"`
	Blocks  int `json:"blocks"`
	Assists int `json:"assists"`
	Service int `json:"service"`
}

func (l StatLine) Total() int {
	return l.Attack + l.Blocks + l.Assists + l.Service
}

func (l *StatLine) Add(other StatLine) {
	l.Attack += other.Attack
	l.Blocks += other.Blocks
	l.Assists += other.Assists
	l.Service += other.Service
}

// Value returns the named category count; unknown keys read as zero.
func (l StatLine) Value(key string) int {
	switch key {
	case "attack":
		return l.Attack
	case "blocks":
		return l.Blocks
	case "assists":
		return l.Assists
	case "service":
		return l.Service
	}
	return 0
}
