package league

import "time"

// Roster is the set of players assigned to one team within one season.
// PlayerIDs is backed by a join table, so it never contains duplicates.
type Roster struct {
	ID        string    `db:"id" json:"id"`
	SeasonID  string    `db:"season_id" json:"seasonId"`
	TeamID    string    `db:"team_id" json:"teamId"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	PlayerIDs []string `db:"-" json:"playerIds"`
}

// RosterID builds the deterministic document id for a (season, team)
// pair.
func RosterID(seasonID, teamID string) string {
	return seasonID + "_" + teamID
}

// Contains reports membership without assuming any ordering.
func (r *Roster) Contains(playerID string) bool {
	for _, id := range r.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}
