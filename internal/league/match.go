package league

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchCompleted MatchStatus = "completed"
	MatchCanceled  MatchStatus = "canceled"
)

type Match struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	SeasonID   string      `db:"season_id" json:"seasonId"`
	DateISO    string      `db:"date_iso" json:"date"`
	TimeHHMM   *string     `db:"time_hhmm" json:"time,omitempty"`
	HomeTeamID string      `db:"home_team_id" json:"homeTeamId"`
	AwayTeamID string      `db:"away_team_id" json:"awayTeamId"`
	Status     MatchStatus `db:"status" json:"status"`

	// Both nil until a result is recorded, then both set.
	HomeScore *int `db:"home_score" json:"homeScore,omitempty"`
	AwayScore *int `db:"away_score" json:"awayScore,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// HasResult reports whether both scores are recorded.
func (m *Match) HasResult() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// StartsAt combines the match date and optional kickoff time. The zero
// time signals an unparseable date.
func (m *Match) StartsAt() time.Time {
	hhmm := "00:00"
	if m.TimeHHMM != nil && *m.TimeHHMM != "" {
		hhmm = *m.TimeHHMM
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", m.DateISO+" "+hhmm, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
