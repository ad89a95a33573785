package stats

import (
	"sort"

	"github.com/andrwlab/Season2App/internal/league"
)

type TeamStanding struct {
	TeamID            string `json:"teamId"`
	MatchesPlayed     int    `json:"matchesPlayed"`
	Wins              int    `json:"wins"`
	Losses            int    `json:"losses"`
	PointsFor         int    `json:"pointsFor"`
	PointsAgainst     int    `json:"pointsAgainst"`
	PointDifferential int    `json:"pointDifferential"`
}

// ComputeStandings scans every match with a recorded result and
// credits the higher score a win and the other side a loss; equal
// scores credit neither. Teams passed in seedTeamIDs appear with
// all-zero records even when no match mentions them. The table is
// ordered by wins, then point differential, then points for, with
// team id as the final deterministic tie-break.
func ComputeStandings(matches []league.Match, seedTeamIDs []string) []TeamStanding {
	table := make(map[string]*TeamStanding, len(seedTeamIDs))
	for _, id := range seedTeamIDs {
		if _, ok := table[id]; !ok {
			table[id] = &TeamStanding{TeamID: id}
		}
	}

	entry := func(teamID string) *TeamStanding {
		e, ok := table[teamID]
		if !ok {
			e = &TeamStanding{TeamID: teamID}
			table[teamID] = e
		}
		return e
	}

	for i := range matches {
		m := &matches[i]
		if !m.HasResult() {
			continue
		}
		home := entry(m.HomeTeamID)
		away := entry(m.AwayTeamID)

		home.MatchesPlayed++
		away.MatchesPlayed++
		home.PointsFor += *m.HomeScore
		home.PointsAgainst += *m.AwayScore
		away.PointsFor += *m.AwayScore
		away.PointsAgainst += *m.HomeScore

		switch {
		case *m.HomeScore > *m.AwayScore:
			home.Wins++
			away.Losses++
		case *m.AwayScore > *m.HomeScore:
			away.Wins++
			home.Losses++
		}
	}

	standings := make([]TeamStanding, 0, len(table))
	for _, e := range table {
		e.PointDifferential = e.PointsFor - e.PointsAgainst
		standings = append(standings, *e)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		if standings[i].PointDifferential != standings[j].PointDifferential {
			return standings[i].PointDifferential > standings[j].PointDifferential
		}
		if standings[i].PointsFor != standings[j].PointsFor {
			return standings[i].PointsFor > standings[j].PointsFor
		}
		return standings[i].TeamID < standings[j].TeamID
	})

	return standings
}
