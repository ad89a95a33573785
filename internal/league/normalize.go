package league

import "errors"

// ResultDoc is the wire shape of a match result submission. Older
// clients sent flat scoreA/scoreB fields and keyed the stat map by
// player display name rather than id. Every shape is mapped into the
// canonical MatchResult at this boundary so nothing downstream needs
// to know more than one representation.
type ResultDoc struct {
	Scores *ScoreDoc          `json:"scores,omitempty"`
	ScoreA *int               `json:"scoreA,omitempty"`
	ScoreB *int               `json:"scoreB,omitempty"`
	Stats  map[string]StatDoc `json:"playersStats,omitempty"`
}

type ScoreDoc struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// StatDoc tolerates absent counters; a nil field reads as zero.
type StatDoc struct {
	Attack  *int `json:"attack,omitempty"`
	Blocks  *int `json:"blocks,omitempty"`
	Assists *int `json:"assists,omitempty"`
	Service *int `json:"service,omitempty"`
}

func (d StatDoc) line() StatLine {
	return StatLine{
		Attack:  orZero(d.Attack),
		Blocks:  orZero(d.Blocks),
		Assists: orZero(d.Assists),
		Service: orZero(d.Service),
	}
}

func orZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// MatchResult is the canonical in-memory form of a submitted result.
type MatchResult struct {
	HomeScore int
	AwayScore int
	Lines     map[string]StatLine // keyed by player id
}

var ErrMissingScores = errors.New("result is missing one or both scores")

// NormalizeResult resolves the score fields and re-keys the stat map
// by player id. Stat entries keyed by a name are resolved through the
// normalized name index; entries that resolve to no known player are
// dropped rather than failing the whole submission. All-zero lines
// are dropped too, matching how the original form ignored empty rows.
func NormalizeResult(doc ResultDoc, knownIDs map[string]struct{}, idByNameKey map[string]string) (MatchResult, error) {
	home, away := doc.ScoreA, doc.ScoreB
	if doc.Scores != nil {
		home, away = doc.Scores.Home, doc.Scores.Away
	}
	if home == nil || away == nil {
		return MatchResult{}, ErrMissingScores
	}

	result := MatchResult{
		HomeScore: *home,
		AwayScore: *away,
		Lines:     make(map[string]StatLine, len(doc.Stats)),
	}
	for key, stat := range doc.Stats {
		playerID := key
		if _, ok := knownIDs[playerID]; !ok {
			resolved, ok := idByNameKey[NameKey(key)]
			if !ok {
				continue
			}
			playerID = resolved
		}
		line := stat.line()
		if line.Total() == 0 {
			continue
		}
		merged := result.Lines[playerID]
		merged.Add(line)
		result.Lines[playerID] = merged
	}
	return result, nil
}
