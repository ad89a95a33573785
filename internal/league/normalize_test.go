package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNormalizeResultNestedScores(t *testing.T) {
	doc := ResultDoc{
		Scores: &ScoreDoc{Home: intPtr(25), Away: intPtr(20)},
		Stats: map[string]StatDoc{
			"p1": {Attack: intPtr(5), Blocks: intPtr(1)},
		},
	}
	known := map[string]struct{}{"p1": {}}

	result, err := NormalizeResult(doc, known, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, result.HomeScore)
	assert.Equal(t, 20, result.AwayScore)
	assert.Equal(t, StatLine{Attack: 5, Blocks: 1}, result.Lines["p1"])
}

func TestNormalizeResultFlatScores(t *testing.T) {
	doc := ResultDoc{ScoreA: intPtr(15), ScoreB: intPtr(25)}

	result, err := NormalizeResult(doc, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 15, result.HomeScore)
	assert.Equal(t, 25, result.AwayScore)
	assert.Empty(t, result.Lines)
}

func TestNormalizeResultNestedScoresWinOverFlat(t *testing.T) {
	doc := ResultDoc{
		Scores: &ScoreDoc{Home: intPtr(25), Away: intPtr(18)},
		ScoreA: intPtr(1),
		ScoreB: intPtr(2),
	}

	result, err := NormalizeResult(doc, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, result.HomeScore)
	assert.Equal(t, 18, result.AwayScore)
}

func TestNormalizeResultMissingScores(t *testing.T) {
	_, err := NormalizeResult(ResultDoc{ScoreA: intPtr(25)}, nil, nil)
	assert.ErrorIs(t, err, ErrMissingScores)

	_, err = NormalizeResult(ResultDoc{Scores: &ScoreDoc{Home: intPtr(25)}}, nil, nil)
	assert.ErrorIs(t, err, ErrMissingScores)

	_, err = NormalizeResult(ResultDoc{}, nil, nil)
	assert.ErrorIs(t, err, ErrMissingScores)
}

func TestNormalizeResultResolvesNameKeys(t *testing.T) {
	doc := ResultDoc{
		Scores: &ScoreDoc{Home: intPtr(25), Away: intPtr(23)},
		Stats: map[string]StatDoc{
			"Héctor Chen 9A": {Service: intPtr(1)},
			"p2":             {Attack: intPtr(3)},
			"Unknown Player": {Attack: intPtr(9)},
		},
	}
	known := map[string]struct{}{"p2": {}}
	byKey := map[string]string{"hector chen": "p7"}

	result, err := NormalizeResult(doc, known, byKey)
	require.NoError(t, err)
	assert.Len(t, result.Lines, 2)
	assert.Equal(t, StatLine{Service: 1}, result.Lines["p7"])
	assert.Equal(t, StatLine{Attack: 3}, result.Lines["p2"])
}

func TestNormalizeResultDropsAllZeroLines(t *testing.T) {
	doc := ResultDoc{
		Scores: &ScoreDoc{Home: intPtr(25), Away: intPtr(10)},
		Stats: map[string]StatDoc{
			"p1": {},
			"p2": {Attack: intPtr(0), Blocks: intPtr(0)},
			"p3": {Assists: intPtr(2)},
		},
	}
	known := map[string]struct{}{"p1": {}, "p2": {}, "p3": {}}

	result, err := NormalizeResult(doc, known, nil)
	require.NoError(t, err)
	assert.Len(t, result.Lines, 1)
	assert.Equal(t, StatLine{Assists: 2}, result.Lines["p3"])
}

func TestNormalizeResultMergesDuplicateNameKeys(t *testing.T) {
	doc := ResultDoc{
		Scores: &ScoreDoc{Home: intPtr(25), Away: intPtr(10)},
		Stats: map[string]StatDoc{
			"Lucas Wu":    {Attack: intPtr(2)},
			"Lucas Wu 8A": {Attack: intPtr(3)},
		},
	}
	byKey := map[string]string{"lucas wu": "p1"}

	result, err := NormalizeResult(doc, nil, byKey)
	require.NoError(t, err)
	assert.Equal(t, StatLine{Attack: 5}, result.Lines["p1"])
}
