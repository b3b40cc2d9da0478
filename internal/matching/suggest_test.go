package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

func TestBuildSuggestionsGroupsAndSorts(t *testing.T) {
	target := model.Resident{ID: 1, Traits: quietReader()}
	twin := model.Resident{ID: 2, Traits: quietReader()}
	opposite := model.Resident{ID: 3, Traits: loudPartier()}

	g := newTestScorer(MethodCosine).BuildSuggestions(target, []model.Resident{opposite, twin})

	require.Len(t, g.All, 2)
	assert.Equal(t, uint64(2), g.All[0].MatchID, "results are ordered by descending score")
	assert.Equal(t, uint64(3), g.All[1].MatchID)

	require.Len(t, g.VeryHigh, 1)
	assert.Equal(t, 100, g.VeryHigh[0].Score)
	assert.Equal(t, StatusAutoPair, g.VeryHigh[0].Status)
	require.Len(t, g.Low, 1)
	assert.Equal(t, StatusReject, g.Low[0].Status)
	assert.Empty(t, g.High)
	assert.Empty(t, g.Moderate)

	for _, s := range g.All {
		assert.Equal(t, target.ID, s.ResidentID)
	}
}

func TestBuildSuggestionsSkipsSelfAndZeroIDs(t *testing.T) {
	target := model.Resident{ID: 1, Traits: quietReader()}
	g := newTestScorer(MethodCosine).BuildSuggestions(target, []model.Resident{
		{ID: 1, Traits: quietReader()},
		{ID: 0, Traits: quietReader()},
	})
	assert.Empty(t, g.All)
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		r     Range
		score int
		want  string
	}{
		{RangeVeryHigh, 92, StatusAutoPair},
		{RangeHigh, 80, StatusSuggest},
		{RangeHigh, 75, StatusSuggest},
		{RangeHigh, 74, StatusAwaitingReview},
		{RangeHigh, 70, StatusAwaitingReview},
		{RangeModerate, 60, StatusNeedsAdmin},
		{RangeLow, 10, StatusReject},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, deriveStatus(tc.r, tc.score), "%s/%d", tc.r, tc.score)
	}
}
