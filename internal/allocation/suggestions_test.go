package allocation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hostel-room-allocation/internal/apperr"
	"github.com/iliyamo/hostel-room-allocation/internal/matching"
)

func TestSuggestionsGroupsCandidates(t *testing.T) {
	store := newMemStore()
	store.addResident(testResident(1, "male", quietTraits()))
	store.addResident(testResident(2, "male", quietTraits()))
	store.addResident(testResident(3, "male", clashingTraits()))
	svc, _ := newTestService(store)

	res, err := svc.Suggestions(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	require.Len(t, res.Suggestions.All, 2)
	require.Len(t, res.Suggestions.VeryHigh, 1)
	assert.Equal(t, uint64(2), res.Suggestions.VeryHigh[0].MatchID)
	assert.Equal(t, matching.StatusAutoPair, res.Suggestions.VeryHigh[0].Status)
	require.Len(t, res.Suggestions.Low, 1)
	assert.Equal(t, uint64(3), res.Suggestions.Low[0].MatchID)
	assert.Contains(t, res.RangeDefinitions, string(matching.RangeVeryHigh))
}

func TestSuggestionsServedFromCache(t *testing.T) {
	store := newMemStore()
	store.addResident(testResident(1, "male", quietTraits()))
	store.addResident(testResident(2, "male", quietTraits()))
	svc, _ := newTestService(store)

	first, err := svc.Suggestions(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Suggestions(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Suggestions, second.Suggestions)
	assert.Equal(t, 1, store.listCalls, "a cache hit must not rescan residents")
}

func TestSuggestionsCacheInvalidatedByProfileEdit(t *testing.T) {
	store := newMemStore()
	store.addResident(testResident(1, "male", quietTraits()))
	store.addResident(testResident(2, "male", quietTraits()))
	svc, _ := newTestService(store)

	_, err := svc.Suggestions(context.Background(), 1)
	require.NoError(t, err)

	// Editing the resident's traits changes the signature, so the old
	// entry is never served.
	store.addResident(testResident(1, "male", clashingTraits()))
	res, err := svc.Suggestions(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, 2, store.listCalls)
}

func TestSuggestionsUnknownResident(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	_, err := svc.Suggestions(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
