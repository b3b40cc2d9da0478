package allocation

import (
	"context"

	"github.com/iliyamo/hostel-room-allocation/internal/matching"
)

// SuggestionsResult bundles the grouped suggestions with the range
// legend.  Cached reports whether the result was served from the
// suggestion cache.
type SuggestionsResult struct {
	Suggestions      matching.GroupedSuggestions `json:"suggestions"`
	RangeDefinitions map[string]string           `json:"rangeDefinitions"`
	Cached           bool                        `json:"cached"`
}

// Suggestions computes (or serves from cache) the grouped roommate
// suggestions for a resident.  The cache key includes the trait
// signature, so a profile edit invalidates previous entries
// automatically.  This path never feeds the commit workflows, which
// always score fresh.
func (s *Service) Suggestions(ctx context.Context, residentID uint64) (*SuggestionsResult, error) {
	resident, err := s.store.ResidentByID(ctx, residentID)
	if err != nil {
		return nil, err
	}
	signature := matching.Normalize(resident.Traits).Signature()
	if cached, ok := s.cache.Get(residentID, signature); ok {
		return &SuggestionsResult{
			Suggestions:      cached,
			RangeDefinitions: matching.RangeDefinitions(),
			Cached:           true,
		}, nil
	}
	candidates, err := s.store.ListResidents(ctx, residentID)
	if err != nil {
		return nil, err
	}
	grouped := s.scorer.BuildSuggestions(*resident, candidates)
	s.cache.Put(residentID, signature, grouped)
	return &SuggestionsResult{
		Suggestions:      grouped,
		RangeDefinitions: matching.RangeDefinitions(),
	}, nil
}
