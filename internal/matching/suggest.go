package matching

import (
	"sort"

	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// Pairing status labels attached to each suggestion.  They describe
// what the system would do with the match: pair it automatically,
// surface it as a suggestion, hold it for review, require an admin
// decision, or reject it outright.
const (
	StatusAutoPair       = "auto-pair"
	StatusSuggest        = "suggest"
	StatusAwaitingReview = "awaiting-review"
	StatusNeedsAdmin     = "needs-admin"
	StatusReject         = "reject"
)

// Suggestion is one scored candidate roommate for a target resident.
type Suggestion struct {
	ResidentID uint64  `json:"residentId"`
	MatchID    uint64  `json:"matchId"`
	Score      int     `json:"compatibilityScore"`
	Range      Range   `json:"range"`
	Status     string  `json:"status"`
	Base       float64 `json:"base"`
	Affinity   float64 `json:"affinity"`
}

// GroupedSuggestions buckets suggestions by compatibility range.  All
// holds every suggestion ordered by descending score; the per-range
// slices preserve that order.
type GroupedSuggestions struct {
	VeryHigh []Suggestion `json:"veryHigh"`
	High     []Suggestion `json:"high"`
	Moderate []Suggestion `json:"moderate"`
	Low      []Suggestion `json:"low"`
	All      []Suggestion `json:"all"`
}

// BuildSuggestions scores the target resident against every candidate
// and groups the results by range.  The target itself and nil entries
// are skipped.
func (s *Scorer) BuildSuggestions(target model.Resident, candidates []model.Resident) GroupedSuggestions {
	targetNorm := Normalize(target.Traits)
	all := make([]Suggestion, 0, len(candidates))
	for _, cand := range candidates {
		if cand.ID == 0 || cand.ID == target.ID {
			continue
		}
		res := s.ScoreNormalized(targetNorm, Normalize(cand.Traits))
		all = append(all, Suggestion{
			ResidentID: target.ID,
			MatchID:    cand.ID,
			Score:      res.Score,
			Range:      res.Range,
			Status:     deriveStatus(res.Range, res.Score),
			Base:       res.Base,
			Affinity:   res.Affinity,
		})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })
	return groupByRange(all)
}

// deriveStatus maps a range (and, within high, the exact score) onto
// the pairing status shown to administrators.
func deriveStatus(r Range, score int) string {
	switch r {
	case RangeVeryHigh:
		return StatusAutoPair
	case RangeHigh:
		if score >= 75 {
			return StatusSuggest
		}
		return StatusAwaitingReview
	case RangeModerate:
		return StatusNeedsAdmin
	default:
		return StatusReject
	}
}

func groupByRange(all []Suggestion) GroupedSuggestions {
	g := GroupedSuggestions{
		VeryHigh: []Suggestion{},
		High:     []Suggestion{},
		Moderate: []Suggestion{},
		Low:      []Suggestion{},
		All:      all,
	}
	for _, s := range all {
		switch s.Range {
		case RangeVeryHigh:
			g.VeryHigh = append(g.VeryHigh, s)
		case RangeHigh:
			g.High = append(g.High, s)
		case RangeModerate:
			g.Moderate = append(g.Moderate, s)
		default:
			g.Low = append(g.Low, s)
		}
	}
	return g
}
