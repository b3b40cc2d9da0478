// Package matching implements the compatibility scoring engine: trait
// normalization, weighted similarity, the adaptive weight store, the
// suggestion cache and suggestion grouping.  Everything in this
// package is free of I/O; callers pass fully loaded trait bundles in
// and receive scores back, which keeps the engine usable both inside
// database transactions and from read-only query paths.
package matching

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// Ordinal tables mapping categorical trait values onto [0,1].  Values
// missing from a table fall back to the neutral midpoint 0.5 so that
// incomplete profiles never crash scoring or bias it toward either
// extreme.
var (
	sleepMap   = map[string]float64{"early": 0, "flexible": 0.5, "late": 1}
	studyMap   = map[string]float64{"quiet": 0, "mixed": 0.5, "group": 1}
	socialMap  = map[string]float64{"introvert": 0, "balanced": 0.5, "extrovert": 1}
	noiseMap   = map[string]float64{"quiet": 0, "tolerant": 0.5, "noisy": 1}
	visitorMap = map[string]float64{"rarely": 0, "sometimes": 0.5, "often": 1}
)

// NormalizedTraits is a trait bundle mapped into a bounded numeric
// space.  Categorical traits become fixed points in [0,1], cleanliness
// is rescaled from 1..5 to [0.2,1], hobbies are lower-cased, deduped
// and sorted, and music preference is lower-cased.  Normalization is
// pure and deterministic: identical raw input always yields identical
// output, which the suggestion cache relies on.
type NormalizedTraits struct {
	SleepSchedule    float64
	StudyHabits      float64
	Cleanliness      float64
	SocialPreference float64
	NoisePreference  float64
	VisitorFrequency float64
	Hobbies          []string
	MusicPreference  string
}

// Normalize maps a raw trait bundle into NormalizedTraits.
func Normalize(t model.TraitBundle) NormalizedTraits {
	return NormalizedTraits{
		SleepSchedule:    mapOrdinal(t.SleepSchedule, sleepMap),
		StudyHabits:      mapOrdinal(t.StudyHabits, studyMap),
		Cleanliness:      float64(clampInt(t.CleanlinessLevel, 1, 5)) / 5,
		SocialPreference: mapOrdinal(t.SocialPreference, socialMap),
		NoisePreference:  mapOrdinal(t.NoisePreference, noiseMap),
		VisitorFrequency: mapOrdinal(t.VisitorFrequency, visitorMap),
		Hobbies:          normalizeHobbies(t.Hobbies),
		MusicPreference:  strings.ToLower(strings.TrimSpace(t.MusicPreference)),
	}
}

// Vector returns the six numeric dimensions used by the similarity
// term, in the fixed order sleep, study, cleanliness, social, noise,
// visitor frequency.  Weight slices built by the weight store use the
// same order.
func (n NormalizedTraits) Vector() [6]float64 {
	return [6]float64{
		n.SleepSchedule,
		n.StudyHabits,
		n.Cleanliness,
		n.SocialPreference,
		n.NoisePreference,
		n.VisitorFrequency,
	}
}

// Signature returns a short stable hash of the normalized traits.  It
// keys the suggestion cache together with the resident ID, so profile
// edits naturally invalidate cached suggestions.  Hobbies are sorted
// during normalization, making the signature independent of the order
// the resident listed them in.
func (n NormalizedTraits) Signature() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%.4f|%.4f|%.4f|%.4f|%.4f|%.4f|", n.SleepSchedule, n.StudyHabits,
		n.Cleanliness, n.SocialPreference, n.NoisePreference, n.VisitorFrequency)
	b.WriteString(strings.Join(n.Hobbies, ","))
	b.WriteByte('|')
	b.WriteString(n.MusicPreference)
	sum := sha1.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:16]
}

func mapOrdinal(raw string, table map[string]float64) float64 {
	if v, ok := table[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return v
	}
	return 0.5
}

func clampInt(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// normalizeHobbies lower-cases, trims, dedupes and sorts hobby labels.
func normalizeHobbies(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, h := range raw {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}
