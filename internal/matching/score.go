package matching

import (
	"math"

	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// Similarity methods accepted by the scorer.  Cosine is the default;
// euclidean is kept as an alternative for offline comparison runs.
const (
	MethodCosine    = "cosine"
	MethodEuclidean = "euclidean"
)

// Range buckets a 0..100 compatibility score.
type Range string

const (
	RangeVeryHigh Range = "veryHigh" // 85..100
	RangeHigh     Range = "high"     // 70..84
	RangeModerate Range = "moderate" // 55..69
	RangeLow      Range = "low"      // 0..54
)

// Pairable reports whether the range qualifies for auto-pairing two
// pending requests into one room.
func (r Range) Pairable() bool { return r == RangeVeryHigh || r == RangeHigh }

// Classify buckets an integer score into its Range.
func Classify(score int) Range {
	switch {
	case score >= 85:
		return RangeVeryHigh
	case score >= 70:
		return RangeHigh
	case score >= 55:
		return RangeModerate
	default:
		return RangeLow
	}
}

// RangeDefinitions returns the human-readable legend for each range,
// included verbatim in suggestion responses.
func RangeDefinitions() map[string]string {
	return map[string]string{
		string(RangeVeryHigh): "85-100: automatic pairing candidate",
		string(RangeHigh):     "70-84: strong match, pairing allowed",
		string(RangeModerate): "55-69: acceptable, admin review advised",
		string(RangeLow):      "0-54: incompatible",
	}
}

// Result is the outcome of scoring one pair of trait bundles.  Base
// and Affinity expose the two blended components rounded to two
// decimals for diagnostics and the suggestions endpoint.
type Result struct {
	Score    int
	Range    Range
	Base     float64
	Affinity float64
}

// Scorer computes compatibility scores using the live weights from a
// shared WeightStore.  The zero value is not usable; construct with
// NewScorer.
type Scorer struct {
	weights *WeightStore
	method  string
}

// NewScorer returns a Scorer reading weights from store.  method
// selects the similarity term; anything other than MethodEuclidean
// falls back to cosine.
func NewScorer(store *WeightStore, method string) *Scorer {
	if method != MethodEuclidean {
		method = MethodCosine
	}
	return &Scorer{weights: store, method: method}
}

// Score computes the compatibility between two raw trait bundles.  The
// final score is 0.75·similarity + 0.25·affinity minus an extreme
// mismatch penalty, clamped at zero, scaled to 0..100 and rounded.
// The similarity term is symmetric, and the affinity and penalty
// terms are symmetric by construction, so Score(a,b) == Score(b,a).
func (s *Scorer) Score(a, b model.TraitBundle) Result {
	return s.ScoreNormalized(Normalize(a), Normalize(b))
}

// ScoreNormalized is Score for already-normalized bundles.  It lets
// batch callers normalize each resident once.
func (s *Scorer) ScoreNormalized(an, bn NormalizedTraits) Result {
	w := s.weights.Snapshot()
	wv := w.vector()
	av, bv := an.Vector(), bn.Vector()

	var base float64
	if s.method == MethodEuclidean {
		base = 1 - math.Min(1, weightedEuclidean(av, bv, wv))
	} else {
		base = weightedCosine(av, bv, wv)
	}

	hobby, music := interestAffinity(an, bn)
	affinity := (hobby*w.Hobbies + music*w.Music) / (w.Hobbies + w.Music)

	raw := base*0.75 + affinity*0.25
	penalized := math.Max(0, raw-extremePenalty(an, bn))
	score := int(math.Round(penalized * 100))
	return Result{
		Score:    score,
		Range:    Classify(score),
		Base:     round2(base),
		Affinity: round2(affinity),
	}
}

// weightedCosine computes the weighted cosine similarity of two
// vectors.  Each dimension's weight is applied once inside the dot
// product and once inside each magnitude, keeping the result in [0,1]
// for non-negative inputs.  A zero magnitude yields the neutral
// baseline 0.5.
func weightedCosine(a, b, w [6]float64) float64 {
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i] * w[i]
		magA += a[i] * a[i] * w[i]
		magB += b[i] * b[i] * w[i]
	}
	mag := math.Sqrt(magA) * math.Sqrt(magB)
	if mag == 0 {
		return 0.5
	}
	return dot / mag
}

// weightedEuclidean computes the weighted euclidean distance of two
// vectors.
func weightedEuclidean(a, b, w [6]float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff * w[i]
	}
	return math.Sqrt(sum)
}

// interestAffinity measures hobby-set Jaccard overlap and exact music
// preference equality.  Either signal degrades to the neutral 0.5
// when the underlying data is absent on both (hobbies) or either
// (music) side.
func interestAffinity(a, b NormalizedTraits) (hobby, music float64) {
	inA := make(map[string]struct{}, len(a.Hobbies))
	for _, h := range a.Hobbies {
		inA[h] = struct{}{}
	}
	var intersection int
	union := len(a.Hobbies)
	for _, h := range b.Hobbies {
		if _, ok := inA[h]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		hobby = 0.5
	} else {
		hobby = float64(intersection) / float64(union)
	}

	switch {
	case a.MusicPreference == "" || b.MusicPreference == "":
		music = 0.5
	case a.MusicPreference == b.MusicPreference:
		music = 1
	default:
		music = 0
	}
	return hobby, music
}

// extremePenalty subtracts up to 0.3 when cleanliness, sleep schedule
// or noise preference sit at opposite extremes (normalized difference
// above 0.8), 0.1 per trait.
func extremePenalty(a, b NormalizedTraits) float64 {
	var p float64
	if math.Abs(a.Cleanliness-b.Cleanliness) > 0.8 {
		p += 0.1
	}
	if math.Abs(a.SleepSchedule-b.SleepSchedule) > 0.8 {
		p += 0.1
	}
	if math.Abs(a.NoisePreference-b.NoisePreference) > 0.8 {
		p += 0.1
	}
	return p
}

func round2(n float64) float64 { return math.Round(n*100) / 100 }
