package matching

import "sync"

// Weights holds the per-trait multipliers applied by the scorer.  The
// first six fields weight the numeric similarity dimensions; Hobbies
// and Music weight the interest affinity blend.
type Weights struct {
	SleepSchedule    float64
	StudyHabits      float64
	Cleanliness      float64
	SocialPreference float64
	NoisePreference  float64
	VisitorFrequency float64
	Hobbies          float64
	Music            float64
}

// DefaultWeights returns the seed weights.  Cleanliness starts above 1
// because mismatched cleanliness is the most common source of roommate
// complaints; hobbies and music carry less signal than lifestyle
// traits.
func DefaultWeights() Weights {
	return Weights{
		SleepSchedule:    1,
		StudyHabits:      1,
		Cleanliness:      1.2,
		SocialPreference: 1,
		NoisePreference:  1,
		VisitorFrequency: 0.8,
		Hobbies:          0.6,
		Music:            0.4,
	}
}

// vector returns the similarity weights in the NormalizedTraits.Vector
// dimension order.
func (w Weights) vector() [6]float64 {
	return [6]float64{
		w.SleepSchedule,
		w.StudyHabits,
		w.Cleanliness,
		w.SocialPreference,
		w.NoisePreference,
		w.VisitorFrequency,
	}
}

// Caps and step sizes for the adaptive adjustment.  Every exact
// multiple of adjustEvery approved pairings nudges cleanliness and
// sleep schedule up by a small bounded step.
const (
	adjustEvery     = 25
	cleanlinessStep = 0.02
	cleanlinessCap  = 1.6
	sleepStep       = 0.01
	sleepCap        = 1.3
)

// WeightStore owns the process-wide mutable weights.  It is a tuning
// heuristic, not correctness-critical state: it is not persisted and
// resets to the defaults on restart.  One instance lives on the
// allocation service and is shared by every scorer.  Reads and writes
// are guarded by a mutex so concurrent workflows never race on the
// map itself, but the adjustment is intentionally best-effort and not
// transactionally tied to the approval write.
type WeightStore struct {
	mu           sync.RWMutex
	weights      Weights
	lastAdjusted int // approval count the last adjustment was applied for
}

// NewWeightStore returns a store seeded with DefaultWeights.
func NewWeightStore() *WeightStore {
	return &WeightStore{weights: DefaultWeights()}
}

// Snapshot returns a copy of the current weights.
func (s *WeightStore) Snapshot() Weights {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weights
}

// Set replaces the current weights.  Exposed for administrative
// tuning; normal operation only mutates weights through MaybeAdjust.
func (s *WeightStore) Set(w Weights) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights = w
}

// MaybeAdjust applies the adaptive nudge when approvedCount is an
// exact multiple of 25.  The count the adjustment was last applied for
// is remembered, so calling MaybeAdjust twice with the same count
// applies the step once — the store re-checks the count instead of
// blindly accumulating.
func (s *WeightStore) MaybeAdjust(approvedCount int) {
	if approvedCount <= 0 || approvedCount%adjustEvery != 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if approvedCount == s.lastAdjusted {
		return
	}
	s.lastAdjusted = approvedCount
	s.weights.Cleanliness = minFloat(cleanlinessCap, s.weights.Cleanliness+cleanlinessStep)
	s.weights.SleepSchedule = minFloat(sleepCap, s.weights.SleepSchedule+sleepStep)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
