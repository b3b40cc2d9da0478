// Package allocation implements the compatibility-based allocation
// workflows: transactional submission with auto-pairing, admin
// reallocation, cache-backed suggestions, approved-pairing recording
// and the stale-request reconciliation pass used by the background
// worker.  The package owns the adaptive weight store and suggestion
// cache explicitly; nothing here is package-level mutable state.
package allocation

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/hostel-room-allocation/internal/matching"
	"github.com/iliyamo/hostel-room-allocation/internal/queue"
)

// Publisher delivers an allocation.approved event after a pairing
// commits.  Delivery is best-effort; implementations log and swallow
// their own failures.
type Publisher func(ctx context.Context, ev queue.AllocationApprovedEvent)

// Service is the long-lived allocation engine.  One instance is shared
// by the HTTP layer and the reconciliation worker.
type Service struct {
	store   Store
	weights *matching.WeightStore
	scorer  *matching.Scorer
	cache   *matching.SuggestionCache
	log     *zap.Logger
	publish Publisher

	// now and jitter are swappable for tests.
	now    func() time.Time
	jitter func() float64
}

// Option customizes a Service during construction.
type Option func(*Service)

// WithMethod selects the similarity method (matching.MethodCosine or
// matching.MethodEuclidean).
func WithMethod(method string) Option {
	return func(s *Service) { s.scorer = matching.NewScorer(s.weights, method) }
}

// WithPublisher installs the event publisher invoked after each
// committed pairing.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publish = p }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithJitter overrides the tie-breaking jitter source of the room
// selector.
func WithJitter(fn func() float64) Option {
	return func(s *Service) { s.jitter = fn }
}

// NewService constructs the allocation service with fresh adaptive
// weights and an empty suggestion cache.
func NewService(store Store, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	weights := matching.NewWeightStore()
	s := &Service{
		store:   store,
		weights: weights,
		scorer:  matching.NewScorer(weights, matching.MethodCosine),
		cache:   matching.NewSuggestionCache(matching.DefaultSuggestionTTL),
		log:     log,
		now:     time.Now,
		jitter:  rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights exposes the adaptive weight store for administrative tuning.
func (s *Service) Weights() *matching.WeightStore { return s.weights }

// publishApproved hands the event to the installed publisher, if any.
func (s *Service) publishApproved(ctx context.Context, ev queue.AllocationApprovedEvent) {
	if s.publish != nil {
		s.publish(ctx, ev)
	}
}
