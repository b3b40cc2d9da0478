package allocation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/hostel-room-allocation/internal/matching"
	"github.com/iliyamo/hostel-room-allocation/internal/model"
	"github.com/iliyamo/hostel-room-allocation/internal/queue"
)

// ReconcileStats summarizes one reconciliation cycle.
type ReconcileStats struct {
	Processed int // stale requests examined
	Paired    int // requests approved (two per successful pairing)
}

// pairOutcome describes how a single stale pairing attempt ended.
type pairOutcome int

const (
	pairedOK      pairOutcome = iota // both requests approved
	staleFirst                       // candidate a no longer pending/room-less
	staleSecond                      // candidate b no longer pending/room-less
	noRoom                           // no hostel currently has two free slots
)

// ReconcileStale retries pairing for pending, room-less requests older
// than staleAfter, up to batch of them, oldest first.  For each
// candidate it scans the later candidates for the first high or
// veryHigh match and runs the same room-selection-and-commit
// transaction as the live submission path.  Freshness is re-validated
// inside that transaction, so overlapping work with concurrent
// submissions or other worker instances degrades to harmless no-ops.
// A failed pairing attempt is logged and the batch continues.
func (s *Service) ReconcileStale(ctx context.Context, staleAfter time.Duration, batch int) (ReconcileStats, error) {
	var stats ReconcileStats
	cutoff := s.now().Add(-staleAfter)
	stale, err := s.store.StalePending(ctx, cutoff, batch)
	if err != nil {
		return stats, err
	}
	stats.Processed = len(stale)

scan:
	for i := range stale {
		a := stale[i]
		aNorm := matching.Normalize(a.Resident.Traits)
		for j := i + 1; j < len(stale); j++ {
			b := stale[j]
			if b.Resident.Gender != a.Resident.Gender {
				continue
			}
			score := s.scorer.ScoreNormalized(aNorm, matching.Normalize(b.Resident.Traits))
			if !score.Range.Pairable() {
				continue
			}
			outcome, err := s.pairStale(ctx, a, b, score)
			if err != nil {
				// One failed attempt must not sink the batch; move on
				// to the next candidate pair.
				s.log.Warn("stale pairing attempt failed",
					zap.Uint64("request_a", a.Request.ID),
					zap.Uint64("request_b", b.Request.ID),
					zap.Error(err))
				continue
			}
			switch outcome {
			case pairedOK:
				stats.Paired += 2
				continue scan
			case staleFirst:
				// a was handled elsewhere; nothing left to do for it.
				continue scan
			case noRoom:
				// No room will appear mid-cycle; stop trying for a.
				continue scan
			case staleSecond:
				continue
			}
		}
	}
	return stats, nil
}

// pairStale runs the commit transaction for one stale pair: fresh
// re-checks of both requests, fairness room selection, capacity and
// gender verification under the row lock, then the paired approval.
func (s *Service) pairStale(ctx context.Context, a, b Candidate, score matching.Result) (pairOutcome, error) {
	var (
		outcome pairOutcome
		event   *queue.AllocationApprovedEvent
	)
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		freshA, err := tx.RequestByID(ctx, a.Request.ID)
		if err != nil {
			return err
		}
		if freshA.Status != model.RequestPending || freshA.RoomID != nil {
			outcome = staleFirst
			return nil
		}
		freshB, err := tx.RequestByID(ctx, b.Request.ID)
		if err != nil {
			return err
		}
		if freshB.Status != model.RequestPending || freshB.RoomID != nil {
			outcome = staleSecond
			return nil
		}

		room, err := s.selectRoomForPair(ctx, tx, a.Resident.Gender, pairSlots)
		if err != nil {
			return err
		}
		if room == nil {
			outcome = noRoom
			return nil
		}
		locked, hostel, err := tx.RoomWithHostel(ctx, room.ID)
		if err != nil {
			return err
		}
		if locked.FreeSlots() < pairSlots ||
			hostel.Type != a.Resident.Gender || hostel.Type != b.Resident.Gender {
			outcome = noRoom
			return nil
		}

		now := s.now().UTC()
		approveRequest(freshA, locked.ID, score, now)
		approveRequest(freshB, locked.ID, score, now)
		if err := tx.UpdateRequest(ctx, freshA); err != nil {
			return err
		}
		if err := tx.UpdateRequest(ctx, freshB); err != nil {
			return err
		}
		if err := tx.AddOccupied(ctx, locked.ID, pairSlots); err != nil {
			return err
		}
		outcome = pairedOK
		event = &queue.AllocationApprovedEvent{
			EventID:     uuid.NewString(),
			RequestIDs:  [2]uint64{freshA.ID, freshB.ID},
			ResidentIDs: [2]uint64{a.Resident.ID, b.Resident.ID},
			RoomID:      locked.ID,
			HostelName:  hostel.Name,
			Score:       score.Score,
			Range:       string(score.Range),
			Source:      "reconciler",
			AllocatedAt: now.Format(time.RFC3339),
		}
		return nil
	})
	if err != nil {
		return outcome, err
	}
	if event != nil {
		s.publishApproved(ctx, *event)
	}
	return outcome, nil
}
