package allocation

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/hostel-room-allocation/internal/apperr"
	"github.com/iliyamo/hostel-room-allocation/internal/matching"
	"github.com/iliyamo/hostel-room-allocation/internal/model"
	"github.com/iliyamo/hostel-room-allocation/internal/queue"
)

// pairSlots is the number of free bed spaces a room must offer before
// two requests can be paired into it.
const pairSlots = 2

// maxSubmitAttempts bounds the whole-workflow retry loop.  Delays
// between attempts come from retryDelays; after the final attempt the
// caller receives the conflict error instead of retrying forever.
const maxSubmitAttempts = 3

var retryDelays = []time.Duration{
	50 * time.Millisecond,
	100 * time.Millisecond,
	200 * time.Millisecond,
}

// SubmissionResult is what the HTTP collaborator renders after a
// submission.  Score and Range are only set when the request was
// auto-paired in this call.
type SubmissionResult struct {
	RequestID  uint64
	Status     string
	AutoPaired bool
	RoomID     *uint64
	Score      *int
	Range      *matching.Range
}

// Submit runs the allocation submission workflow for a resident and
// academic session.  Inside one transaction it enforces the
// single-active-request rule, inserts a pending request, scans other
// pending room-less requests in arrival order for the first high or
// veryHigh peer, and on a match picks a room through the fairness
// selector and approves both requests atomically.  Failing to find a
// peer or a room is not an error: the request simply stays pending for
// a later submission or the reconciliation worker.  Transient
// persistence conflicts retry the entire workflow with backoff.
func (s *Service) Submit(ctx context.Context, residentID uint64, session string) (*SubmissionResult, error) {
	if session == "" {
		session = strconv.Itoa(s.now().Year())
	}
	var (
		result *SubmissionResult
		err    error
	)
	for attempt := 1; attempt <= maxSubmitAttempts; attempt++ {
		result, err = s.submitOnce(ctx, residentID, session)
		if err == nil || !apperr.IsRetryable(err) {
			return result, err
		}
		if attempt == maxSubmitAttempts {
			break
		}
		s.log.Warn("submission hit transient conflict, retrying",
			zap.Uint64("resident_id", residentID),
			zap.Int("attempt", attempt),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelays[attempt-1]):
		}
	}
	return nil, err
}

// submitOnce is a single transactional attempt of the workflow.  The
// pairing event, if any, is published only after the transaction has
// committed.
func (s *Service) submitOnce(ctx context.Context, residentID uint64, session string) (*SubmissionResult, error) {
	var (
		result SubmissionResult
		event  *queue.AllocationApprovedEvent
	)
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		resident, err := tx.ResidentByID(ctx, residentID)
		if err != nil {
			return err
		}
		existing, err := tx.ActiveRequest(ctx, residentID, session)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.Validation("duplicate request for session %s", session)
		}

		req := &model.AllocationRequest{
			ResidentID: residentID,
			Session:    session,
			Status:     model.RequestPending,
		}
		if err := tx.CreateRequest(ctx, req); err != nil {
			return err
		}
		result = SubmissionResult{RequestID: req.ID, Status: req.Status}

		peers, err := tx.PendingCandidates(ctx, req.ID)
		if err != nil {
			return err
		}
		residentNorm := matching.Normalize(resident.Traits)
		var (
			peer  *Candidate
			score matching.Result
		)
		for i := range peers {
			if peers[i].Resident.Gender != resident.Gender {
				continue
			}
			r := s.scorer.ScoreNormalized(residentNorm, matching.Normalize(peers[i].Resident.Traits))
			if r.Range.Pairable() {
				peer = &peers[i]
				score = r
				break
			}
		}
		if peer == nil {
			return nil
		}

		room, err := s.selectRoomForPair(ctx, tx, resident.Gender, pairSlots)
		if err != nil || room == nil {
			return err
		}
		// Re-check under the row lock: the selector's view may already
		// be behind a concurrent commit.
		locked, hostel, err := tx.RoomWithHostel(ctx, room.ID)
		if err != nil {
			return err
		}
		if locked.FreeSlots() < pairSlots || hostel.Type != resident.Gender {
			return nil
		}

		now := s.now().UTC()
		approveRequest(req, locked.ID, score, now)
		approveRequest(&peer.Request, locked.ID, score, now)
		if err := tx.UpdateRequest(ctx, req); err != nil {
			return err
		}
		if err := tx.UpdateRequest(ctx, &peer.Request); err != nil {
			return err
		}
		if err := tx.AddOccupied(ctx, locked.ID, pairSlots); err != nil {
			return err
		}

		result = SubmissionResult{
			RequestID:  req.ID,
			Status:     req.Status,
			AutoPaired: true,
			RoomID:     req.RoomID,
			Score:      req.Score,
			Range:      (*matching.Range)(req.Range),
		}
		event = &queue.AllocationApprovedEvent{
			EventID:     uuid.NewString(),
			RequestIDs:  [2]uint64{req.ID, peer.Request.ID},
			ResidentIDs: [2]uint64{residentID, peer.Resident.ID},
			RoomID:      locked.ID,
			HostelName:  hostel.Name,
			Score:       score.Score,
			Range:       string(score.Range),
			Source:      "submission",
			AllocatedAt: now.Format(time.RFC3339),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if event != nil {
		s.publishApproved(ctx, *event)
	}
	return &result, nil
}

// approveRequest applies the approved-with-room transition shared by
// the submission and reconciliation paths.
func approveRequest(req *model.AllocationRequest, roomID uint64, score matching.Result, at time.Time) {
	rng := string(score.Range)
	sc := score.Score
	req.RoomID = &roomID
	req.Status = model.RequestApproved
	req.AutoPaired = true
	req.Score = &sc
	req.Range = &rng
	req.AllocatedAt = &at
}
