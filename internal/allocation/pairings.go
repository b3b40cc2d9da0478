package allocation

import (
	"context"

	"github.com/iliyamo/hostel-room-allocation/internal/apperr"
	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// RecordApprovedPairing persists an admin-approved roommate pairing
// and feeds the accumulated approval count into the adaptive weight
// store.  The pair is stored in ascending ID order so repeat approvals
// of the same pair upsert rather than duplicate.  Weight tuning is
// best-effort: it is not transactionally tied to the approval write,
// and a lost nudge under contention is acceptable.
func (s *Service) RecordApprovedPairing(ctx context.Context, residentA, residentB, approvedBy uint64) error {
	if residentA == residentB {
		return apperr.Validation("cannot pair a resident with themselves")
	}
	if residentA > residentB {
		residentA, residentB = residentB, residentA
	}
	count, err := s.store.RecordApprovedPairing(ctx, &model.ApprovedPairing{
		ResidentA:  residentA,
		ResidentB:  residentB,
		ApprovedBy: approvedBy,
	})
	if err != nil {
		return err
	}
	s.weights.MaybeAdjust(count)
	return nil
}
