package allocation

import (
	"context"

	"github.com/iliyamo/hostel-room-allocation/internal/apperr"
	"github.com/iliyamo/hostel-room-allocation/internal/matching"
	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// ReallocationResult is returned to the admin collaborator after a
// successful move.
type ReallocationResult struct {
	Status    string
	RequestID uint64
	RoomID    uint64
}

// Reallocate moves an approved request to a different room inside one
// transaction.  The destination must have a free slot, admit the
// resident's gender, and every current approved occupant must score at
// least moderate against the moving resident.  On success the
// destination occupancy is incremented, the previous room (if any) is
// decremented with a floor at zero, and the request's auto-paired flag
// is cleared since this is a manual override.  On any failure the
// transaction aborts and no occupancy mutation is observable.
func (s *Service) Reallocate(ctx context.Context, requestID, targetRoomID uint64) (*ReallocationResult, error) {
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		req, err := tx.RequestByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != model.RequestApproved {
			return apperr.Validation("only approved requests can be reallocated")
		}
		if req.RoomID != nil && *req.RoomID == targetRoomID {
			return apperr.Validation("resident is already assigned to this room")
		}
		resident, err := tx.ResidentByID(ctx, req.ResidentID)
		if err != nil {
			return err
		}
		room, hostel, err := tx.RoomWithHostel(ctx, targetRoomID)
		if err != nil {
			return err
		}
		if room.FreeSlots() < 1 {
			return apperr.Validation("room %s is full", room.RoomNumber)
		}
		if hostel.Type != resident.Gender {
			return apperr.Validation("hostel %s does not admit %s residents", hostel.Name, resident.Gender)
		}

		occupants, err := tx.ApprovedByRoom(ctx, targetRoomID, req.ID)
		if err != nil {
			return err
		}
		residentNorm := matching.Normalize(resident.Traits)
		for i := range occupants {
			res := s.scorer.ScoreNormalized(residentNorm, matching.Normalize(occupants[i].Resident.Traits))
			if res.Range == matching.RangeLow {
				return apperr.Validation("compatibility with a current occupant is too low (score %d)", res.Score)
			}
		}

		if err := tx.AddOccupied(ctx, targetRoomID, 1); err != nil {
			return err
		}
		if req.RoomID != nil {
			if err := tx.AddOccupied(ctx, *req.RoomID, -1); err != nil {
				return err
			}
		}
		now := s.now().UTC()
		req.RoomID = &targetRoomID
		req.AutoPaired = false
		req.AllocatedAt = &now
		return tx.UpdateRequest(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return &ReallocationResult{
		Status:    "reallocated",
		RequestID: requestID,
		RoomID:    targetRoomID,
	}, nil
}
