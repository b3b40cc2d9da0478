package allocation

import (
	"context"
	"math"

	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// jitterSpan bounds the random tie-breaker added to each room's
// free-to-capacity ratio.  Without it the selector would always prefer
// the lowest-ID room among equals and load would clump.
const jitterSpan = 0.005

// selectRoomForPair chooses a room with at least minFree open slots
// for a resident of the given gender, rotating across eligible
// hostels to distribute occupancy evenly.  The rotation starts just
// after the persisted fairness cursor and tries each hostel at most
// once; within a hostel the room with the best free-slots ratio wins.
// The new cursor position is persisted inside the caller's
// transaction, in the same atomic unit as the eventual occupancy
// write.  It returns (nil, nil) when no hostel has a qualifying room.
func (s *Service) selectRoomForPair(ctx context.Context, tx Tx, gender string, minFree int) (*model.Room, error) {
	hostels, err := tx.HostelsByType(ctx, gender)
	if err != nil {
		return nil, err
	}
	if len(hostels) == 0 {
		return nil, nil
	}
	cursor, err := tx.FairnessCursor(ctx)
	if err != nil {
		return nil, err
	}
	index := cursor
	for attempt := 0; attempt < len(hostels); attempt++ {
		index = (index + 1) % len(hostels)
		rooms, err := tx.RoomsByHostel(ctx, hostels[index].ID)
		if err != nil {
			return nil, err
		}
		var best *model.Room
		bestScore := math.Inf(-1)
		for i := range rooms {
			room := &rooms[i]
			if room.Capacity <= 0 || room.FreeSlots() < minFree {
				continue
			}
			score := float64(room.FreeSlots())/float64(room.Capacity) + s.jitter()*jitterSpan
			if score > bestScore {
				bestScore = score
				best = room
			}
		}
		if best != nil {
			if err := tx.SetFairnessCursor(ctx, index); err != nil {
				return nil, err
			}
			return best, nil
		}
	}
	return nil, nil
}
