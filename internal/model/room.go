package model

import "time"

// Room represents a single shared room inside a hostel.  The occupied
// counter is maintained exclusively by the allocation and reallocation
// code paths; every mutation happens in the same transaction as the
// matching allocation request transition so that
// 0 <= occupied <= capacity holds at all times.  Rows live in the
// `rooms` table.
//
// Fields:
//  ID         – primary key identifier.
//  HostelID   – hostel the room belongs to.
//  RoomNumber – room label unique within the hostel.
//  Capacity   – number of bed spaces in the room.
//  Occupied   – number of currently assigned residents.
//  CreatedAt  – timestamp of creation.
//  UpdatedAt  – timestamp of last update.
type Room struct {
	ID         uint64    // rooms.id
	HostelID   uint64    // rooms.hostel_id
	RoomNumber string    // rooms.room_number
	Capacity   int       // rooms.capacity
	Occupied   int       // rooms.occupied
	CreatedAt  time.Time // rooms.created_at
	UpdatedAt  time.Time // rooms.updated_at
}

// FreeSlots returns the number of unassigned bed spaces in the room.
func (r *Room) FreeSlots() int { return r.Capacity - r.Occupied }
