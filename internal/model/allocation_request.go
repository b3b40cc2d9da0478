package model

import "time"

// Allocation request status values.  A request is created pending,
// becomes approved when a room is assigned (auto-pairing or admin
// action) and may be rejected by an administrator.  At most one
// non-rejected request exists per (resident, session).
const (
	RequestPending  = "pending"  // waiting for a compatible peer and a room
	RequestApproved = "approved" // room assigned
	RequestRejected = "rejected" // closed without an assignment
)

// AllocationRequest records one resident's application for a room in a
// given academic session.  Rows live in the `allocation_requests`
// table.  Compatibility fields are only populated when the request was
// auto-paired by the matching engine; admin-created assignments leave
// them nil.
//
// Fields:
//  ID          – primary key identifier.
//  ResidentID  – resident who submitted the request.
//  Session     – academic session label (e.g. "2026").
//  Status      – one of RequestPending/RequestApproved/RequestRejected.
//  RoomID      – assigned room; nil until approved.
//  Score       – compatibility score 0..100; nil unless auto-paired.
//  Range       – compatibility range bucket; nil unless auto-paired.
//  AutoPaired  – true when the assignment came from the matching
//                engine rather than an administrator.
//  AllocatedAt – time the room was assigned; nil while pending.
//  CreatedAt   – submission timestamp; drives staleness detection.
//  UpdatedAt   – timestamp of last update.
type AllocationRequest struct {
	ID          uint64     // allocation_requests.id
	ResidentID  uint64     // allocation_requests.resident_id
	Session     string     // allocation_requests.session
	Status      string     // allocation_requests.status
	RoomID      *uint64    // allocation_requests.room_id (nullable)
	Score       *int       // allocation_requests.compatibility_score (nullable)
	Range       *string    // allocation_requests.compatibility_range (nullable)
	AutoPaired  bool       // allocation_requests.auto_paired
	AllocatedAt *time.Time // allocation_requests.allocated_at (nullable)
	CreatedAt   time.Time  // allocation_requests.created_at
	UpdatedAt   time.Time  // allocation_requests.updated_at
}
