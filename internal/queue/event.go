// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// AllocationApprovedEvent is published whenever two pending requests
// are committed into the same room, either by the live submission path
// or by the reconciliation worker.  It carries enough information for
// downstream consumers to log or notify without querying the primary
// database.
type AllocationApprovedEvent struct {
	EventID     string    `json:"event_id"`
	RequestIDs  [2]uint64 `json:"request_ids"`
	ResidentIDs [2]uint64 `json:"resident_ids"`
	RoomID      uint64    `json:"room_id"`
	HostelName  string    `json:"hostel_name"`
	Score       int       `json:"compatibility_score"`
	Range       string    `json:"compatibility_range"`
	Source      string    `json:"source"` // "submission" or "reconciler"
	AllocatedAt string    `json:"allocated_at"`
}
