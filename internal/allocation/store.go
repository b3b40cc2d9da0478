package allocation

import (
	"context"
	"time"

	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// Candidate pairs an allocation request with the resident who filed
// it.  Workflows score candidates against each other without issuing
// further lookups.
type Candidate struct {
	Request  model.AllocationRequest
	Resident model.Resident
}

// Store is the persistence surface the allocation service depends on.
// The MySQL implementation lives in internal/repository; tests provide
// an in-memory fake.  Implementations must mark retryable conflicts
// (deadlocks, lock wait timeouts) with the apperr Retryable marker so
// the submission retry policy stays backend-agnostic.
type Store interface {
	// WithinTx runs fn inside a single transaction.  The transaction
	// commits when fn returns nil and rolls back otherwise; no partial
	// mutation is ever observable outside it.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error

	// ResidentByID loads a resident profile outside any transaction.
	ResidentByID(ctx context.Context, id uint64) (*model.Resident, error)

	// ListResidents returns every resident except the excluded one,
	// for the suggestions query path.
	ListResidents(ctx context.Context, excludeID uint64) ([]model.Resident, error)

	// StalePending returns up to limit pending, room-less requests
	// created at or before olderThan, oldest first, joined with their
	// residents.
	StalePending(ctx context.Context, olderThan time.Time, limit int) ([]Candidate, error)

	// RecordApprovedPairing upserts an admin-approved pairing and
	// returns the total number of recorded pairings.
	RecordApprovedPairing(ctx context.Context, p *model.ApprovedPairing) (int, error)
}

// Tx is the transaction-scoped handle passed through every workflow
// step.  All reads within one Tx are consistent with its eventual
// writes.
type Tx interface {
	// ResidentByID loads a resident, or a NotFoundError.
	ResidentByID(ctx context.Context, id uint64) (*model.Resident, error)

	// ActiveRequest returns the resident's pending or approved request
	// for the session, or nil when none exists.
	ActiveRequest(ctx context.Context, residentID uint64, session string) (*model.AllocationRequest, error)

	// CreateRequest inserts a new request and populates its ID and
	// timestamps.
	CreateRequest(ctx context.Context, req *model.AllocationRequest) error

	// RequestByID loads a request, or a NotFoundError.
	RequestByID(ctx context.Context, id uint64) (*model.AllocationRequest, error)

	// PendingCandidates returns all pending, room-less requests except
	// the excluded one, in arrival order, joined with their residents.
	PendingCandidates(ctx context.Context, excludeRequestID uint64) ([]Candidate, error)

	// HostelsByType returns all hostels admitting the given gender,
	// ordered by ID so the fairness rotation is stable.
	HostelsByType(ctx context.Context, gender string) ([]model.Hostel, error)

	// RoomsByHostel returns every room of a hostel.
	RoomsByHostel(ctx context.Context, hostelID uint64) ([]model.Room, error)

	// RoomWithHostel loads a room and its hostel with an exclusive
	// row lock, so occupancy re-checks hold until commit.
	RoomWithHostel(ctx context.Context, roomID uint64) (*model.Room, *model.Hostel, error)

	// FairnessCursor reads the last hostel index used by the room
	// selector, locking it for update.  It returns -1 when the cursor
	// has never been written.
	FairnessCursor(ctx context.Context) (int, error)

	// SetFairnessCursor persists a new cursor position.
	SetFairnessCursor(ctx context.Context, index int) error

	// UpdateRequest writes back a request's mutable fields (status,
	// room, score, range, auto-paired flag, allocation time).
	UpdateRequest(ctx context.Context, req *model.AllocationRequest) error

	// AddOccupied adjusts a room's occupied counter by delta, flooring
	// at zero.
	AddOccupied(ctx context.Context, roomID uint64, delta int) error

	// ApprovedByRoom returns every approved request assigned to the
	// room except the excluded one, joined with their residents.
	ApprovedByRoom(ctx context.Context, roomID uint64, excludeRequestID uint64) ([]Candidate, error)
}
