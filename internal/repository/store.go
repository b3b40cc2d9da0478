package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/hostel-room-allocation/internal/allocation"
	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// Store adapts the per-entity repositories to the transactional
// interface the allocation service depends on.  It is the only place
// that begins, commits or rolls back transactions; the workflows see
// a Tx handle and never touch *sql.DB directly.
type Store struct {
	db        *sql.DB
	residents ResidentRepo
	requests  AllocationRequestRepo
	rooms     RoomRepo
	hostels   HostelRepo
	meta      MetaRepo
	pairings  PairingRepo
}

// NewStore returns a Store bound to the given database handle.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// WithinTx runs fn inside one transaction.  The transaction commits
// only when fn returns nil; otherwise it rolls back and fn's error is
// returned unchanged (already classified by the repositories).
// Commit-time conflicts are classified here so the submission retry
// loop sees them as retryable.
func (s *Store) WithinTx(ctx context.Context, fn func(tx allocation.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&storeTx{store: s, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	committed = true
	return nil
}

// ResidentByID implements allocation.Store.
func (s *Store) ResidentByID(ctx context.Context, id uint64) (*model.Resident, error) {
	return s.residents.GetByID(ctx, s.db, id)
}

// ListResidents implements allocation.Store.
func (s *Store) ListResidents(ctx context.Context, excludeID uint64) ([]model.Resident, error) {
	return s.residents.ListExcept(ctx, s.db, excludeID)
}

// StalePending implements allocation.Store.
func (s *Store) StalePending(ctx context.Context, olderThan time.Time, limit int) ([]allocation.Candidate, error) {
	return s.requests.StalePending(ctx, s.db, olderThan, limit)
}

// RecordApprovedPairing implements allocation.Store.
func (s *Store) RecordApprovedPairing(ctx context.Context, p *model.ApprovedPairing) (int, error) {
	return s.pairings.Upsert(ctx, s.db, p)
}

// storeTx is the transaction-scoped view handed to workflow closures.
type storeTx struct {
	store *Store
	tx    *sql.Tx
}

func (t *storeTx) ResidentByID(ctx context.Context, id uint64) (*model.Resident, error) {
	return t.store.residents.GetByID(ctx, t.tx, id)
}

func (t *storeTx) ActiveRequest(ctx context.Context, residentID uint64, session string) (*model.AllocationRequest, error) {
	return t.store.requests.ActiveBySession(ctx, t.tx, residentID, session)
}

func (t *storeTx) CreateRequest(ctx context.Context, req *model.AllocationRequest) error {
	return t.store.requests.Create(ctx, t.tx, req)
}

func (t *storeTx) RequestByID(ctx context.Context, id uint64) (*model.AllocationRequest, error) {
	return t.store.requests.GetByID(ctx, t.tx, id)
}

func (t *storeTx) PendingCandidates(ctx context.Context, excludeRequestID uint64) ([]allocation.Candidate, error) {
	return t.store.requests.PendingCandidates(ctx, t.tx, excludeRequestID)
}

func (t *storeTx) HostelsByType(ctx context.Context, gender string) ([]model.Hostel, error) {
	return t.store.hostels.ListByType(ctx, t.tx, gender)
}

func (t *storeTx) RoomsByHostel(ctx context.Context, hostelID uint64) ([]model.Room, error) {
	return t.store.rooms.ListByHostel(ctx, t.tx, hostelID)
}

func (t *storeTx) RoomWithHostel(ctx context.Context, roomID uint64) (*model.Room, *model.Hostel, error) {
	return t.store.rooms.GetWithHostelForUpdate(ctx, t.tx, roomID)
}

func (t *storeTx) FairnessCursor(ctx context.Context) (int, error) {
	return t.store.meta.CursorForUpdate(ctx, t.tx)
}

func (t *storeTx) SetFairnessCursor(ctx context.Context, index int) error {
	return t.store.meta.SetCursor(ctx, t.tx, index)
}

func (t *storeTx) UpdateRequest(ctx context.Context, req *model.AllocationRequest) error {
	return t.store.requests.Update(ctx, t.tx, req)
}

func (t *storeTx) AddOccupied(ctx context.Context, roomID uint64, delta int) error {
	return t.store.rooms.AddOccupied(ctx, t.tx, roomID, delta)
}

func (t *storeTx) ApprovedByRoom(ctx context.Context, roomID, excludeRequestID uint64) ([]allocation.Candidate, error) {
	return t.store.requests.ApprovedByRoom(ctx, t.tx, roomID, excludeRequestID)
}
