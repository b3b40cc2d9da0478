package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hostel-room-allocation/internal/apperr"
	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// RoomRepo reads rooms and maintains their occupancy counters.  Every
// occupancy mutation happens inside a transaction driven by the
// allocation workflows, paired with the matching request transition.
type RoomRepo struct{}

// ListByHostel returns all rooms of a hostel ordered by ID.
func (RoomRepo) ListByHostel(ctx context.Context, r runner, hostelID uint64) ([]model.Room, error) {
	const q = `SELECT id, hostel_id, room_number, capacity, occupied, created_at, updated_at
	           FROM rooms WHERE hostel_id = ? ORDER BY id`
	rows, err := r.QueryContext(ctx, q, hostelID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.HostelID, &rm.RoomNumber, &rm.Capacity, &rm.Occupied,
			&rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, classify(err)
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// GetWithHostelForUpdate loads a room and its hostel, taking an
// exclusive row lock on the room so that capacity re-checks performed
// by the caller stay valid until the transaction commits.  A missing
// room becomes a NotFoundError.
func (RoomRepo) GetWithHostelForUpdate(ctx context.Context, r runner, roomID uint64) (*model.Room, *model.Hostel, error) {
	const q = `SELECT rm.id, rm.hostel_id, rm.room_number, rm.capacity, rm.occupied,
	                  rm.created_at, rm.updated_at,
	                  h.id, h.name, h.type, h.capacity, h.created_at, h.updated_at
	           FROM rooms rm
	           JOIN hostels h ON h.id = rm.hostel_id
	           WHERE rm.id = ?
	           FOR UPDATE`
	var (
		rm model.Room
		h  model.Hostel
	)
	err := r.QueryRowContext(ctx, q, roomID).Scan(
		&rm.ID, &rm.HostelID, &rm.RoomNumber, &rm.Capacity, &rm.Occupied,
		&rm.CreatedAt, &rm.UpdatedAt,
		&h.ID, &h.Name, &h.Type, &h.Capacity, &h.CreatedAt, &h.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, apperr.NotFound("room")
	}
	if err != nil {
		return nil, nil, classify(err)
	}
	return &rm, &h, nil
}

// AddOccupied adjusts a room's occupied counter by delta.  Negative
// deltas floor at zero so a stray decrement can never drive the
// counter below an empty room.  RowsAffected is not consulted: MySQL
// reports zero both for a missing row and for a no-op floor, and the
// workflows have already loaded the room under lock.
func (RoomRepo) AddOccupied(ctx context.Context, r runner, roomID uint64, delta int) error {
	const q = `UPDATE rooms SET occupied = GREATEST(0, occupied + ?) WHERE id = ?`
	if _, err := r.ExecContext(ctx, q, delta, roomID); err != nil {
		return classify(err)
	}
	return nil
}
