package repository

import (
	"context"

	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// HostelRepo reads hostels.  Hostel creation and capacity edits happen
// through the out-of-scope admin surface; the allocation engine only
// lists them for the fairness rotation.
type HostelRepo struct{}

// ListByType returns every hostel admitting the given gender, ordered
// by ID.  The fixed ordering is what makes the persisted fairness
// cursor meaningful across calls.
func (HostelRepo) ListByType(ctx context.Context, r runner, gender string) ([]model.Hostel, error) {
	const q = `SELECT id, name, type, capacity, created_at, updated_at
	           FROM hostels WHERE type = ? ORDER BY id`
	rows, err := r.QueryContext(ctx, q, gender)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := make([]model.Hostel, 0)
	for rows.Next() {
		var h model.Hostel
		if err := rows.Scan(&h.ID, &h.Name, &h.Type, &h.Capacity, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, classify(err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}
