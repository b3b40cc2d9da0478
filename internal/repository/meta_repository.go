package repository

import (
	"context"
	"database/sql"
	"errors"
)

// MetaRepo persists the fairness cursor as a dedicated single-key row
// in the allocation_meta table.  The cursor records the last hostel
// index used by the room selector so repeated selections rotate
// across hostels instead of always filling the first one.  It is read
// with FOR UPDATE and rewritten inside the same transaction as the
// room pick, which closes the race where two concurrent selections
// would otherwise both start from the same position.
type MetaRepo struct{}

// cursorKey is the allocation_meta row holding the rotation state.
const cursorKey = "last_hostel_index"

// CursorForUpdate reads the fairness cursor under an exclusive row
// lock.  It returns -1 when the cursor has never been written, so the
// first rotation starts at hostel index 0.
func (MetaRepo) CursorForUpdate(ctx context.Context, r runner) (int, error) {
	const q = `SELECT meta_value FROM allocation_meta WHERE meta_key = ? FOR UPDATE`
	var value int
	err := r.QueryRowContext(ctx, q, cursorKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return -1, nil
	}
	if err != nil {
		return 0, classify(err)
	}
	return value, nil
}

// SetCursor writes a new cursor position, creating the row on first
// use.
func (MetaRepo) SetCursor(ctx context.Context, r runner, index int) error {
	const q = `INSERT INTO allocation_meta (meta_key, meta_value) VALUES (?, ?)
	           ON DUPLICATE KEY UPDATE meta_value = VALUES(meta_value)`
	_, err := r.ExecContext(ctx, q, cursorKey, index)
	return classify(err)
}
