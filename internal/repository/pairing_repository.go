package repository

import (
	"context"

	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// PairingRepo persists admin-approved pairings.  The accumulated row
// count drives the adaptive weight adjustment.
type PairingRepo struct{}

// Upsert inserts an approved pairing, ignoring a repeat approval of
// the same ordered pair, and returns the total number of recorded
// pairings.  Callers are expected to order the pair (ResidentA <
// ResidentB) so the unique key is stable.
func (PairingRepo) Upsert(ctx context.Context, r runner, p *model.ApprovedPairing) (int, error) {
	const q = `INSERT INTO approved_pairings (resident_a, resident_b, approved_by) VALUES (?, ?, ?)
	           ON DUPLICATE KEY UPDATE approved_by = approved_by`
	if _, err := r.ExecContext(ctx, q, p.ResidentA, p.ResidentB, p.ApprovedBy); err != nil {
		return 0, classify(err)
	}
	const count = `SELECT COUNT(*) FROM approved_pairings`
	var total int
	if err := r.QueryRowContext(ctx, count).Scan(&total); err != nil {
		return 0, classify(err)
	}
	return total, nil
}
