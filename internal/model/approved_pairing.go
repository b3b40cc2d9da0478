package model

import "time"

// ApprovedPairing records an admin-approved roommate pairing.  The two
// resident IDs are stored in ascending order so the uniqueness
// constraint on (resident_a, resident_b) is stable regardless of the
// order the pair was submitted in.  The accumulated count of these
// rows feeds the adaptive weight store.  Rows live in the
// `approved_pairings` table.
//
// Fields:
//  ID         – primary key identifier.
//  ResidentA  – smaller resident ID of the pair.
//  ResidentB  – larger resident ID of the pair.
//  ApprovedBy – administrator who approved the pairing.
//  CreatedAt  – timestamp of creation.
type ApprovedPairing struct {
	ID         uint64    // approved_pairings.id
	ResidentA  uint64    // approved_pairings.resident_a
	ResidentB  uint64    // approved_pairings.resident_b
	ApprovedBy uint64    // approved_pairings.approved_by
	CreatedAt  time.Time // approved_pairings.created_at
}
