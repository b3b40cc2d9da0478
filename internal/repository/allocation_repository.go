package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hostel-room-allocation/internal/allocation"
	"github.com/iliyamo/hostel-room-allocation/internal/apperr"
	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// AllocationRequestRepo persists allocation requests.  The table
// carries a generated `active` column (1 while status <> 'rejected')
// included in a unique key with (resident_id, session), so the
// single-active-request invariant is enforced both by the workflow's
// explicit check and by the database under race.
type AllocationRequestRepo struct{}

const requestColumns = `id, resident_id, session, status, room_id,
       compatibility_score, compatibility_range, auto_paired, allocated_at,
       created_at, updated_at`

// Create inserts a pending request and populates its ID and
// timestamps.  A duplicate-key violation surfaces as the same
// validation error the explicit uniqueness check raises.
func (AllocationRequestRepo) Create(ctx context.Context, r runner, req *model.AllocationRequest) error {
	const q = `INSERT INTO allocation_requests (resident_id, session, status) VALUES (?, ?, ?)`
	result, err := r.ExecContext(ctx, q, req.ResidentID, req.Session, req.Status)
	if err != nil {
		if isDuplicate(err) {
			return apperr.Validation("duplicate request for session %s", req.Session)
		}
		return classify(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return classify(err)
	}
	req.ID = uint64(id)
	// Read the row back so created_at/updated_at reflect the database
	// defaults.
	const sel = `SELECT created_at, updated_at FROM allocation_requests WHERE id = ?`
	if err := r.QueryRowContext(ctx, sel, req.ID).Scan(&req.CreatedAt, &req.UpdatedAt); err != nil {
		return classify(err)
	}
	return nil
}

// GetByID loads one request.  A missing row becomes a NotFoundError.
func (AllocationRequestRepo) GetByID(ctx context.Context, r runner, id uint64) (*model.AllocationRequest, error) {
	const q = `SELECT ` + requestColumns + ` FROM allocation_requests WHERE id = ?`
	req, err := scanRequest(r.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("allocation request")
	}
	if err != nil {
		return nil, classify(err)
	}
	return req, nil
}

// ActiveBySession returns the resident's pending or approved request
// for the session, or nil when none exists.
func (AllocationRequestRepo) ActiveBySession(ctx context.Context, r runner, residentID uint64, session string) (*model.AllocationRequest, error) {
	const q = `SELECT ` + requestColumns + ` FROM allocation_requests
	           WHERE resident_id = ? AND session = ? AND status IN ('pending','approved')
	           LIMIT 1`
	req, err := scanRequest(r.QueryRowContext(ctx, q, residentID, session))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return req, nil
}

// Update writes back the mutable fields of a request.
func (AllocationRequestRepo) Update(ctx context.Context, r runner, req *model.AllocationRequest) error {
	const q = `UPDATE allocation_requests
	           SET status = ?, room_id = ?, compatibility_score = ?,
	               compatibility_range = ?, auto_paired = ?, allocated_at = ?
	           WHERE id = ?`
	_, err := r.ExecContext(ctx, q, req.Status, req.RoomID, req.Score, req.Range,
		req.AutoPaired, req.AllocatedAt, req.ID)
	return classify(err)
}

// PendingCandidates returns pending, room-less requests except
// excludeID, oldest submission first, each joined with its resident.
// Arrival order matters: the submission workflow pairs with the first
// qualifying peer, not the best one, so long waiters get priority.
func (rep AllocationRequestRepo) PendingCandidates(ctx context.Context, r runner, excludeID uint64) ([]allocation.Candidate, error) {
	const q = `SELECT ` + candidateColumns + `
	           FROM allocation_requests ar
	           JOIN residents res ON res.id = ar.resident_id
	           WHERE ar.status = 'pending' AND ar.room_id IS NULL AND ar.id <> ?
	           ORDER BY ar.created_at, ar.id`
	return rep.queryCandidates(ctx, r, q, excludeID)
}

// ApprovedByRoom returns the approved requests currently assigned to
// a room, except excludeID, each joined with its resident.  The
// reallocation workflow scores the moving resident against every row
// returned here.
func (rep AllocationRequestRepo) ApprovedByRoom(ctx context.Context, r runner, roomID, excludeID uint64) ([]allocation.Candidate, error) {
	const q = `SELECT ` + candidateColumns + `
	           FROM allocation_requests ar
	           JOIN residents res ON res.id = ar.resident_id
	           WHERE ar.status = 'approved' AND ar.room_id = ? AND ar.id <> ?
	           ORDER BY ar.id`
	return rep.queryCandidates(ctx, r, q, roomID, excludeID)
}

// StalePending returns up to limit pending, room-less requests created
// at or before cutoff, oldest first, for the reconciliation worker.
func (rep AllocationRequestRepo) StalePending(ctx context.Context, r runner, cutoff time.Time, limit int) ([]allocation.Candidate, error) {
	const q = `SELECT ` + candidateColumns + `
	           FROM allocation_requests ar
	           JOIN residents res ON res.id = ar.resident_id
	           WHERE ar.status = 'pending' AND ar.room_id IS NULL AND ar.created_at <= ?
	           ORDER BY ar.created_at, ar.id
	           LIMIT ?`
	return rep.queryCandidates(ctx, r, q, cutoff, limit)
}

// candidateColumns selects a request joined with its resident, in
// scanCandidate order.
const candidateColumns = `ar.id, ar.resident_id, ar.session, ar.status, ar.room_id,
       ar.compatibility_score, ar.compatibility_range, ar.auto_paired, ar.allocated_at,
       ar.created_at, ar.updated_at,
       res.id, res.full_name, res.matric_number, res.email, res.gender,
       res.trait_sleep_schedule, res.trait_study_habits, res.trait_cleanliness_level,
       res.trait_social_preference, res.trait_noise_preference, res.trait_hobbies,
       res.trait_music_preference, res.trait_visitor_frequency,
       res.created_at, res.updated_at`

func (AllocationRequestRepo) queryCandidates(ctx context.Context, r runner, q string, args ...interface{}) ([]allocation.Candidate, error) {
	rows, err := r.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := make([]allocation.Candidate, 0)
	for rows.Next() {
		var (
			c       allocation.Candidate
			hobbies sql.NullString
		)
		if err := rows.Scan(
			&c.Request.ID, &c.Request.ResidentID, &c.Request.Session, &c.Request.Status,
			&c.Request.RoomID, &c.Request.Score, &c.Request.Range, &c.Request.AutoPaired,
			&c.Request.AllocatedAt, &c.Request.CreatedAt, &c.Request.UpdatedAt,
			&c.Resident.ID, &c.Resident.FullName, &c.Resident.MatricNumber, &c.Resident.Email,
			&c.Resident.Gender, &c.Resident.Traits.SleepSchedule, &c.Resident.Traits.StudyHabits,
			&c.Resident.Traits.CleanlinessLevel, &c.Resident.Traits.SocialPreference,
			&c.Resident.Traits.NoisePreference, &hobbies, &c.Resident.Traits.MusicPreference,
			&c.Resident.Traits.VisitorFrequency, &c.Resident.CreatedAt, &c.Resident.UpdatedAt,
		); err != nil {
			return nil, classify(err)
		}
		c.Resident.Traits.Hobbies = splitHobbies(hobbies)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func scanRequest(row rowScanner) (*model.AllocationRequest, error) {
	var req model.AllocationRequest
	err := row.Scan(
		&req.ID, &req.ResidentID, &req.Session, &req.Status, &req.RoomID,
		&req.Score, &req.Range, &req.AutoPaired, &req.AllocatedAt,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
