package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hostel-room-allocation/internal/apperr"
	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

// ResidentRepo reads resident profiles and their personality traits.
// Residents are written by the out-of-scope profile service; the
// allocation engine only ever reads them.
type ResidentRepo struct{}

// residentColumns is the column list shared by every resident query,
// in scanResident order.
const residentColumns = `id, full_name, matric_number, email, gender,
       trait_sleep_schedule, trait_study_habits, trait_cleanliness_level,
       trait_social_preference, trait_noise_preference, trait_hobbies,
       trait_music_preference, trait_visitor_frequency,
       created_at, updated_at`

// GetByID loads one resident.  A missing row becomes a NotFoundError.
func (ResidentRepo) GetByID(ctx context.Context, r runner, id uint64) (*model.Resident, error) {
	const q = `SELECT ` + residentColumns + ` FROM residents WHERE id = ?`
	res, err := scanResident(r.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("resident")
	}
	if err != nil {
		return nil, classify(err)
	}
	return res, nil
}

// ListExcept returns every resident other than excludeID, ordered by
// ID for deterministic suggestion output.
func (ResidentRepo) ListExcept(ctx context.Context, r runner, excludeID uint64) ([]model.Resident, error) {
	const q = `SELECT ` + residentColumns + ` FROM residents WHERE id <> ? ORDER BY id`
	rows, err := r.QueryContext(ctx, q, excludeID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := make([]model.Resident, 0)
	for rows.Next() {
		res, err := scanResident(rows)
		if err != nil {
			return nil, classify(err)
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanResident scans one resident row, splitting the comma-joined
// hobbies column back into a slice.
func scanResident(row rowScanner) (*model.Resident, error) {
	var (
		res     model.Resident
		hobbies sql.NullString
	)
	err := row.Scan(
		&res.ID, &res.FullName, &res.MatricNumber, &res.Email, &res.Gender,
		&res.Traits.SleepSchedule, &res.Traits.StudyHabits, &res.Traits.CleanlinessLevel,
		&res.Traits.SocialPreference, &res.Traits.NoisePreference, &hobbies,
		&res.Traits.MusicPreference, &res.Traits.VisitorFrequency,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.Traits.Hobbies = splitHobbies(hobbies)
	return &res, nil
}

func splitHobbies(col sql.NullString) []string {
	if !col.Valid || strings.TrimSpace(col.String) == "" {
		return nil
	}
	parts := strings.Split(col.String, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
