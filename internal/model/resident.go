package model

import "time"

// Resident represents a student living (or applying to live) in one of
// the managed hostels.  Rows live in the `residents` table.  The
// personality trait columns are flattened onto the struct via the
// embedded TraitBundle; hobbies are stored as a comma-joined text
// column and split by the repository layer.
//
// Fields:
//  ID           – primary key identifier.
//  FullName     – display name of the resident.
//  MatricNumber – unique matriculation number.
//  Email        – unique email address.
//  Gender       – "male" or "female"; must match the hostel type on
//                 every allocation.
//  Traits       – personality trait bundle used by the scorer.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Resident struct {
	ID           uint64      // residents.id
	FullName     string      // residents.full_name
	MatricNumber string      // residents.matric_number
	Email        string      // residents.email
	Gender       string      // residents.gender ('male','female')
	Traits       TraitBundle // residents.trait_* columns
	CreatedAt    time.Time   // residents.created_at
	UpdatedAt    time.Time   // residents.updated_at
}

// TraitBundle groups the raw self-reported personality attributes a
// resident fills in on their profile.  Values are treated as immutable
// within a single scoring computation; profile edits happen through
// the separate profile service.  Unknown or empty categorical values
// are tolerated and normalized to a neutral midpoint by the matching
// package.
//
// Fields:
//  SleepSchedule    – 'early', 'flexible' or 'late'.
//  StudyHabits      – 'quiet', 'mixed' or 'group'.
//  CleanlinessLevel – self rating from 1 (messy) to 5 (spotless).
//  SocialPreference – 'introvert', 'balanced' or 'extrovert'.
//  NoisePreference  – 'quiet', 'tolerant' or 'noisy'.
//  Hobbies          – free-form hobby labels.
//  MusicPreference  – favourite genre, compared case-insensitively.
//  VisitorFrequency – 'rarely', 'sometimes' or 'often'.
type TraitBundle struct {
	SleepSchedule    string   // residents.trait_sleep_schedule
	StudyHabits      string   // residents.trait_study_habits
	CleanlinessLevel int      // residents.trait_cleanliness_level (1..5)
	SocialPreference string   // residents.trait_social_preference
	NoisePreference  string   // residents.trait_noise_preference
	Hobbies          []string // residents.trait_hobbies (comma-joined)
	MusicPreference  string   // residents.trait_music_preference
	VisitorFrequency string   // residents.trait_visitor_frequency
}
