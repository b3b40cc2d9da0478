package model

import "time"

// Hostel represents a housing unit containing rooms.  Each hostel is
// restricted to a single gender; the allocation workflows refuse to
// place a resident into a hostel whose type does not match their
// gender.  Rows live in the `hostels` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique hostel name.
//  Type      – gender eligibility, 'male' or 'female'.
//  Capacity  – total number of bed spaces across all rooms.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Hostel struct {
	ID        uint64    // hostels.id
	Name      string    // hostels.name
	Type      string    // hostels.type ('male','female')
	Capacity  uint32    // hostels.capacity
	CreatedAt time.Time // hostels.created_at
	UpdatedAt time.Time // hostels.updated_at
}
