package domain

import "time"

// StaffPerson is a service provider listed on the team page. A person is
// linked to the catalog services they cover through a many-to-many join.
type StaffPerson struct {
	ID        int64
	FullName  string
	Email     string
	Phone     string
	Specialty string
	// PhotoPath is a sub-path relative to the static root
	// (e.g. "images/staff/sp_ab12cd34.jpg"), empty when no photo.
	PhotoPath string
	IsActive  int
	CreatedAt time.Time

	// ServiceIDs and ServiceNames are populated by list queries.
	ServiceIDs   []int64
	ServiceNames string
}
