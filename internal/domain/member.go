package domain

import "time"

// Member a staff identity that can host or join meetings
type Member struct {
	ID        int64
	FullName  string
	Email     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName falls back to the email when no name is set
func (m *Member) DisplayName() string {
	if m.FullName != "" {
		return m.FullName
	}
	return m.Email
}

// Department a team of members with an optional leader
type Department struct {
	ID       int64
	Name     string
	LeaderID *int64
	IsActive bool
}

// MeetingType a bookable meeting kind within a department
type MeetingType struct {
	ID              int64
	DepartmentID    int64
	Name            string
	DurationMinutes int
	IsInternal      bool // team meetings only
	IsActive        bool
}
