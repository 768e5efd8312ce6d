package domain

import "time"

// ParticipantType distinguishes staff participants from outside guests
type ParticipantType string

const (
	ParticipantInternal ParticipantType = "Internal"
	ParticipantExternal ParticipantType = "External"
)

// ResponseStatus participant's answer to the invitation
type ResponseStatus string

const (
	ResponsePending  ResponseStatus = "Pending"
	ResponseAccepted ResponseStatus = "Accepted"
	ResponseDeclined ResponseStatus = "Declined"
)

// History actions
const (
	ActionCreated       = "Created"
	ActionRescheduled   = "Rescheduled"
	ActionReassigned    = "Reassigned"
	ActionStatusChanged = "Status Changed"
	ActionCancelled     = "Cancelled"
)

// AssignedUser a host of the booking
type AssignedUser struct {
	ID            int64
	BookingID     int64
	MemberID      int64
	IsPrimaryHost bool
}

// Participant a meeting attendee (internal member or external guest)
type Participant struct {
	ID              int64
	BookingID       int64
	MemberID        *int64  // set for Internal participants
	Email           *string // set for External participants
	ParticipantType ParticipantType
	ResponseStatus  ResponseStatus
}

// HistoryEntry immutable audit record appended on every mutation
type HistoryEntry struct {
	ID          int64
	BookingID   int64
	Action      string
	PerformedBy int64
	PerformedAt time.Time
	OldValue    *string
	NewValue    *string
}

// Booking a scheduled meeting with its hosts, participants and audit trail
type Booking struct {
	ID              int64
	DepartmentID    int64
	MeetingTypeID   int64
	IsInternal      bool // team meeting: never reassignable
	Status          BookingStatus
	Title           string
	StartDatetime   time.Time
	EndDatetime     time.Time
	DurationMinutes int
	CustomerID      *int64
	Notes           *string

	CancelToken     string
	RescheduleToken string

	CancellationReason *string
	CancelledByRole    *string
	CancelledAt        *time.Time

	AssignedUsers []AssignedUser
	Participants  []Participant
	History       []HistoryEntry

	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFinalized returns true if the booking is in a terminal status
func (b *Booking) IsFinalized() bool {
	return b.Status.IsFinalized()
}

// PrimaryHost returns the flagged primary host, falling back to the first assigned user
func (b *Booking) PrimaryHost() (AssignedUser, bool) {
	for _, au := range b.AssignedUsers {
		if au.IsPrimaryHost {
			return au, true
		}
	}
	if len(b.AssignedUsers) > 0 {
		return b.AssignedUsers[0], true
	}
	return AssignedUser{}, false
}

// HostIDs returns member IDs of all hosts in assignment order
func (b *Booking) HostIDs() []int64 {
	ids := make([]int64, 0, len(b.AssignedUsers))
	for _, au := range b.AssignedUsers {
		ids = append(ids, au.MemberID)
	}
	return ids
}

// IsHost returns true if the member is one of the hosts
func (b *Booking) IsHost(memberID int64) bool {
	for _, au := range b.AssignedUsers {
		if au.MemberID == memberID {
			return true
		}
	}
	return false
}

// InternalParticipantIDs returns member IDs of internal participants
func (b *Booking) InternalParticipantIDs() []int64 {
	ids := make([]int64, 0, len(b.Participants))
	for _, p := range b.Participants {
		if p.ParticipantType == ParticipantInternal && p.MemberID != nil {
			ids = append(ids, *p.MemberID)
		}
	}
	return ids
}

// IsInternalParticipant returns true if the member participates internally
func (b *Booking) IsInternalParticipant(memberID int64) bool {
	for _, id := range b.InternalParticipantIDs() {
		if id == memberID {
			return true
		}
	}
	return false
}

// ReplacePrimaryHost swaps the primary host row for the new member.
// If the new member was already a secondary host, that row is removed.
func (b *Booking) ReplacePrimaryHost(newHostID int64) (oldHostID int64) {
	primary, ok := b.PrimaryHost()
	if ok {
		oldHostID = primary.MemberID
	}

	updated := make([]AssignedUser, 0, len(b.AssignedUsers)+1)
	replaced := false
	for _, au := range b.AssignedUsers {
		switch {
		case ok && !replaced && au.MemberID == primary.MemberID:
			updated = append(updated, AssignedUser{BookingID: b.ID, MemberID: newHostID, IsPrimaryHost: true})
			replaced = true
		case au.MemberID == newHostID:
			continue
		default:
			updated = append(updated, au)
		}
	}
	if !replaced {
		updated = append([]AssignedUser{{BookingID: b.ID, MemberID: newHostID, IsPrimaryHost: true}}, updated...)
	}

	b.AssignedUsers = updated
	return oldHostID
}

// AppendHistory records a mutation in the audit trail
func (b *Booking) AppendHistory(action string, performedBy int64, at time.Time, oldValue, newValue *string) HistoryEntry {
	entry := HistoryEntry{
		BookingID:   b.ID,
		Action:      action,
		PerformedBy: performedBy,
		PerformedAt: at,
		OldValue:    oldValue,
		NewValue:    newValue,
	}
	b.History = append(b.History, entry)
	return entry
}

// MemberRole how a member is attached to a booking
type MemberRole string

const (
	RoleHost        MemberRole = "host"
	RoleParticipant MemberRole = "participant"
)

// MemberBooking an active booking as seen from one member's calendar.
// The same booking may appear twice (host and participant); callers de-duplicate.
type MemberBooking struct {
	BookingID     int64
	StartDatetime time.Time
	EndDatetime   time.Time
	Role          MemberRole
}

// MemberBookingsFilter filter for listing bookings of a member
type MemberBookingsFilter struct {
	MemberID        int64
	From            *time.Time     // start_datetime >= From
	To              *time.Time     // start_datetime < To
	Status          *BookingStatus // exact status filter
	IncludeInactive bool           // include finalized bookings
}
