package domain

import (
	"fmt"
	"strings"
)

// ConflictType identifies which availability source rejected the slot
type ConflictType string

const (
	ConflictBlockedSlot      ConflictType = "blocked_slot"
	ConflictDateOverride     ConflictType = "date_override"
	ConflictWorkingHours     ConflictType = "working_hours"
	ConflictBooking          ConflictType = "booking_conflict"
	ConflictCalendarEvent    ConflictType = "calendar_event"
	ConflictBufferTime       ConflictType = "buffer_time"
	ConflictAvailabilityRule ConflictType = "availability_rule"
)

// Conflict a single reason why a member cannot take the slot
type Conflict struct {
	Type      ConflictType
	Message   string
	BookingID *int64 // set for booking and buffer conflicts
}

// AvailabilityResult outcome of a member availability check.
// Reason mirrors the first conflict's message.
type AvailabilityResult struct {
	Available bool
	Conflicts []Conflict
	Reason    string
}

// NewAvailabilityResult builds a result from the ordered conflict list
func NewAvailabilityResult(conflicts []Conflict) *AvailabilityResult {
	if conflicts == nil {
		conflicts = []Conflict{}
	}
	result := &AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}
	if len(conflicts) > 0 {
		result.Reason = conflicts[0].Message
	}
	return result
}

// ConflictTypes returns the types of all conflicts in order
func (r *AvailabilityResult) ConflictTypes() []string {
	out := make([]string, len(r.Conflicts))
	for i, c := range r.Conflicts {
		out[i] = string(c.Type)
	}
	return out
}

// UnavailableMember a member who failed the availability check
type UnavailableMember struct {
	MemberID int64
	Name     string
	Result   *AvailabilityResult
}

// AvailabilityError carries every unavailable member with their conflicts.
// Team errors always name the participants, even when only one is unavailable.
type AvailabilityError struct {
	Members []UnavailableMember
	Team    bool
}

// Error formats a single-member failure as its reason and a team failure as
// "Some participants are not available: name: reason; name: reason"
func (e *AvailabilityError) Error() string {
	if len(e.Members) == 1 && !e.Team {
		return e.Members[0].Result.Reason
	}

	parts := make([]string, 0, len(e.Members))
	for _, m := range e.Members {
		parts = append(parts, fmt.Sprintf("%s: %s", m.Name, m.Result.Reason))
	}
	return "Some participants are not available: " + strings.Join(parts, "; ")
}

// StorageOverlapMessage reported when the database exclusion guard rejects a host assignment
const StorageOverlapMessage = "Conflicts with an existing booking"

// NewStorageOverlapError attributes a storage-level overlap rejection to the hosts
func NewStorageOverlapError(hosts []*Member) *AvailabilityError {
	result := NewAvailabilityResult([]Conflict{{Type: ConflictBooking, Message: StorageOverlapMessage}})
	members := make([]UnavailableMember, 0, len(hosts))
	for _, h := range hosts {
		members = append(members, UnavailableMember{MemberID: h.ID, Name: h.DisplayName(), Result: result})
	}
	return &AvailabilityError{Members: members}
}
