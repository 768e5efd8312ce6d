package domain

// Roles known to the capability checks
const (
	RoleSystemManager    = "System Manager"
	RoleDepartmentLeader = "Department Leader"
	RoleDepartmentMember = "Department Member"
)

// Actor the caller of an operation, resolved by the API layer
type Actor struct {
	UserID         int64
	Roles          []string
	LedDepartments []int64
}

// HasRole returns true if the actor has the role
func (a *Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsSystemManager returns true for platform administrators
func (a *Actor) IsSystemManager() bool {
	return a.HasRole(RoleSystemManager)
}

// LeadsDepartment returns true if the actor leads the department
func (a *Actor) LeadsDepartment(departmentID int64) bool {
	for _, id := range a.LedDepartments {
		if id == departmentID {
			return true
		}
	}
	return false
}

// LeadsAnyOf returns true if the actor leads at least one of the departments
func (a *Actor) LeadsAnyOf(departmentIDs []int64) bool {
	for _, id := range departmentIDs {
		if a.LeadsDepartment(id) {
			return true
		}
	}
	return false
}

// CanManageDepartment system managers and department leaders
func (a *Actor) CanManageDepartment(departmentID int64) bool {
	return a.IsSystemManager() || a.LeadsDepartment(departmentID)
}

// CanManageBooking hosts, department leaders and system managers
func (a *Actor) CanManageBooking(b *Booking) bool {
	return a.CanManageDepartment(b.DepartmentID) || b.IsHost(a.UserID)
}

// CanViewBooking adds internal participants to the managers of the booking
func (a *Actor) CanViewBooking(b *Booking) bool {
	return a.CanManageBooking(b) || b.IsInternalParticipant(a.UserID)
}

// CanRescheduleBooking team meetings may be moved by hosts only, others also by internal participants
func (a *Actor) CanRescheduleBooking(b *Booking) bool {
	if a.CanManageBooking(b) {
		return true
	}
	return !b.IsInternal && b.IsInternalParticipant(a.UserID)
}

// CanReassignBooking system managers and leaders of the booking's department
func (a *Actor) CanReassignBooking(b *Booking) bool {
	return a.CanManageDepartment(b.DepartmentID)
}

// Roles recorded in cancellation metadata
const (
	ActingRoleSystemManager    = "System Manager"
	ActingRoleDepartmentLeader = "Department Leader"
	ActingRoleHost             = "Host"
	ActingRoleUser             = "User"
	ActingRoleCustomer         = "Customer"
)

// ActingRoleFor the strongest role the actor holds for the booking
func (a *Actor) ActingRoleFor(b *Booking) string {
	switch {
	case a.IsSystemManager():
		return ActingRoleSystemManager
	case a.LeadsDepartment(b.DepartmentID):
		return ActingRoleDepartmentLeader
	case b.IsHost(a.UserID):
		return ActingRoleHost
	default:
		return ActingRoleUser
	}
}
