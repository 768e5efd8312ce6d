package reassign_booking

// ReassignBookingRequest HTTP request model
type ReassignBookingRequest struct {
	NewHostID int64 `json:"newHostId"`
}
