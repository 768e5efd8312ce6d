package domain

import "fmt"

// BookingStatus represents the lifecycle status of a meeting booking
type BookingStatus string

const (
	StatusNewAppointment        BookingStatus = "New Appointment"
	StatusNewBooking            BookingStatus = "New Booking"
	StatusBookingStarted        BookingStatus = "Booking Started"
	StatusSaleApproved          BookingStatus = "Sale Approved"
	StatusApprovedNotSale       BookingStatus = "Booking Approved Not Sale"
	StatusCallCustomerAboutSale BookingStatus = "Call Customer About Sale"
	StatusNoAnswer1to3          BookingStatus = "No Answer 1-3"
	StatusNoAnswer4to5          BookingStatus = "No Answer 4-5"
	StatusCustomerUnsure        BookingStatus = "Customer Unsure"
	StatusNoContactAboutOffer   BookingStatus = "No Contact About Offer"
	StatusCancelled             BookingStatus = "Cancelled"
	StatusOptimisingNotPossible BookingStatus = "Optimising Not Possible"
	StatusNotPossible           BookingStatus = "Not Possible"
	StatusRebook                BookingStatus = "Rebook"
	StatusRebookEarlier         BookingStatus = "Rebook Earlier"
	StatusConsentSentAwaiting   BookingStatus = "Consent Sent Awaiting"
	StatusCompleted             BookingStatus = "Completed"
)

// AllStatuses every status a booking may be moved to
var AllStatuses = []BookingStatus{
	StatusNewAppointment,
	StatusNewBooking,
	StatusBookingStarted,
	StatusSaleApproved,
	StatusApprovedNotSale,
	StatusCallCustomerAboutSale,
	StatusNoAnswer1to3,
	StatusNoAnswer4to5,
	StatusCustomerUnsure,
	StatusNoContactAboutOffer,
	StatusCancelled,
	StatusOptimisingNotPossible,
	StatusNotPossible,
	StatusRebook,
	StatusRebookEarlier,
	StatusConsentSentAwaiting,
	StatusCompleted,
}

// FinalizedStatuses terminal statuses: no reschedule, reassign or status change is allowed
var FinalizedStatuses = []BookingStatus{
	StatusCancelled,
	StatusSaleApproved,
	StatusApprovedNotSale,
	StatusNotPossible,
	StatusCompleted,
}

// IsFinalized returns true for terminal statuses
func (s BookingStatus) IsFinalized() bool {
	for _, f := range FinalizedStatuses {
		if s == f {
			return true
		}
	}
	return false
}

// IsValid returns true if the status belongs to the closed vocabulary
func (s BookingStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseBookingStatus converts a raw string into a known status
func ParseBookingStatus(raw string) (BookingStatus, error) {
	status := BookingStatus(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown booking status %q", raw)
	}
	return status, nil
}

// FinalizedStatusStrings returns finalized statuses as strings for SQL filters
func FinalizedStatusStrings() []string {
	out := make([]string, len(FinalizedStatuses))
	for i, s := range FinalizedStatuses {
		out[i] = string(s)
	}
	return out
}

// FinalizedError a mutation was attempted on a booking in a terminal status
type FinalizedError struct {
	Status BookingStatus
}

func (e *FinalizedError) Error() string {
	return fmt.Sprintf("Cannot modify booking with status '%s'", e.Status)
}

// EnsureMutable returns *FinalizedError for finalized bookings
func (b *Booking) EnsureMutable() error {
	if b.IsFinalized() {
		return &FinalizedError{Status: b.Status}
	}
	return nil
}
