package enums

import "fmt"

// BookingStatus describes the allowed values for bookings.status.
type BookingStatus string

const (
	BookingStatusBookedIn           BookingStatus = "Booked In"
	BookingStatusInProgress         BookingStatus = "In Progress"
	BookingStatusAwaitingPart       BookingStatus = "Awaiting Part"
	BookingStatusReadyForCollection BookingStatus = "Ready for Collection"
	BookingStatusCompleted          BookingStatus = "Completed"
	BookingStatusCancelled          BookingStatus = "Cancelled"
)

var validBookingStatuses = []BookingStatus{
	BookingStatusBookedIn,
	BookingStatusInProgress,
	BookingStatusAwaitingPart,
	BookingStatusReadyForCollection,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

// BookingStatuses returns the full allowed status set in display order.
func BookingStatuses() []BookingStatus {
	out := make([]BookingStatus, len(validBookingStatuses))
	copy(out, validBookingStatuses)
	return out
}

// IsValid reports whether the value matches the canonical booking status enum.
func (s BookingStatus) IsValid() bool {
	for _, candidate := range validBookingStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts the raw string to BookingStatus.
func ParseBookingStatus(value string) (BookingStatus, error) {
	for _, candidate := range validBookingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking status %q", value)
}
