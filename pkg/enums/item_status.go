package enums

import "fmt"

// ItemStatus describes the allowed values for inventory_items.status.
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "Available"
	ItemStatusReserved  ItemStatus = "Reserved"
	ItemStatusInstalled ItemStatus = "Installed"
	ItemStatusBroken    ItemStatus = "Broken"
	ItemStatusReturned  ItemStatus = "Returned"
)

var validItemStatuses = []ItemStatus{
	ItemStatusAvailable,
	ItemStatusReserved,
	ItemStatusInstalled,
	ItemStatusBroken,
	ItemStatusReturned,
}

// ItemStatuses returns the full allowed status set in display order.
func ItemStatuses() []ItemStatus {
	out := make([]ItemStatus, len(validItemStatuses))
	copy(out, validItemStatuses)
	return out
}

// IsValid reports whether the value matches the canonical item status enum.
func (s ItemStatus) IsValid() bool {
	for _, candidate := range validItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func (s ItemStatus) String() string {
	return string(s)
}

// ParseItemStatus converts the raw string to ItemStatus.
func ParseItemStatus(value string) (ItemStatus, error) {
	for _, candidate := range validItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item status %q", value)
}
