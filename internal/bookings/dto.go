package bookings

import (
	"time"

	"github.com/mdewit/werkstatt-backend/pkg/enums"
	"github.com/mdewit/werkstatt-backend/pkg/types"
)

// CreateInput is the booking intake form. InventoryItemID optionally names
// one Available item to reserve atomically with the booking insert.
type CreateInput struct {
	CustomerName    string     `json:"customer_name" validate:"required"`
	CustomerPhone   *string    `json:"customer_phone,omitempty"`
	DeviceModel     string     `json:"device_model" validate:"required"`
	DeviceSerial    *string    `json:"device_serial,omitempty"`
	GPCNumber       *string    `json:"gpc_number,omitempty"`
	ZIRReference    *string    `json:"zir_reference,omitempty"`
	ReportedIssue   string     `json:"reported_issue" validate:"required"`
	Notes           *string    `json:"notes,omitempty"`
	BookingDate     types.Date `json:"booking_date,omitempty"`
	InventoryItemID *int64     `json:"inventory_item_id,omitempty"`
}

// UpdateInput is the full booking edit form; every field is replaced.
type UpdateInput struct {
	CustomerName  string  `json:"customer_name" validate:"required"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	DeviceModel   string  `json:"device_model" validate:"required"`
	DeviceSerial  *string `json:"device_serial,omitempty"`
	GPCNumber     *string `json:"gpc_number,omitempty"`
	ZIRReference  *string `json:"zir_reference,omitempty"`
	ReportedIssue string  `json:"reported_issue" validate:"required"`
	Status        string  `json:"status" validate:"required"`
	Notes         *string `json:"notes,omitempty"`
}

// StatusInput is the quick status move on the booking board.
type StatusInput struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes,omitempty"`
}

// CreateResult reports what booking creation produced.
type CreateResult struct {
	BookingID    int64 `json:"booking_id"`
	ItemReserved bool  `json:"item_reserved"`
}

// UsedPartView is one inventory item consumed by a booking.
type UsedPartView struct {
	InventoryItemID int64            `json:"inventory_item_id"`
	PartName        string           `json:"part_name"`
	PartNumber      *string          `json:"part_number"`
	SerialNumber    *string          `json:"serial_number"`
	Status          enums.ItemStatus `json:"status"`
}

// BookingView is one booking with its derived age and used parts.
type BookingView struct {
	ID             int64               `json:"id"`
	BookingDate    time.Time           `json:"booking_date"`
	CustomerName   string              `json:"customer_name"`
	CustomerPhone  *string             `json:"customer_phone"`
	DeviceModel    string              `json:"device_model"`
	DeviceSerial   *string             `json:"device_serial"`
	GPCNumber      *string             `json:"gpc_number"`
	ZIRReference   *string             `json:"zir_reference"`
	ReportedIssue  string              `json:"reported_issue"`
	Status         enums.BookingStatus `json:"status"`
	Notes          *string             `json:"notes"`
	LastUpdated    time.Time           `json:"last_updated"`
	MonthsInSystem int                 `json:"months_in_system"`
	PartsUsed      []UsedPartView      `json:"parts_used"`
}
