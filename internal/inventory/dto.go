package inventory

import (
	"time"

	"github.com/mdewit/werkstatt-backend/pkg/enums"
)

// ListFilter holds the optional equality filters for the inventory
// overview. Empty fields mean "no filter"; set fields are AND-combined.
type ListFilter struct {
	Brand    string
	Model    string
	Category string
	Status   string
}

// ItemView is one inventory row with its catalog and order context joined
// in, plus the derived age.
type ItemView struct {
	ID              int64            `json:"id"`
	PartTypeID      int64            `json:"part_type_id"`
	PartName        string           `json:"part_name"`
	PartNumber      *string          `json:"part_number"`
	Artikelnummer   *string          `json:"artikelnummer"`
	Brand           *string          `json:"brand"`
	Model           *string          `json:"model"`
	Category        *string          `json:"category"`
	SerialNumber    *string          `json:"serial_number"`
	Status          enums.ItemStatus `json:"status"`
	CurrentLocation *string          `json:"current_location"`
	Notes           *string          `json:"notes"`
	OrderNumber     *string          `json:"order_number"`
	DateReceived    time.Time        `json:"date_received"`
	LastUpdated     time.Time        `json:"last_updated"`
	DaysInSystem    int              `json:"days_in_system"`
}

// Overview is the inventory listing plus the old stock alert flag.
type Overview struct {
	Items         []ItemView `json:"items"`
	OldStockAlert bool       `json:"old_stock_alert"`
}

// StatusUpdateInput is the direct status-edit request body.
type StatusUpdateInput struct {
	Status string `json:"status" validate:"required"`
}
