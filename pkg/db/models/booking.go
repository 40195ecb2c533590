package models

import (
	"time"

	"github.com/mdewit/werkstatt-backend/pkg/enums"
)

// Booking is one customer repair case.
type Booking struct {
	ID            int64               `gorm:"column:id;primaryKey;autoIncrement"`
	BookingDate   time.Time           `gorm:"column:booking_date;not null"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	CustomerPhone *string             `gorm:"column:customer_phone"`
	DeviceModel   string              `gorm:"column:device_model;not null"`
	DeviceSerial  *string             `gorm:"column:device_serial"`
	GPCNumber     *string             `gorm:"column:gpc_number"`
	ZIRReference  *string             `gorm:"column:zir_reference"`
	ReportedIssue string              `gorm:"column:reported_issue;not null"`
	Status        enums.BookingStatus `gorm:"column:status;not null;default:Booked In"`
	Notes         *string             `gorm:"column:notes"`
	LastUpdated   time.Time           `gorm:"column:last_updated;autoUpdateTime"`
}

func (Booking) TableName() string { return "bookings" }

// BookingPartUsed links a booking to an inventory item it consumed. The
// shape allows many items per booking; the create workflow currently only
// attaches one.
type BookingPartUsed struct {
	BookingID       int64          `gorm:"column:booking_id;primaryKey"`
	InventoryItemID int64          `gorm:"column:inventory_item_id;primaryKey"`
	Booking         *Booking       `gorm:"foreignKey:BookingID"`
	InventoryItem   *InventoryItem `gorm:"foreignKey:InventoryItemID"`
}

func (BookingPartUsed) TableName() string { return "booking_parts_used" }
