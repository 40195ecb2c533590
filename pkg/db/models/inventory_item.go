package models

import (
	"time"

	"github.com/mdewit/werkstatt-backend/pkg/enums"
)

// InventoryItem is one physical, trackable unit of a PartType. Items are
// created in bulk by the receiving workflow (one row per unit) and never
// deleted; StockOrderLineID is nil for legacy items that predate receiving.
type InventoryItem struct {
	ID               int64            `gorm:"column:id;primaryKey;autoIncrement"`
	PartTypeID       int64            `gorm:"column:part_type_id;not null;index"`
	SerialNumber     *string          `gorm:"column:serial_number"`
	Status           enums.ItemStatus `gorm:"column:status;not null;default:Available;index"`
	CurrentLocation  *string          `gorm:"column:current_location"`
	Notes            *string          `gorm:"column:notes"`
	StockOrderLineID *int64           `gorm:"column:stock_order_line_id;index"`
	DateReceived     time.Time        `gorm:"column:date_received;not null"`
	LastUpdated      time.Time        `gorm:"column:last_updated;autoUpdateTime"`
	PartType         *PartType        `gorm:"foreignKey:PartTypeID"`
	StockOrderLine   *StockOrderLine  `gorm:"foreignKey:StockOrderLineID"`
}

func (InventoryItem) TableName() string { return "inventory_items" }
