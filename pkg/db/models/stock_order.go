package models

import "time"

// StockOrder is one receiving event. OrderNumber is a free-text external
// reference and is not unique. Orders are immutable once written.
type StockOrder struct {
	ID          int64            `gorm:"column:id;primaryKey;autoIncrement"`
	OrderNumber *string          `gorm:"column:order_number"`
	OrderDate   time.Time        `gorm:"column:order_date;not null"`
	Notes       *string          `gorm:"column:notes"`
	Lines       []StockOrderLine `gorm:"foreignKey:StockOrderID"`
}

func (StockOrder) TableName() string { return "stock_orders" }

// StockOrderLine is one (part type x quantity) entry within a stock order.
type StockOrderLine struct {
	ID               int64       `gorm:"column:id;primaryKey;autoIncrement"`
	StockOrderID     int64       `gorm:"column:stock_order_id;not null;index"`
	PartTypeID       int64       `gorm:"column:part_type_id;not null;index"`
	QuantityReceived int         `gorm:"column:quantity_received;not null"`
	PartType         *PartType   `gorm:"foreignKey:PartTypeID"`
	StockOrder       *StockOrder `gorm:"foreignKey:StockOrderID"`
}

func (StockOrderLine) TableName() string { return "stock_order_lines" }
