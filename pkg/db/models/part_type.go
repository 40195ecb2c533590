package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartType is a catalog entry describing a kind of part, not a physical
// unit. PartNumber is the manufacturer/SKU reference; Artikelnummer is the
// shop's internal article number. Both are globally unique when present.
type PartType struct {
	ID              int64            `gorm:"column:id;primaryKey;autoIncrement"`
	PartName        string           `gorm:"column:part_name;not null"`
	PartNumber      *string          `gorm:"column:part_number;uniqueIndex"`
	Artikelnummer   *string          `gorm:"column:artikelnummer;uniqueIndex"`
	Category        *string          `gorm:"column:part_type"`
	Brand           *string          `gorm:"column:brand"`
	Model           *string          `gorm:"column:model"`
	CostPrice       *decimal.Decimal `gorm:"column:cost_price;type:numeric"`
	StorageLocation *string          `gorm:"column:storage_location"`
	Description     *string          `gorm:"column:description"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (PartType) TableName() string { return "part_types" }
