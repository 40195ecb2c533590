package catalog

import "github.com/shopspring/decimal"

// PartTypeInput carries the fields for catalog add/edit. Optional fields
// arrive as pointers; blank strings are normalized to nil before hitting
// the store so uniqueness only applies to real values.
type PartTypeInput struct {
	PartName        string           `json:"part_name" validate:"required"`
	PartNumber      *string          `json:"part_number,omitempty"`
	Artikelnummer   *string          `json:"artikelnummer,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Brand           *string          `json:"brand,omitempty"`
	Model           *string          `json:"model,omitempty"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
	StorageLocation *string          `json:"storage_location,omitempty"`
	Description     *string          `json:"description,omitempty"`
}

// FilterValues are the distinct dropdown values for the inventory overview.
type FilterValues struct {
	Brands     []string `json:"brands"`
	Models     []string `json:"models"`
	Categories []string `json:"categories"`
}
