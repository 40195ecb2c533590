package receiving

import (
	"time"

	"github.com/mdewit/werkstatt-backend/pkg/types"
)

// ReceiveLine is one (part type, quantity) entry of a structured receive.
type ReceiveLine struct {
	PartTypeID int64 `json:"part_type_id" validate:"required,gt=0"`
	Quantity   int   `json:"quantity"`
}

// ReceiveInput is the structured receiving request. Zero-quantity lines are
// skipped; negative quantities are rejected.
type ReceiveInput struct {
	OrderNumber *string       `json:"order_number,omitempty"`
	OrderDate   types.Date    `json:"order_date,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
	Lines       []ReceiveLine `json:"lines"`
}

// FastReceiveLine is one free-text entry of a fast receive: an identifier
// (part number or artikelnummer) and a quantity still in string form.
type FastReceiveLine struct {
	Identifier string `json:"identifier"`
	Quantity   string `json:"quantity"`
}

// FastReceiveInput is the paste-friendly receiving request.
type FastReceiveInput struct {
	OrderNumber *string           `json:"order_number,omitempty"`
	OrderDate   types.Date        `json:"order_date,omitempty"`
	Notes       *string           `json:"notes,omitempty"`
	Lines       []FastReceiveLine `json:"lines"`
}

// Result reports what a successful receive created.
type Result struct {
	StockOrderID int64 `json:"stock_order_id"`
	ItemsCreated int   `json:"items_created"`
}

// OrderLineView is one line of a listed stock order with its part joined in.
type OrderLineView struct {
	LineID           int64   `json:"line_id"`
	PartTypeID       int64   `json:"part_type_id"`
	PartName         string  `json:"part_name"`
	PartNumber       *string `json:"part_number"`
	Artikelnummer    *string `json:"artikelnummer"`
	Brand            *string `json:"brand"`
	Model            *string `json:"model"`
	QuantityReceived int     `json:"quantity_received"`
}

// OrderView is one stock order in the receiving history.
type OrderView struct {
	ID          int64           `json:"id"`
	OrderNumber *string         `json:"order_number"`
	OrderDate   time.Time       `json:"order_date"`
	Notes       *string         `json:"notes"`
	Lines       []OrderLineView `json:"lines"`
}
