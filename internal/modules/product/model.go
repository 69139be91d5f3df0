package product

import (
	"time"

	"github.com/google/uuid"
)

// ChangeType categorises a stock ledger entry.
type ChangeType string

const (
	ChangeInitial           ChangeType = "INITIAL"
	ChangeManualUpdate      ChangeType = "MANUAL_UPDATE"
	ChangeOrderConfirmation ChangeType = "ORDER_CONFIRMATION"
	ChangeDispatchReversal  ChangeType = "DISPATCH_REVERSAL"
)

// Product is an item held in stock and sold through orders.
type Product struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit,omitempty"`
	Stock     int       `json:"stock"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	History []*StockEntry `json:"stock_history,omitempty"`
}

// StockEntry is one row of a product's append-only stock ledger.
// Replaying Change from the first entry always reproduces the current stock.
type StockEntry struct {
	ID            uuid.UUID  `json:"id"`
	ProductID     uuid.UUID  `json:"product_id"`
	PreviousStock int        `json:"previous_stock"`
	Change        int        `json:"change"`
	NewStock      int        `json:"new_stock"`
	ChangeType    ChangeType `json:"change_type"`
	OrderID       *uuid.UUID `json:"order_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateProductRequest is the payload for registering a new product.
type CreateProductRequest struct {
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Stock int    `json:"stock"`
}

// UpdateProductRequest is the payload for editing product display fields.
type UpdateProductRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// UpdateStockRequest is the payload for a manual stock correction.
type UpdateStockRequest struct {
	Stock int `json:"stock"`
}
