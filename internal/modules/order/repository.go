package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines data access for orders, including the transactional
// multi-record writes of the confirm/dispatch/reversal workflow.
type Repository interface {
	// CreateOrder persists a new order and its items atomically.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order with its items and dispatch events.
	GetOrderByID(ctx context.Context, id string) (*Order, error)

	// ListOrders returns orders newest first, optionally filtered by status
	// and creation-time window.
	ListOrders(ctx context.Context, status string, from, to *time.Time) ([]*Order, error)

	// UpdateOrder updates the denormalized customer fields.
	UpdateOrder(ctx context.Context, o *Order) error

	// UpdateStatus advances an order to a new status with no side effects.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// DeleteOrder removes the order and, via cascade, its items and events.
	DeleteOrder(ctx context.Context, id string) error

	// GetProductStocks returns the current stock for each product id.
	// Every requested id must exist.
	GetProductStocks(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error)

	// ApplyConfirmation atomically debits product stock, appends the ledger
	// entries, and finally sets the order status to Confirmed. The status
	// write is the last statement in the transaction.
	ApplyConfirmation(ctx context.Context, orderID uuid.UUID, debits []StockChange) error

	// ApplyDispatch atomically increments item dispatched quantities,
	// appends dispatch events, replaces the delivered-by set, and sets the
	// order status. Product stock is not touched.
	ApplyDispatch(ctx context.Context, orderID uuid.UUID, status Status,
		updates []ItemDispatch, events []*DispatchEvent, deliveredBy []string) error

	// ApplyReversal atomically sets the order back to Confirmed, clears its
	// dispatch events, credits product stock with the matching ledger
	// entries, and zeroes every item's dispatched quantity.
	ApplyReversal(ctx context.Context, orderID uuid.UUID, credits []StockChange) error
}
