package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisheksonias/agrigo-backend/internal/modules/product"
)

// StockChange is one product stock mutation together with the ledger entry
// that must be appended in the same transaction.
type StockChange struct {
	ProductID     uuid.UUID
	PreviousStock int
	Change        int
	NewStock      int
	ChangeType    product.ChangeType
	OrderID       uuid.UUID
}

// ItemDispatch increments one order item's dispatched quantity.
type ItemDispatch struct {
	ItemID   uuid.UUID
	Quantity int
}

// planConfirmation validates every item against current stock and computes
// the debits to apply. It returns an InsufficientStockError naming every
// failing product when any line cannot be covered; no debit is applied in
// that case.
func planConfirmation(o *Order, stocks map[uuid.UUID]int) ([]StockChange, error) {
	// Duplicate product lines accumulate against a running balance.
	remaining := make(map[uuid.UUID]int, len(stocks))
	for id, s := range stocks {
		remaining[id] = s
	}

	var failed []InsufficientStockLine
	for _, item := range o.Items {
		if item.Quantity > remaining[item.ProductID] {
			failed = append(failed, InsufficientStockLine{
				ProductID:   item.ProductID.String(),
				ProductName: item.ProductName,
				Requested:   item.Quantity,
				Available:   remaining[item.ProductID],
			})
			continue
		}
		remaining[item.ProductID] -= item.Quantity
	}
	if len(failed) > 0 {
		return nil, &InsufficientStockError{Lines: failed}
	}

	running := make(map[uuid.UUID]int, len(stocks))
	for id, s := range stocks {
		running[id] = s
	}
	changes := make([]StockChange, 0, len(o.Items))
	for _, item := range o.Items {
		prev := running[item.ProductID]
		next := prev - item.Quantity
		running[item.ProductID] = next
		changes = append(changes, StockChange{
			ProductID:     item.ProductID,
			PreviousStock: prev,
			Change:        -item.Quantity,
			NewStock:      next,
			ChangeType:    product.ChangeOrderConfirmation,
			OrderID:       o.ID,
		})
	}
	return changes, nil
}

// planDispatch validates the submitted lines against remaining undispatched
// quantities and computes the item increments and dispatch events.
// Zero-quantity lines are dropped silently.
func planDispatch(o *Order, lines []DispatchLine) ([]ItemDispatch, []*DispatchEvent, error) {
	itemsByProduct := make(map[uuid.UUID]*Item, len(o.Items))
	for _, item := range o.Items {
		itemsByProduct[item.ProductID] = item
	}

	// Repeated lines for the same product accumulate within one request.
	pending := make(map[uuid.UUID]int)

	var updates []ItemDispatch
	var events []*DispatchEvent
	now := time.Now()
	for _, line := range lines {
		if line.Quantity == 0 {
			continue
		}
		pid, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid product_id %q: %w", line.ProductID, err)
		}
		item, ok := itemsByProduct[pid]
		if !ok {
			return nil, nil, fmt.Errorf("product %s is not part of this order", line.ProductID)
		}
		max := item.Remaining() - pending[pid]
		if line.Quantity < 0 || line.Quantity > max {
			return nil, nil, &OverDispatchError{
				ProductName: item.ProductName,
				Requested:   line.Quantity,
				Max:         max,
			}
		}
		pending[pid] += line.Quantity
		updates = append(updates, ItemDispatch{ItemID: item.ID, Quantity: line.Quantity})
		events = append(events, &DispatchEvent{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: pid,
			Quantity:  line.Quantity,
			CreatedAt: now,
		})
	}
	return updates, events, nil
}

// planFullDispatch dispatches everything outstanding on the order.
func planFullDispatch(o *Order) ([]ItemDispatch, []*DispatchEvent) {
	var updates []ItemDispatch
	var events []*DispatchEvent
	now := time.Now()
	for _, item := range o.Items {
		outstanding := item.Remaining()
		if outstanding == 0 {
			continue
		}
		updates = append(updates, ItemDispatch{ItemID: item.ID, Quantity: outstanding})
		events = append(events, &DispatchEvent{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Quantity:  outstanding,
			CreatedAt: now,
		})
	}
	return updates, events
}

// planReversal computes the stock credits that undo every dispatched
// quantity on the order, with one reversal ledger entry per product.
func planReversal(o *Order, stocks map[uuid.UUID]int) []StockChange {
	running := make(map[uuid.UUID]int, len(stocks))
	for id, s := range stocks {
		running[id] = s
	}
	var credits []StockChange
	for _, item := range o.Items {
		if item.DispatchedQuantity == 0 {
			continue
		}
		prev := running[item.ProductID]
		next := prev + item.DispatchedQuantity
		running[item.ProductID] = next
		credits = append(credits, StockChange{
			ProductID:     item.ProductID,
			PreviousStock: prev,
			Change:        item.DispatchedQuantity,
			NewStock:      next,
			ChangeType:    product.ChangeDispatchReversal,
			OrderID:       o.ID,
		})
	}
	return credits
}

// mergeTransport appends name to the delivered-by set if not already present.
func mergeTransport(deliveredBy []string, name string) []string {
	if name == "" {
		return deliveredBy
	}
	for _, existing := range deliveredBy {
		if existing == name {
			return deliveredBy
		}
	}
	return append(deliveredBy, name)
}
