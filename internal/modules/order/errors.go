package order

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidState is returned when an operation is attempted against an
// order whose current status does not allow it.
var ErrInvalidState = errors.New("invalid order state")

// invalidStateError wraps ErrInvalidState with the offending transition.
func invalidStateError(current Status, op string) error {
	return fmt.Errorf("%w: cannot %s an order in status %q", ErrInvalidState, op, current)
}

// InsufficientStockLine names one product that failed the confirm-time check.
type InsufficientStockLine struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

// InsufficientStockError reports every product line that cannot be covered
// by current stock. Confirmation has no partial effect when it is returned.
type InsufficientStockError struct {
	Lines []InsufficientStockLine
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		parts = append(parts, fmt.Sprintf("%s (requested %d, available %d)",
			l.ProductName, l.Requested, l.Available))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}

// OverDispatchError reports a dispatch line exceeding the remaining
// undispatched quantity of its order item.
type OverDispatchError struct {
	ProductName string
	Requested   int
	Max         int
}

func (e *OverDispatchError) Error() string {
	return fmt.Sprintf("cannot dispatch %d of %s: maximum allowed is %d",
		e.Requested, e.ProductName, e.Max)
}
