package order

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusUnconfirmed     Status = "Unconfirmed"
	StatusConfirmed       Status = "Confirmed"
	StatusPartialDispatch Status = "Partial Dispatch"
	StatusFullDispatch    Status = "Full Dispatch"
	StatusDelivered       Status = "Delivered"
	StatusCancelled       Status = "Cancelled"
)

// validTransitions defines the allowed status state machine. The transitions
// from Partial/Full Dispatch back to Confirmed are dispatch reversals.
var validTransitions = map[Status][]Status{
	StatusUnconfirmed:     {StatusConfirmed, StatusCancelled},
	StatusConfirmed:       {StatusPartialDispatch, StatusFullDispatch, StatusCancelled},
	StatusPartialDispatch: {StatusPartialDispatch, StatusFullDispatch, StatusConfirmed},
	StatusFullDispatch:    {StatusDelivered, StatusConfirmed},
	StatusDelivered:       {},
	StatusCancelled:       {},
}

// CanTransition returns true if moving from current to next is allowed.
func CanTransition(current, next Status) bool {
	allowed, ok := validTransitions[current]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == next {
			return true
		}
	}
	return false
}

// Order is a customer order with denormalized customer fields. Items track
// ordered versus already-dispatched quantities; DispatchEvents is the
// append-only log of individual dispatch actions.
type Order struct {
	ID               uuid.UUID        `json:"id"`
	CustomerName     string           `json:"customer_name"`
	CustomerCity     string           `json:"customer_city,omitempty"`
	CustomerPhone    string           `json:"customer_phone,omitempty"`
	DeliveryLocation string           `json:"delivery_location,omitempty"`
	Status           Status           `json:"status"`
	Items            []*Item          `json:"items"`
	DispatchEvents   []*DispatchEvent `json:"dispatched_items,omitempty"`
	DeliveredBy      []string         `json:"delivered_by,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Item is one product line within an order.
// Invariant: 0 <= DispatchedQuantity <= Quantity.
type Item struct {
	ID                 uuid.UUID `json:"id"`
	OrderID            uuid.UUID `json:"order_id"`
	ProductID          uuid.UUID `json:"product_id"`
	ProductName        string    `json:"product_name"`
	Quantity           int       `json:"quantity"`
	Unit               string    `json:"unit,omitempty"`
	Price              float64   `json:"price"`
	DispatchedQuantity int       `json:"dispatched_quantity"`
}

// Remaining returns the quantity still to be dispatched.
func (i *Item) Remaining() int { return i.Quantity - i.DispatchedQuantity }

// DispatchEvent records one dispatch action for one product line.
type DispatchEvent struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"timestamp"`
}

// Total returns the order value as the sum of quantity x price over items.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

// ItemInput describes one product line when creating or editing an order.
type ItemInput struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
	Price       float64 `json:"price"`
}

// CreateOrderRequest is the payload for creating a new order.
type CreateOrderRequest struct {
	CustomerName     string      `json:"customer_name"`
	CustomerCity     string      `json:"customer_city,omitempty"`
	CustomerPhone    string      `json:"customer_phone,omitempty"`
	DeliveryLocation string      `json:"delivery_location,omitempty"`
	Items            []ItemInput `json:"items"`
}

// UpdateOrderRequest edits customer fields of an existing order.
type UpdateOrderRequest struct {
	CustomerName     string `json:"customer_name"`
	CustomerCity     string `json:"customer_city,omitempty"`
	CustomerPhone    string `json:"customer_phone,omitempty"`
	DeliveryLocation string `json:"delivery_location,omitempty"`
}

// DispatchLine is one product line of a partial dispatch.
type DispatchLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// DispatchRequest is the payload for a partial dispatch.
type DispatchRequest struct {
	Transport string         `json:"transport,omitempty"`
	Lines     []DispatchLine `json:"lines"`
}

// FullDispatchRequest is the payload for dispatching everything outstanding.
type FullDispatchRequest struct {
	Transport string `json:"transport,omitempty"`
}
