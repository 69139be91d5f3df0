package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a buyer record. Orders keep denormalized copies of these
// fields rather than a foreign key.
type Customer struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	City             string    `json:"city,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	DeliveryLocation string    `json:"delivery_location,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UpsertCustomerRequest is the payload for creating or editing a customer.
type UpsertCustomerRequest struct {
	Name             string `json:"name"`
	City             string `json:"city,omitempty"`
	Phone            string `json:"phone,omitempty"`
	DeliveryLocation string `json:"delivery_location,omitempty"`
}
