package transport

import (
	"time"

	"github.com/google/uuid"
)

// Transport is a transport provider that delivers dispatched orders.
type Transport struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertTransportRequest is the payload for creating or editing a transport.
type UpsertTransportRequest struct {
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	Phone string `json:"phone,omitempty"`
}
