package transport

import "context"

// Repository defines data access for transport providers.
type Repository interface {
	CreateTransport(ctx context.Context, t *Transport) error
	GetTransportByID(ctx context.Context, id string) (*Transport, error)
	ListTransports(ctx context.Context) ([]*Transport, error)
	UpdateTransport(ctx context.Context, t *Transport) error
	DeleteTransport(ctx context.Context, id string) error
}
