package transport

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines transport-provider business logic.
type Service interface {
	CreateTransport(ctx context.Context, req UpsertTransportRequest) (*Transport, error)
	GetTransport(ctx context.Context, id string) (*Transport, error)
	ListTransports(ctx context.Context) ([]*Transport, error)
	UpdateTransport(ctx context.Context, id string, req UpsertTransportRequest) (*Transport, error)
	DeleteTransport(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new transport service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateTransport(ctx context.Context, req UpsertTransportRequest) (*Transport, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	t := &Transport{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(req.Name),
		City:  req.City,
		Phone: req.Phone,
	}
	if err := s.repo.CreateTransport(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetTransport(ctx context.Context, id string) (*Transport, error) {
	return s.repo.GetTransportByID(ctx, id)
}

func (s *service) ListTransports(ctx context.Context) ([]*Transport, error) {
	return s.repo.ListTransports(ctx)
}

func (s *service) UpdateTransport(ctx context.Context, id string, req UpsertTransportRequest) (*Transport, error) {
	t, err := s.repo.GetTransportByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("transport not found: %w", err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	t.Name = strings.TrimSpace(req.Name)
	t.City = req.City
	t.Phone = req.Phone
	if err := s.repo.UpdateTransport(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) DeleteTransport(ctx context.Context, id string) error {
	return s.repo.DeleteTransport(ctx, id)
}
