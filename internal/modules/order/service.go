package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines the order management business logic, including the
// confirm/dispatch/reversal workflow.
type Service interface {
	// CreateOrder validates the request and persists a new Unconfirmed order.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)

	// GetOrder retrieves a full order with items and dispatch events.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListOrders returns orders newest first, optionally filtered by status
	// and creation-time window.
	ListOrders(ctx context.Context, status string, from, to *time.Time) ([]*Order, error)

	// UpdateOrder edits the denormalized customer fields.
	UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error)

	// DeleteOrder removes an order outright.
	DeleteOrder(ctx context.Context, id string) error

	// Confirm moves Unconfirmed -> Confirmed, debiting product stock by each
	// ordered quantity. Rejected with an InsufficientStockError naming every
	// failing product if any line cannot be covered; no partial effect.
	Confirm(ctx context.Context, id string) (*Order, error)

	// Dispatch records a partial dispatch of the given lines. Stock is not
	// touched; fulfillment progress is tracked against stock already
	// reserved at confirm time. Zero-quantity lines are dropped silently.
	Dispatch(ctx context.Context, id string, req DispatchRequest) (*Order, error)

	// DispatchAll dispatches everything outstanding and moves the order to
	// Full Dispatch.
	DispatchAll(ctx context.Context, id string, req FullDispatchRequest) (*Order, error)

	// ReverseDispatch undoes all dispatches on a Partial/Full Dispatch
	// order: stock is credited back, dispatch events cleared, items reset,
	// and the order returns to Confirmed.
	ReverseDispatch(ctx context.Context, id string) (*Order, error)

	// Deliver moves Full Dispatch -> Delivered. No inventory side effects.
	Deliver(ctx context.Context, id string) (*Order, error)

	// Cancel moves a pre-dispatch order to Cancelled. No inventory side effects.
	Cancel(ctx context.Context, id string) (*Order, error)
}

type service struct {
	repo Repository
}

// NewService creates a new order service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, fmt.Errorf("customer_name is required")
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	o := &Order{
		ID:               uuid.New(),
		CustomerName:     strings.TrimSpace(req.CustomerName),
		CustomerCity:     req.CustomerCity,
		CustomerPhone:    req.CustomerPhone,
		DeliveryLocation: req.DeliveryLocation,
		Status:           StatusUnconfirmed,
	}
	for _, in := range req.Items {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be > 0 for product %s", in.ProductID)
		}
		if in.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative for product %s", in.ProductID)
		}
		pid, err := uuid.Parse(in.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		o.Items = append(o.Items, &Item{
			ID:          uuid.New(),
			OrderID:     o.ID,
			ProductID:   pid,
			ProductName: in.ProductName,
			Quantity:    in.Quantity,
			Unit:        in.Unit,
			Price:       in.Price,
		})
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, status string, from, to *time.Time) ([]*Order, error) {
	return s.repo.ListOrders(ctx, status, from, to)
}

func (s *service) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, fmt.Errorf("customer_name is required")
	}
	o.CustomerName = strings.TrimSpace(req.CustomerName)
	o.CustomerCity = req.CustomerCity
	o.CustomerPhone = req.CustomerPhone
	o.DeliveryLocation = req.DeliveryLocation
	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) DeleteOrder(ctx context.Context, id string) error {
	return s.repo.DeleteOrder(ctx, id)
}

func (s *service) Confirm(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if o.Status != StatusUnconfirmed {
		return nil, invalidStateError(o.Status, "confirm")
	}

	stocks, err := s.repo.GetProductStocks(ctx, productIDs(o))
	if err != nil {
		return nil, fmt.Errorf("failed to load product stock: %w", err)
	}
	debits, err := planConfirmation(o, stocks)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ApplyConfirmation(ctx, o.ID, debits); err != nil {
		return nil, fmt.Errorf("failed to confirm order: %w", err)
	}
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) Dispatch(ctx context.Context, id string, req DispatchRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if !CanTransition(o.Status, StatusPartialDispatch) {
		return nil, invalidStateError(o.Status, "dispatch")
	}

	updates, events, err := planDispatch(o, req.Lines)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		// Every submitted line was zero; nothing to record.
		return o, nil
	}

	deliveredBy := mergeTransport(o.DeliveredBy, req.Transport)
	if err := s.repo.ApplyDispatch(ctx, o.ID, StatusPartialDispatch, updates, events, deliveredBy); err != nil {
		return nil, fmt.Errorf("failed to record dispatch: %w", err)
	}
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) DispatchAll(ctx context.Context, id string, req FullDispatchRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if !CanTransition(o.Status, StatusFullDispatch) {
		return nil, invalidStateError(o.Status, "fully dispatch")
	}

	updates, events := planFullDispatch(o)
	deliveredBy := mergeTransport(o.DeliveredBy, req.Transport)
	if err := s.repo.ApplyDispatch(ctx, o.ID, StatusFullDispatch, updates, events, deliveredBy); err != nil {
		return nil, fmt.Errorf("failed to record dispatch: %w", err)
	}
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) ReverseDispatch(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if o.Status != StatusPartialDispatch && o.Status != StatusFullDispatch {
		return nil, invalidStateError(o.Status, "reverse dispatch of")
	}

	stocks, err := s.repo.GetProductStocks(ctx, dispatchedProductIDs(o))
	if err != nil {
		return nil, fmt.Errorf("failed to load product stock: %w", err)
	}
	credits := planReversal(o, stocks)
	if err := s.repo.ApplyReversal(ctx, o.ID, credits); err != nil {
		return nil, fmt.Errorf("failed to reverse dispatch: %w", err)
	}
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) Deliver(ctx context.Context, id string) (*Order, error) {
	return s.transition(ctx, id, StatusDelivered, "deliver")
}

func (s *service) Cancel(ctx context.Context, id string) (*Order, error) {
	return s.transition(ctx, id, StatusCancelled, "cancel")
}

// transition performs a bookkeeping status change with no inventory effects.
func (s *service) transition(ctx context.Context, id string, next Status, op string) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if !CanTransition(o.Status, next) {
		return nil, invalidStateError(o.Status, op)
	}
	if err := s.repo.UpdateStatus(ctx, o.ID, next); err != nil {
		return nil, err
	}
	o.Status = next
	return o, nil
}

func productIDs(o *Order) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.Items))
	seen := make(map[uuid.UUID]bool, len(o.Items))
	for _, item := range o.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

func dispatchedProductIDs(o *Order) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.Items))
	seen := make(map[uuid.UUID]bool, len(o.Items))
	for _, item := range o.Items {
		if item.DispatchedQuantity > 0 && !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}
