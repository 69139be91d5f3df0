package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// mockRepository is an in-memory Repository mirroring the transactional
// semantics of the Postgres implementation.
type mockRepository struct {
	orders    map[uuid.UUID]*Order
	stocks    map[uuid.UUID]int
	ledger    []StockChange
	failApply bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		orders: make(map[uuid.UUID]*Order),
		stocks: make(map[uuid.UUID]int),
	}
}

func (m *mockRepository) CreateOrder(_ context.Context, o *Order) error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	m.orders[o.ID] = o
	return nil
}

func (m *mockRepository) GetOrderByID(_ context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	o, ok := m.orders[uid]
	if !ok {
		return nil, fmt.Errorf("order %s not found", id)
	}
	return o, nil
}

func (m *mockRepository) ListOrders(_ context.Context, status string, from, to *time.Time) ([]*Order, error) {
	var orders []*Order
	for _, o := range m.orders {
		if status != "" && string(o.Status) != status {
			continue
		}
		if from != nil && o.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && o.CreatedAt.After(*to) {
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (m *mockRepository) UpdateOrder(_ context.Context, o *Order) error {
	m.orders[o.ID] = o
	return nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id uuid.UUID, status Status) error {
	o, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

func (m *mockRepository) DeleteOrder(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(m.orders, uid)
	return nil
}

func (m *mockRepository) GetProductStocks(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	stocks := make(map[uuid.UUID]int, len(ids))
	for _, id := range ids {
		stock, ok := m.stocks[id]
		if !ok {
			return nil, fmt.Errorf("product %s not found", id)
		}
		stocks[id] = stock
	}
	return stocks, nil
}

func (m *mockRepository) ApplyConfirmation(_ context.Context, orderID uuid.UUID, debits []StockChange) error {
	if m.failApply {
		return fmt.Errorf("storage failure")
	}
	o, ok := m.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	for _, c := range debits {
		m.stocks[c.ProductID] = c.NewStock
		m.ledger = append(m.ledger, c)
	}
	o.Status = StatusConfirmed
	o.UpdatedAt = time.Now()
	return nil
}

func (m *mockRepository) ApplyDispatch(_ context.Context, orderID uuid.UUID, status Status,
	updates []ItemDispatch, events []*DispatchEvent, deliveredBy []string) error {
	if m.failApply {
		return fmt.Errorf("storage failure")
	}
	o, ok := m.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	for _, u := range updates {
		for _, item := range o.Items {
			if item.ID == u.ItemID {
				item.DispatchedQuantity += u.Quantity
			}
		}
	}
	o.DispatchEvents = append(o.DispatchEvents, events...)
	o.DeliveredBy = deliveredBy
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

func (m *mockRepository) ApplyReversal(_ context.Context, orderID uuid.UUID, credits []StockChange) error {
	if m.failApply {
		return fmt.Errorf("storage failure")
	}
	o, ok := m.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	o.Status = StatusConfirmed
	o.DispatchEvents = nil
	for _, c := range credits {
		m.stocks[c.ProductID] = c.NewStock
		m.ledger = append(m.ledger, c)
	}
	for _, item := range o.Items {
		item.DispatchedQuantity = 0
	}
	o.UpdatedAt = time.Now()
	return nil
}

var _ Repository = &mockRepository{}
