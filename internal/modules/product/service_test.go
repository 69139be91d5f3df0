package product

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisheksonias/agrigo-backend/internal/platform/storage"
)

type mockRepository struct {
	products map[uuid.UUID]*Product
	ledger   map[uuid.UUID][]*StockEntry
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		products: make(map[uuid.UUID]*Product),
		ledger:   make(map[uuid.UUID][]*StockEntry),
	}
}

func (m *mockRepository) CreateProduct(_ context.Context, p *Product, initial *StockEntry) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	initial.CreatedAt = now
	m.products[p.ID] = p
	m.ledger[p.ID] = append(m.ledger[p.ID], initial)
	return nil
}

func (m *mockRepository) GetProductByID(_ context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p, ok := m.products[uid]
	if !ok {
		return nil, fmt.Errorf("product %s not found", id)
	}
	return p, nil
}

func (m *mockRepository) ListProducts(_ context.Context) ([]*Product, error) {
	products := make([]*Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (m *mockRepository) UpdateProduct(_ context.Context, p *Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return fmt.Errorf("product %s not found", p.ID)
	}
	p.UpdatedAt = time.Now()
	m.products[p.ID] = p
	return nil
}

func (m *mockRepository) SetStock(_ context.Context, entry *StockEntry) error {
	p, ok := m.products[entry.ProductID]
	if !ok {
		return fmt.Errorf("product %s not found", entry.ProductID)
	}
	entry.CreatedAt = time.Now()
	p.Stock = entry.NewStock
	m.ledger[entry.ProductID] = append(m.ledger[entry.ProductID], entry)
	return nil
}

func (m *mockRepository) DeleteProduct(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(m.products, uid)
	delete(m.ledger, uid)
	return nil
}

func (m *mockRepository) ListHistory(_ context.Context, productID string) ([]*StockEntry, error) {
	uid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	return m.ledger[uid], nil
}

var _ Repository = &mockRepository{}

func setup(t *testing.T) (Service, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	store, err := storage.NewDiskStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	return NewService(repo, store), repo
}

func TestCreateProduct(t *testing.T) {
	svc, repo := setup(t)

	t.Run("Success writes initial ledger entry", func(t *testing.T) {
		p, err := svc.CreateProduct(context.Background(), CreateProductRequest{
			Name: "NPK Fertilizer", Unit: "bag", Stock: 40,
		})
		require.NoError(t, err)
		assert.Equal(t, 40, p.Stock)

		entries := repo.ledger[p.ID]
		require.Len(t, entries, 1)
		assert.Equal(t, ChangeInitial, entries[0].ChangeType)
		assert.Equal(t, 0, entries[0].PreviousStock)
		assert.Equal(t, 40, entries[0].Change)
		assert.Equal(t, 40, entries[0].NewStock)
	})

	t.Run("Fail on blank name", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), CreateProductRequest{Name: "  ", Stock: 1})
		assert.Error(t, err)
	})

	t.Run("Fail on negative stock", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), CreateProductRequest{Name: "Urea", Stock: -1})
		assert.Error(t, err)
	})
}

func TestUpdateStock(t *testing.T) {
	svc, repo := setup(t)
	p, err := svc.CreateProduct(context.Background(), CreateProductRequest{Name: "Urea", Unit: "bag", Stock: 20})
	require.NoError(t, err)

	t.Run("Manual correction appends ledger entry", func(t *testing.T) {
		updated, err := svc.UpdateStock(context.Background(), p.ID.String(), UpdateStockRequest{Stock: 35})
		require.NoError(t, err)
		assert.Equal(t, 35, updated.Stock)

		entries := repo.ledger[p.ID]
		require.Len(t, entries, 2)
		last := entries[1]
		assert.Equal(t, ChangeManualUpdate, last.ChangeType)
		assert.Equal(t, 20, last.PreviousStock)
		assert.Equal(t, 15, last.Change)
		assert.Equal(t, 35, last.NewStock)
	})

	t.Run("Downward correction allowed", func(t *testing.T) {
		updated, err := svc.UpdateStock(context.Background(), p.ID.String(), UpdateStockRequest{Stock: 5})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Stock)
		last := repo.ledger[p.ID][len(repo.ledger[p.ID])-1]
		assert.Equal(t, -30, last.Change)
	})

	t.Run("Fail on negative stock", func(t *testing.T) {
		_, err := svc.UpdateStock(context.Background(), p.ID.String(), UpdateStockRequest{Stock: -3})
		assert.Error(t, err)
	})

	t.Run("Ledger replays to current stock", func(t *testing.T) {
		entries, err := svc.GetHistory(context.Background(), p.ID.String())
		require.NoError(t, err)
		replayed := 0
		for _, e := range entries {
			assert.Equal(t, replayed, e.PreviousStock)
			replayed += e.Change
			assert.Equal(t, replayed, e.NewStock)
		}
		current, err := svc.GetProduct(context.Background(), p.ID.String())
		require.NoError(t, err)
		assert.Equal(t, current.Stock, replayed)
	})
}

func TestAttachImage(t *testing.T) {
	svc, _ := setup(t)
	p, err := svc.CreateProduct(context.Background(), CreateProductRequest{Name: "Urea", Stock: 1})
	require.NoError(t, err)

	t.Run("Upload sets public URL", func(t *testing.T) {
		updated, err := svc.AttachImage(context.Background(), p.ID.String(), "photo.PNG", []byte("png-bytes"))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("http://localhost:8080/files/product-images/%s.png", p.ID), updated.ImageURL)
	})

	t.Run("Remove clears URL", func(t *testing.T) {
		updated, err := svc.RemoveImage(context.Background(), p.ID.String())
		require.NoError(t, err)
		assert.Empty(t, updated.ImageURL)
	})

	t.Run("Remove without image is a no-op", func(t *testing.T) {
		updated, err := svc.RemoveImage(context.Background(), p.ID.String())
		require.NoError(t, err)
		assert.Empty(t, updated.ImageURL)
	})

	t.Run("Fail on empty payload", func(t *testing.T) {
		_, err := svc.AttachImage(context.Background(), p.ID.String(), "photo.png", nil)
		assert.Error(t, err)
	})
}
