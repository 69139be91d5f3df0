package product

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisheksonias/agrigo-backend/internal/platform/storage"
)

const imageBucket = "product-images"

// Service defines product and stock-ledger business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// UpdateStock applies a manual stock correction and appends the matching
	// ledger entry. The new value is trusted input; it is not validated
	// against outstanding order reservations.
	UpdateStock(ctx context.Context, id string, req UpdateStockRequest) (*Product, error)

	// GetHistory returns the product's stock ledger, oldest entry first.
	GetHistory(ctx context.Context, id string) ([]*StockEntry, error)

	// AttachImage uploads an image and records its public URL on the product.
	AttachImage(ctx context.Context, id, filename string, data []byte) (*Product, error)
	RemoveImage(ctx context.Context, id string) (*Product, error)
}

type service struct {
	repo  Repository
	files storage.Store
}

// NewService creates a new product service.
func NewService(repo Repository, files storage.Store) Service {
	return &service{repo: repo, files: files}
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	p := &Product{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(req.Name),
		Unit:  req.Unit,
		Stock: req.Stock,
	}
	initial := &StockEntry{
		ID:            uuid.New(),
		ProductID:     p.ID,
		PreviousStock: 0,
		Change:        req.Stock,
		NewStock:      req.Stock,
		ChangeType:    ChangeInitial,
	}
	if err := s.repo.CreateProduct(ctx, p, initial); err != nil {
		return nil, fmt.Errorf("failed to persist product: %w", err)
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	p.Name = strings.TrimSpace(req.Name)
	p.Unit = req.Unit
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *service) UpdateStock(ctx context.Context, id string, req UpdateStockRequest) (*Product, error) {
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	entry := &StockEntry{
		ID:            uuid.New(),
		ProductID:     p.ID,
		PreviousStock: p.Stock,
		Change:        req.Stock - p.Stock,
		NewStock:      req.Stock,
		ChangeType:    ChangeManualUpdate,
	}
	if err := s.repo.SetStock(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	p.Stock = req.Stock
	return p, nil
}

func (s *service) GetHistory(ctx context.Context, id string) ([]*StockEntry, error) {
	return s.repo.ListHistory(ctx, id)
}

func (s *service) AttachImage(ctx context.Context, id, filename string, data []byte) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}

	key := fmt.Sprintf("%s%s", p.ID, strings.ToLower(filepath.Ext(filename)))
	url, err := s.files.Upload(ctx, imageBucket, key, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	p.ImageURL = url
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) RemoveImage(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if p.ImageURL == "" {
		return p, nil
	}
	key := p.ImageURL[strings.LastIndex(p.ImageURL, "/")+1:]
	if err := s.files.Remove(ctx, imageBucket, key); err != nil {
		return nil, fmt.Errorf("failed to remove image: %w", err)
	}
	p.ImageURL = ""
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
