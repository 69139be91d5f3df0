package product

import "context"

// Repository defines data access for products and their stock ledger.
type Repository interface {
	// CreateProduct persists a product together with its initial ledger entry
	// in a single transaction.
	CreateProduct(ctx context.Context, p *Product, initial *StockEntry) error

	// GetProductByID retrieves a product by UUID, without its ledger.
	GetProductByID(ctx context.Context, id string) (*Product, error)

	// ListProducts returns all products ordered by name.
	ListProducts(ctx context.Context) ([]*Product, error)

	// UpdateProduct updates display fields (name, unit, image URL).
	UpdateProduct(ctx context.Context, p *Product) error

	// SetStock writes a new stock value and appends the matching ledger entry
	// in a single transaction.
	SetStock(ctx context.Context, entry *StockEntry) error

	// DeleteProduct removes the product and, via cascade, its ledger.
	DeleteProduct(ctx context.Context, id string) error

	// ListHistory returns the product's ledger entries oldest first.
	ListHistory(ctx context.Context, productID string) ([]*StockEntry, error)
}
