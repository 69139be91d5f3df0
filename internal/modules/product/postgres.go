package product

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product, initial *StockEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, name, unit, stock, image_url)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.Name, p.Unit, p.Stock, p.ImageURL)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stock_history (id, product_id, previous_stock, change, new_stock, change_type, order_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		initial.ID, p.ID, initial.PreviousStock, initial.Change,
		initial.NewStock, initial.ChangeType, initial.OrderID)
	if err != nil {
		return fmt.Errorf("insert stock_history: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) GetProductByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p := &Product{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, unit, stock, image_url, created_at, updated_at
		FROM products WHERE id=$1`, uid).
		Scan(&p.ID, &p.Name, &p.Unit, &p.Stock, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListProducts(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, unit, stock, image_url, created_at, updated_at
		FROM products ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Unit, &p.Stock, &p.ImageURL,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET name=$1, unit=$2, image_url=$3, updated_at=$4 WHERE id=$5`,
		p.Name, p.Unit, p.ImageURL, time.Now(), p.ID)
	return err
}

// SetStock writes the new stock value and its ledger entry atomically.
func (r *postgresRepo) SetStock(ctx context.Context, entry *StockEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE products SET stock=$1, updated_at=$2 WHERE id=$3`,
		entry.NewStock, time.Now(), entry.ProductID)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stock_history (id, product_id, previous_stock, change, new_stock, change_type, order_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		entry.ID, entry.ProductID, entry.PreviousStock, entry.Change,
		entry.NewStock, entry.ChangeType, entry.OrderID)
	if err != nil {
		return fmt.Errorf("insert stock_history: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, uid)
	return err
}

func (r *postgresRepo) ListHistory(ctx context.Context, productID string) ([]*StockEntry, error) {
	uid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, previous_stock, change, new_stock, change_type, order_id, created_at
		FROM stock_history WHERE product_id=$1 ORDER BY created_at ASC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []*StockEntry
	for rows.Next() {
		e := &StockEntry{}
		var orderID sql.NullString
		if err := rows.Scan(&e.ID, &e.ProductID, &e.PreviousStock, &e.Change,
			&e.NewStock, &e.ChangeType, &orderID, &e.CreatedAt); err != nil {
			return nil, err
		}
		if orderID.Valid {
			oid, _ := uuid.Parse(orderID.String)
			e.OrderID = &oid
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
