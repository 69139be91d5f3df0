package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// CreateOrder inserts the order and all its items inside a single transaction.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, customer_name, customer_city, customer_phone, delivery_location, status, delivered_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		o.ID, o.CustomerName, o.CustomerCity, o.CustomerPhone,
		o.DeliveryLocation, o.Status, pq.Array(o.DeliveredBy))
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items
			  (id, order_id, product_id, product_name, quantity, unit, price, dispatched_quantity)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			item.ID, o.ID, item.ProductID, item.ProductName,
			item.Quantity, item.Unit, item.Price, item.DispatchedQuantity)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	o := &Order{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, customer_name, customer_city, customer_phone, delivery_location,
		       status, delivered_by, created_at, updated_at
		FROM orders WHERE id=$1`, uid).
		Scan(&o.ID, &o.CustomerName, &o.CustomerCity, &o.CustomerPhone,
			&o.DeliveryLocation, &o.Status, pq.Array(&o.DeliveredBy),
			&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if o.Items, err = r.listItems(ctx, o.ID); err != nil {
		return nil, err
	}
	if o.DispatchEvents, err = r.listEvents(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListOrders(ctx context.Context, status string, from, to *time.Time) ([]*Order, error) {
	query := `SELECT id, customer_name, customer_city, customer_phone, delivery_location,
	                 status, delivered_by, created_at, updated_at
	          FROM orders WHERE 1=1`
	var args []interface{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status=$%d", len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.CustomerCity, &o.CustomerPhone,
			&o.DeliveryLocation, &o.Status, pq.Array(&o.DeliveredBy),
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) UpdateOrder(ctx context.Context, o *Order) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET customer_name=$1, customer_city=$2, customer_phone=$3,
		    delivery_location=$4, updated_at=$5
		WHERE id=$6`,
		o.CustomerName, o.CustomerCity, o.CustomerPhone,
		o.DeliveryLocation, time.Now(), o.ID)
	return err
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

func (r *postgresRepo) DeleteOrder(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM orders WHERE id=$1`, uid)
	return err
}

func (r *postgresRepo) GetProductStocks(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	stocks := make(map[uuid.UUID]int, len(ids))
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, stock FROM products WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var stock int
		if err := rows.Scan(&id, &stock); err != nil {
			return nil, err
		}
		stocks[id] = stock
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := stocks[id]; !ok {
			return nil, fmt.Errorf("product %s not found", id)
		}
	}
	return stocks, nil
}

// ApplyConfirmation debits stock and appends ledger entries first; the order
// status write is the final statement of the transaction.
func (r *postgresRepo) ApplyConfirmation(ctx context.Context, orderID uuid.UUID, debits []StockChange) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := applyStockChanges(ctx, tx, debits); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		StatusConfirmed, time.Now(), orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) ApplyDispatch(ctx context.Context, orderID uuid.UUID, status Status,
	updates []ItemDispatch, events []*DispatchEvent, deliveredBy []string) error {

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, u := range updates {
		_, err = tx.ExecContext(ctx, `
			UPDATE order_items
			SET dispatched_quantity = dispatched_quantity + $1
			WHERE id=$2`, u.Quantity, u.ItemID)
		if err != nil {
			return fmt.Errorf("update order_item %s: %w", u.ItemID, err)
		}
	}
	for _, e := range events {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO dispatch_events (id, order_id, product_id, quantity, created_at)
			VALUES ($1,$2,$3,$4,$5)`,
			e.ID, e.OrderID, e.ProductID, e.Quantity, e.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert dispatch_event: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET status=$1, delivered_by=$2, updated_at=$3 WHERE id=$4`,
		status, pq.Array(deliveredBy), time.Now(), orderID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	return tx.Commit()
}

// ApplyReversal writes the order record back to Confirmed, clears the
// dispatch log, credits product stock, then resets item progress, all in
// one transaction.
func (r *postgresRepo) ApplyReversal(ctx context.Context, orderID uuid.UUID, credits []StockChange) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		StatusConfirmed, time.Now(), orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM dispatch_events WHERE order_id=$1`, orderID)
	if err != nil {
		return fmt.Errorf("clear dispatch_events: %w", err)
	}

	if err := applyStockChanges(ctx, tx, credits); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE order_items SET dispatched_quantity=0 WHERE order_id=$1`, orderID)
	if err != nil {
		return fmt.Errorf("reset order_items: %w", err)
	}

	return tx.Commit()
}

// ── helpers ──────────────────────────────────────────────────────────────────

// applyStockChanges writes each stock value and its ledger entry.
func applyStockChanges(ctx context.Context, tx *sql.Tx, changes []StockChange) error {
	for _, c := range changes {
		_, err := tx.ExecContext(ctx,
			`UPDATE products SET stock=$1, updated_at=$2 WHERE id=$3`,
			c.NewStock, time.Now(), c.ProductID)
		if err != nil {
			return fmt.Errorf("update product %s stock: %w", c.ProductID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO stock_history (id, product_id, previous_stock, change, new_stock, change_type, order_id)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			uuid.New(), c.ProductID, c.PreviousStock, c.Change,
			c.NewStock, c.ChangeType, c.OrderID)
		if err != nil {
			return fmt.Errorf("insert stock_history for %s: %w", c.ProductID, err)
		}
	}
	return nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit, price, dispatched_quantity
		FROM order_items WHERE order_id=$1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.Unit, &item.Price, &item.DispatchedQuantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) listEvents(ctx context.Context, orderID uuid.UUID) ([]*DispatchEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, created_at
		FROM dispatch_events WHERE order_id=$1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []*DispatchEvent
	for rows.Next() {
		e := &DispatchEvent{}
		if err := rows.Scan(&e.ID, &e.OrderID, &e.ProductID, &e.Quantity, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
