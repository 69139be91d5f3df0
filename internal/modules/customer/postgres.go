package customer

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateCustomer(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, city, phone, delivery_location)
		VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.Name, c.City, c.Phone, c.DeliveryLocation)
	return err
}

func (r *postgresRepo) GetCustomerByID(ctx context.Context, id string) (*Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	c := &Customer{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, city, phone, delivery_location, created_at, updated_at
		FROM customers WHERE id=$1`, uid).
		Scan(&c.ID, &c.Name, &c.City, &c.Phone, &c.DeliveryLocation,
			&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) ListCustomers(ctx context.Context) ([]*Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, city, phone, delivery_location, created_at, updated_at
		FROM customers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var customers []*Customer
	for rows.Next() {
		c := &Customer{}
		if err := rows.Scan(&c.ID, &c.Name, &c.City, &c.Phone, &c.DeliveryLocation,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *postgresRepo) UpdateCustomer(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE customers SET name=$1, city=$2, phone=$3, delivery_location=$4, updated_at=$5
		WHERE id=$6`,
		c.Name, c.City, c.Phone, c.DeliveryLocation, time.Now(), c.ID)
	return err
}

func (r *postgresRepo) DeleteCustomer(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM customers WHERE id=$1`, uid)
	return err
}
