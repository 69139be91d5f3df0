package transport

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateTransport(ctx context.Context, t *Transport) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transports (id, name, city, phone) VALUES ($1,$2,$3,$4)`,
		t.ID, t.Name, t.City, t.Phone)
	return err
}

func (r *postgresRepo) GetTransportByID(ctx context.Context, id string) (*Transport, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	t := &Transport{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, city, phone, created_at, updated_at
		FROM transports WHERE id=$1`, uid).
		Scan(&t.ID, &t.Name, &t.City, &t.Phone, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresRepo) ListTransports(ctx context.Context) ([]*Transport, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, city, phone, created_at, updated_at
		FROM transports ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var transports []*Transport
	for rows.Next() {
		t := &Transport{}
		if err := rows.Scan(&t.ID, &t.Name, &t.City, &t.Phone,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		transports = append(transports, t)
	}
	return transports, rows.Err()
}

func (r *postgresRepo) UpdateTransport(ctx context.Context, t *Transport) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE transports SET name=$1, city=$2, phone=$3, updated_at=$4 WHERE id=$5`,
		t.Name, t.City, t.Phone, time.Now(), t.ID)
	return err
}

func (r *postgresRepo) DeleteTransport(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM transports WHERE id=$1`, uid)
	return err
}
