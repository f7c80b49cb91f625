package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Customer struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       NullString `json:"email"`
	PhoneNumber NullString `json:"phoneNumber"`
	Address     NullString `json:"address"`
	BusinessID  string     `json:"businessId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CustomersStore struct {
	db *pgxpool.Pool
}

const customerColumns = `id, name, email, phone_number, address, business_id, created_at, updated_at`

func scanCustomer(row pgx.Row, c *Customer) error {
	return row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.PhoneNumber,
		&c.Address,
		&c.BusinessID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

func (s *CustomersStore) List(ctx context.Context, businessID string) ([]Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE business_id = $1 ORDER BY created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		var c Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *CustomersStore) Create(ctx context.Context, customer *Customer) error {
	query := `
	  INSERT INTO customers (name, email, phone_number, address, business_id)
	  VALUES ($1, $2, $3, $4, $5)
	  RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.db.QueryRow(ctx, query,
		customer.Name,
		customer.Email.Ptr(),
		customer.PhoneNumber.Ptr(),
		customer.Address.Ptr(),
		customer.BusinessID,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
}

var validCustomerFields = map[string]bool{
	"name":         true,
	"email":        true,
	"phone_number": true,
	"address":      true,
}

func (s *CustomersStore) Update(ctx context.Context, businessID, id string, updates map[string]any) (*Customer, error) {
	query, args, err := buildScopedUpdate("customers", customerColumns, validCustomerFields, businessID, id, updates)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	c := &Customer{}
	if err := scanCustomer(s.db.QueryRow(ctx, query, args...), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CustomersStore) Delete(ctx context.Context, businessID, id string) error {
	query := `DELETE FROM customers WHERE id = $1 AND business_id = $2`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx, query, id, businessID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
