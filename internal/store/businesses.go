package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Business struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description NullString `json:"description"`
	Address     NullString `json:"address"`
	PhoneNumber NullString `json:"phoneNumber"`
	Email       NullString `json:"email"`
	OwnerID     string     `json:"ownerId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type BusinessesStore struct {
	db *pgxpool.Pool
}

func createBusiness(ctx context.Context, tx pgx.Tx, business *Business) error {
	query := `
	  INSERT INTO businesses (name, description, address, phone_number, email, owner_id)
	  VALUES ($1, $2, $3, $4, $5, $6)
	  RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return tx.QueryRow(ctx, query,
		business.Name,
		business.Description.Ptr(),
		business.Address.Ptr(),
		business.PhoneNumber.Ptr(),
		business.Email.Ptr(),
		business.OwnerID,
	).Scan(&business.ID, &business.CreatedAt, &business.UpdatedAt)
}

// GetByOwner resolves the caller's operational scope. One business per
// merchant account by convention; the first row wins if more exist.
func (s *BusinessesStore) GetByOwner(ctx context.Context, ownerID string) (*Business, error) {
	query := `
	  SELECT id, name, description, address, phone_number, email, owner_id, created_at, updated_at
	  FROM businesses
	  WHERE owner_id = $1
	  ORDER BY created_at
	  LIMIT 1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	business := &Business{}
	err := s.db.QueryRow(ctx, query, ownerID).Scan(
		&business.ID,
		&business.Name,
		&business.Description,
		&business.Address,
		&business.PhoneNumber,
		&business.Email,
		&business.OwnerID,
		&business.CreatedAt,
		&business.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return business, nil
}
