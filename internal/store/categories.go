package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description NullString `json:"description"`
	BusinessID  string     `json:"businessId"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type CategoriesStore struct {
	db *pgxpool.Pool
}

func (s *CategoriesStore) List(ctx context.Context, businessID string) ([]Category, error) {
	query := `
	  SELECT id, name, description, business_id, created_at
	  FROM categories
	  WHERE business_id = $1
	  ORDER BY name
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.BusinessID, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *CategoriesStore) Create(ctx context.Context, category *Category) error {
	query := `
	  INSERT INTO categories (name, description, business_id)
	  VALUES ($1, $2, $3)
	  RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.db.QueryRow(ctx, query,
		category.Name,
		category.Description.Ptr(),
		category.BusinessID,
	).Scan(&category.ID, &category.CreatedAt)
}
