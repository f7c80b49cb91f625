package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	ProductTypePhysical = "product"
	ProductTypeService  = "service"
)

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   NullString      `json:"description"`
	Type          string          `json:"type"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	MinStockLevel int             `json:"minStockLevel"`
	CategoryID    NullString      `json:"categoryId"`
	BusinessID    string          `json:"businessId"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type ProductsStore struct {
	db *pgxpool.Pool
}

const productColumns = `id, name, description, type, price, stock_quantity, min_stock_level, category_id, business_id, is_active, created_at, updated_at`

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Type,
		&p.Price,
		&p.StockQuantity,
		&p.MinStockLevel,
		&p.CategoryID,
		&p.BusinessID,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	products := []Product{}
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *ProductsStore) List(ctx context.Context, businessID string) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE business_id = $1 ORDER BY created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (s *ProductsStore) GetByID(ctx context.Context, businessID, id string) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND business_id = $2`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	p := &Product{}
	if err := scanProduct(s.db.QueryRow(ctx, query, id, businessID), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductsStore) Create(ctx context.Context, product *Product) error {
	query := `
	  INSERT INTO products (name, description, type, price, stock_quantity, min_stock_level, category_id, business_id, is_active)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	  RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.db.QueryRow(ctx, query,
		product.Name,
		product.Description.Ptr(),
		product.Type,
		product.Price,
		product.StockQuantity,
		product.MinStockLevel,
		product.CategoryID.Ptr(),
		product.BusinessID,
		product.IsActive,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

var validProductFields = map[string]bool{
	"name":            true,
	"description":     true,
	"type":            true,
	"price":           true,
	"stock_quantity":  true,
	"min_stock_level": true,
	"category_id":     true,
	"is_active":       true,
}

func (s *ProductsStore) Update(ctx context.Context, businessID, id string, updates map[string]any) (*Product, error) {
	query, args, err := buildScopedUpdate("products", productColumns, validProductFields, businessID, id, updates)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	p := &Product{}
	if err := scanProduct(s.db.QueryRow(ctx, query, args...), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductsStore) Delete(ctx context.Context, businessID, id string) error {
	query := `DELETE FROM products WHERE id = $1 AND business_id = $2`

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

func (s *ProductsStore) ListLowStock(ctx context.Context, businessID string) ([]Product, error) {
	query := `
	  SELECT ` + productColumns + `
	  FROM products
	  WHERE business_id = $1 AND type = $2 AND stock_quantity <= min_stock_level
	  ORDER BY stock_quantity
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, businessID, ProductTypePhysical)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

// buildScopedUpdate assembles an UPDATE limited to whitelisted columns, always
// keyed on both id and business_id so a foreign id can never mutate another
// tenant's row.
func buildScopedUpdate(table, returning string, validFields map[string]bool, businessID, id string, updates map[string]any) (string, []any, error) {
	if len(updates) == 0 {
		return "", nil, fmt.Errorf("no fields to update")
	}

	setClauses := []string{}
	args := []any{}
	argCounter := 1

	for field, value := range updates {
		if !validFields[field] {
			return "", nil, fmt.Errorf("invalid field name: %s", field)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", field, argCounter))
		args = append(args, value)
		argCounter++
	}
	args = append(args, id, businessID)

	query := fmt.Sprintf(
		"UPDATE %s SET %s, updated_at = NOW() WHERE id = $%d AND business_id = $%d RETURNING %s",
		table, strings.Join(setClauses, ", "), argCounter, argCounter+1, returning,
	)
	return query, args, nil
}
