package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	BusinessID   string          `json:"businessId"`
	RecordedByID string          `json:"recordedById"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type ExpensesStore struct {
	db *pgxpool.Pool
}

const expenseColumns = `id, description, amount, category, business_id, recorded_by_id, created_at, updated_at`

func scanExpense(row pgx.Row, e *Expense) error {
	return row.Scan(
		&e.ID,
		&e.Description,
		&e.Amount,
		&e.Category,
		&e.BusinessID,
		&e.RecordedByID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}

func (s *ExpensesStore) List(ctx context.Context, businessID string) ([]Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE business_id = $1 ORDER BY created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []Expense{}
	for rows.Next() {
		var e Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *ExpensesStore) Create(ctx context.Context, expense *Expense) error {
	query := `
	  INSERT INTO expenses (description, amount, category, business_id, recorded_by_id)
	  VALUES ($1, $2, $3, $4, $5)
	  RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.db.QueryRow(ctx, query,
		expense.Description,
		expense.Amount,
		expense.Category,
		expense.BusinessID,
		expense.RecordedByID,
	).Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
}

var validExpenseFields = map[string]bool{
	"description": true,
	"amount":      true,
	"category":    true,
}

func (s *ExpensesStore) Update(ctx context.Context, businessID, id string, updates map[string]any) (*Expense, error) {
	query, args, err := buildScopedUpdate("expenses", expenseColumns, validExpenseFields, businessID, id, updates)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	e := &Expense{}
	if err := scanExpense(s.db.QueryRow(ctx, query, args...), e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *ExpensesStore) Delete(ctx context.Context, businessID, id string) error {
	query := `DELETE FROM expenses WHERE id = $1 AND business_id = $2`

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
