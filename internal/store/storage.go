package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound             = errors.New("resource not found")
	ErrDuplicatePhoneNumber = errors.New("a user with that phone number already exists")
	ErrInsufficientStock    = errors.New("insufficient stock for product")
	ErrTotalMismatch        = errors.New("sale total does not match line items")
	ErrEmptySale            = errors.New("sale must contain at least one item")

	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Users interface {
		GetByID(ctx context.Context, id string) (*User, error)
		GetByPhoneNumber(ctx context.Context, phone string) (*User, error)
		Create(ctx context.Context, user *User) error
		CreateMerchant(ctx context.Context, user *User, business *Business) error
		List(ctx context.Context) ([]User, error)
		ListByRole(ctx context.Context, role Role) ([]User, error)
		UpdateStatus(ctx context.Context, id, status string) (*User, error)
		Delete(ctx context.Context, id string) error
		EnsureSuperAdmin(ctx context.Context, phone string, passwordHash []byte) (*User, error)
	}
	Businesses interface {
		GetByOwner(ctx context.Context, ownerID string) (*Business, error)
	}
	Products interface {
		List(ctx context.Context, businessID string) ([]Product, error)
		GetByID(ctx context.Context, businessID, id string) (*Product, error)
		Create(ctx context.Context, product *Product) error
		Update(ctx context.Context, businessID, id string, updates map[string]any) (*Product, error)
		Delete(ctx context.Context, businessID, id string) error
		ListLowStock(ctx context.Context, businessID string) ([]Product, error)
	}
	Customers interface {
		List(ctx context.Context, businessID string) ([]Customer, error)
		Create(ctx context.Context, customer *Customer) error
		Update(ctx context.Context, businessID, id string, updates map[string]any) (*Customer, error)
		Delete(ctx context.Context, businessID, id string) error
	}
	Categories interface {
		List(ctx context.Context, businessID string) ([]Category, error)
		Create(ctx context.Context, category *Category) error
	}
	Expenses interface {
		List(ctx context.Context, businessID string) ([]Expense, error)
		Create(ctx context.Context, expense *Expense) error
		Update(ctx context.Context, businessID, id string, updates map[string]any) (*Expense, error)
		Delete(ctx context.Context, businessID, id string) error
	}
	Sales interface {
		Create(ctx context.Context, sale *Sale, items []SaleItemInput, claimedTotal decimal.Decimal) error
		List(ctx context.Context, businessID string) ([]SaleDetail, error)
		GetByID(ctx context.Context, businessID, id string) (*SaleDetail, error)
	}
	Analytics interface {
		DashboardStats(ctx context.Context, businessID string, now time.Time) (*DashboardStats, error)
		WeeklySales(ctx context.Context, businessID string, start time.Time) ([]DailySales, error)
		AppStaffStats(ctx context.Context, now time.Time) (*AppStaffStats, error)
		MerchantsWithBusiness(ctx context.Context) ([]MerchantOverview, error)
		RecentActivities(ctx context.Context, limit int) ([]Activity, error)
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Users:      &UsersStore{db},
		Businesses: &BusinessesStore{db},
		Products:   &ProductsStore{db},
		Customers:  &CustomersStore{db},
		Categories: &CategoriesStore{db},
		Expenses:   &ExpensesStore{db},
		Sales:      &SalesStore{db},
		Analytics:  &AnalyticsStore{db},
	}
}

func withTx(db *pgxpool.Pool, ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}
