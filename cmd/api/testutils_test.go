package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"duka/internal/auth"
	"duka/internal/ratelimiter"
	"duka/internal/session"
	"duka/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Mock stores: every method delegates to an optional func field and falls
// back to ErrNotFound / empty results, so each test overrides only what it
// exercises.

type mockUsers struct {
	getByID          func(ctx context.Context, id string) (*store.User, error)
	getByPhoneNumber func(ctx context.Context, phone string) (*store.User, error)
	create           func(ctx context.Context, user *store.User) error
	createMerchant   func(ctx context.Context, user *store.User, business *store.Business) error
	list             func(ctx context.Context) ([]store.User, error)
	listByRole       func(ctx context.Context, role store.Role) ([]store.User, error)
	updateStatus     func(ctx context.Context, id, status string) (*store.User, error)
	delete           func(ctx context.Context, id string) error
}

func (m *mockUsers) GetByID(ctx context.Context, id string) (*store.User, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUsers) GetByPhoneNumber(ctx context.Context, phone string) (*store.User, error) {
	if m.getByPhoneNumber != nil {
		return m.getByPhoneNumber(ctx, phone)
	}
	return nil, store.ErrNotFound
}

func (m *mockUsers) Create(ctx context.Context, user *store.User) error {
	if m.create != nil {
		return m.create(ctx, user)
	}
	return nil
}

func (m *mockUsers) CreateMerchant(ctx context.Context, user *store.User, business *store.Business) error {
	if m.createMerchant != nil {
		return m.createMerchant(ctx, user, business)
	}
	return nil
}

func (m *mockUsers) List(ctx context.Context) ([]store.User, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return []store.User{}, nil
}

func (m *mockUsers) ListByRole(ctx context.Context, role store.Role) ([]store.User, error) {
	if m.listByRole != nil {
		return m.listByRole(ctx, role)
	}
	return []store.User{}, nil
}

func (m *mockUsers) UpdateStatus(ctx context.Context, id, status string) (*store.User, error) {
	if m.updateStatus != nil {
		return m.updateStatus(ctx, id, status)
	}
	return nil, store.ErrNotFound
}

func (m *mockUsers) Delete(ctx context.Context, id string) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return nil
}

func (m *mockUsers) EnsureSuperAdmin(ctx context.Context, phone string, hash []byte) (*store.User, error) {
	return nil, store.ErrNotFound
}

type mockBusinesses struct {
	getByOwner func(ctx context.Context, ownerID string) (*store.Business, error)
}

func (m *mockBusinesses) GetByOwner(ctx context.Context, ownerID string) (*store.Business, error) {
	if m.getByOwner != nil {
		return m.getByOwner(ctx, ownerID)
	}
	return nil, store.ErrNotFound
}

type mockProducts struct {
	list         func(ctx context.Context, businessID string) ([]store.Product, error)
	getByID      func(ctx context.Context, businessID, id string) (*store.Product, error)
	create       func(ctx context.Context, product *store.Product) error
	update       func(ctx context.Context, businessID, id string, updates map[string]any) (*store.Product, error)
	delete       func(ctx context.Context, businessID, id string) error
	listLowStock func(ctx context.Context, businessID string) ([]store.Product, error)
}

func (m *mockProducts) List(ctx context.Context, businessID string) ([]store.Product, error) {
	if m.list != nil {
		return m.list(ctx, businessID)
	}
	return []store.Product{}, nil
}

func (m *mockProducts) GetByID(ctx context.Context, businessID, id string) (*store.Product, error) {
	if m.getByID != nil {
		return m.getByID(ctx, businessID, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockProducts) Create(ctx context.Context, product *store.Product) error {
	if m.create != nil {
		return m.create(ctx, product)
	}
	return nil
}

func (m *mockProducts) Update(ctx context.Context, businessID, id string, updates map[string]any) (*store.Product, error) {
	if m.update != nil {
		return m.update(ctx, businessID, id, updates)
	}
	return nil, store.ErrNotFound
}

func (m *mockProducts) Delete(ctx context.Context, businessID, id string) error {
	if m.delete != nil {
		return m.delete(ctx, businessID, id)
	}
	return store.ErrNotFound
}

func (m *mockProducts) ListLowStock(ctx context.Context, businessID string) ([]store.Product, error) {
	if m.listLowStock != nil {
		return m.listLowStock(ctx, businessID)
	}
	return []store.Product{}, nil
}

type mockCustomers struct {
	list   func(ctx context.Context, businessID string) ([]store.Customer, error)
	create func(ctx context.Context, customer *store.Customer) error
	update func(ctx context.Context, businessID, id string, updates map[string]any) (*store.Customer, error)
	delete func(ctx context.Context, businessID, id string) error
}

func (m *mockCustomers) List(ctx context.Context, businessID string) ([]store.Customer, error) {
	if m.list != nil {
		return m.list(ctx, businessID)
	}
	return []store.Customer{}, nil
}

func (m *mockCustomers) Create(ctx context.Context, customer *store.Customer) error {
	if m.create != nil {
		return m.create(ctx, customer)
	}
	return nil
}

func (m *mockCustomers) Update(ctx context.Context, businessID, id string, updates map[string]any) (*store.Customer, error) {
	if m.update != nil {
		return m.update(ctx, businessID, id, updates)
	}
	return nil, store.ErrNotFound
}

func (m *mockCustomers) Delete(ctx context.Context, businessID, id string) error {
	if m.delete != nil {
		return m.delete(ctx, businessID, id)
	}
	return store.ErrNotFound
}

type mockCategories struct {
	list   func(ctx context.Context, businessID string) ([]store.Category, error)
	create func(ctx context.Context, category *store.Category) error
}

func (m *mockCategories) List(ctx context.Context, businessID string) ([]store.Category, error) {
	if m.list != nil {
		return m.list(ctx, businessID)
	}
	return []store.Category{}, nil
}

func (m *mockCategories) Create(ctx context.Context, category *store.Category) error {
	if m.create != nil {
		return m.create(ctx, category)
	}
	return nil
}

type mockExpenses struct {
	list   func(ctx context.Context, businessID string) ([]store.Expense, error)
	create func(ctx context.Context, expense *store.Expense) error
	update func(ctx context.Context, businessID, id string, updates map[string]any) (*store.Expense, error)
	delete func(ctx context.Context, businessID, id string) error
}

func (m *mockExpenses) List(ctx context.Context, businessID string) ([]store.Expense, error) {
	if m.list != nil {
		return m.list(ctx, businessID)
	}
	return []store.Expense{}, nil
}

func (m *mockExpenses) Create(ctx context.Context, expense *store.Expense) error {
	if m.create != nil {
		return m.create(ctx, expense)
	}
	return nil
}

func (m *mockExpenses) Update(ctx context.Context, businessID, id string, updates map[string]any) (*store.Expense, error) {
	if m.update != nil {
		return m.update(ctx, businessID, id, updates)
	}
	return nil, store.ErrNotFound
}

func (m *mockExpenses) Delete(ctx context.Context, businessID, id string) error {
	if m.delete != nil {
		return m.delete(ctx, businessID, id)
	}
	return store.ErrNotFound
}

type mockSales struct {
	create  func(ctx context.Context, sale *store.Sale, items []store.SaleItemInput, claimedTotal decimal.Decimal) error
	list    func(ctx context.Context, businessID string) ([]store.SaleDetail, error)
	getByID func(ctx context.Context, businessID, id string) (*store.SaleDetail, error)
}

func (m *mockSales) Create(ctx context.Context, sale *store.Sale, items []store.SaleItemInput, claimedTotal decimal.Decimal) error {
	if m.create != nil {
		return m.create(ctx, sale, items, claimedTotal)
	}
	return nil
}

func (m *mockSales) List(ctx context.Context, businessID string) ([]store.SaleDetail, error) {
	if m.list != nil {
		return m.list(ctx, businessID)
	}
	return []store.SaleDetail{}, nil
}

func (m *mockSales) GetByID(ctx context.Context, businessID, id string) (*store.SaleDetail, error) {
	if m.getByID != nil {
		return m.getByID(ctx, businessID, id)
	}
	return nil, store.ErrNotFound
}

type mockAnalytics struct {
	dashboardStats        func(ctx context.Context, businessID string, now time.Time) (*store.DashboardStats, error)
	weeklySales           func(ctx context.Context, businessID string, start time.Time) ([]store.DailySales, error)
	appStaffStats         func(ctx context.Context, now time.Time) (*store.AppStaffStats, error)
	merchantsWithBusiness func(ctx context.Context) ([]store.MerchantOverview, error)
	recentActivities      func(ctx context.Context, limit int) ([]store.Activity, error)
}

func (m *mockAnalytics) DashboardStats(ctx context.Context, businessID string, now time.Time) (*store.DashboardStats, error) {
	if m.dashboardStats != nil {
		return m.dashboardStats(ctx, businessID, now)
	}
	return &store.DashboardStats{}, nil
}

func (m *mockAnalytics) WeeklySales(ctx context.Context, businessID string, start time.Time) ([]store.DailySales, error) {
	if m.weeklySales != nil {
		return m.weeklySales(ctx, businessID, start)
	}
	return []store.DailySales{}, nil
}

func (m *mockAnalytics) AppStaffStats(ctx context.Context, now time.Time) (*store.AppStaffStats, error) {
	if m.appStaffStats != nil {
		return m.appStaffStats(ctx, now)
	}
	return &store.AppStaffStats{}, nil
}

func (m *mockAnalytics) MerchantsWithBusiness(ctx context.Context) ([]store.MerchantOverview, error) {
	if m.merchantsWithBusiness != nil {
		return m.merchantsWithBusiness(ctx)
	}
	return []store.MerchantOverview{}, nil
}

func (m *mockAnalytics) RecentActivities(ctx context.Context, limit int) ([]store.Activity, error) {
	if m.recentActivities != nil {
		return m.recentActivities(ctx, limit)
	}
	return []store.Activity{}, nil
}

type testStorage struct {
	users      *mockUsers
	businesses *mockBusinesses
	products   *mockProducts
	customers  *mockCustomers
	categories *mockCategories
	expenses   *mockExpenses
	sales      *mockSales
	analytics  *mockAnalytics
}

func newTestApp(t *testing.T) (*application, *testStorage) {
	t.Helper()

	ts := &testStorage{
		users:      &mockUsers{},
		businesses: &mockBusinesses{},
		products:   &mockProducts{},
		customers:  &mockCustomers{},
		categories: &mockCategories{},
		expenses:   &mockExpenses{},
		sales:      &mockSales{},
		analytics:  &mockAnalytics{},
	}

	app := &application{
		config: config{
			env:        "test",
			sessionTTL: time.Hour,
		},
		store: store.Storage{
			Users:      ts.users,
			Businesses: ts.businesses,
			Products:   ts.products,
			Customers:  ts.customers,
			Categories: ts.categories,
			Expenses:   ts.expenses,
			Sales:      ts.sales,
			Analytics:  ts.analytics,
		},
		sessions:    session.NewMemoryStore(time.Hour),
		verifier:    auth.NewBcryptVerifier(),
		logger:      zap.NewNop().Sugar(),
		rateLimiter: ratelimiter.NewFixedWindowLimiter(1000, time.Second),
	}

	return app, ts
}

// loginAs registers the user in the mock store and returns a request cookie
// for an active session.
func loginAs(t *testing.T, app *application, ts *testStorage, user *store.User) *http.Cookie {
	t.Helper()

	prev := ts.users.getByID
	ts.users.getByID = func(ctx context.Context, id string) (*store.User, error) {
		if id == user.ID {
			return user, nil
		}
		if prev != nil {
			return prev(ctx, id)
		}
		return nil, store.ErrNotFound
	}

	token, err := app.sessions.Create(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	return &http.Cookie{Name: sessionCookieName, Value: token}
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func merchantFixture() (*store.User, *store.Business) {
	user := &store.User{
		ID:          "user-merchant-1",
		FullName:    "Asha Mushi",
		PhoneNumber: "+255788000001",
		Role:        store.RoleMerchant,
		Status:      store.StatusActive,
	}
	business := &store.Business{
		ID:      "0f6a1f5e-0000-4000-8000-000000000001",
		Name:    "Asha General Store",
		OwnerID: user.ID,
	}
	return user, business
}
