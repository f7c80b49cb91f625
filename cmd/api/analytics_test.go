package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"duka/internal/store"

	"github.com/shopspring/decimal"
)

func TestDashboardStats(t *testing.T) {
	app, ts, cookie := saleTestApp(t)

	ts.analytics.dashboardStats = func(ctx context.Context, businessID string, now time.Time) (*store.DashboardStats, error) {
		return &store.DashboardStats{
			TodaySales:        decimal.RequireFromString("42000.00"),
			TodayTransactions: 7,
			NewCustomers:      2,
			ProductsSold:      15,
		}, nil
	}
	mux := app.mount()

	rr := doRequest(t, mux, http.MethodGet, "/api/dashboard/stats", nil, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var got store.DashboardStats
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.TodayTransactions != 7 || got.ProductsSold != 15 {
		t.Errorf("unexpected stats: %+v", got)
	}
}

func TestWeeklySalesWindow(t *testing.T) {
	app, ts, cookie := saleTestApp(t)

	var gotStart time.Time
	ts.analytics.weeklySales = func(ctx context.Context, businessID string, start time.Time) ([]store.DailySales, error) {
		gotStart = start
		return []store.DailySales{
			{Date: "2026-08-30", Amount: decimal.RequireFromString("12000.00")},
		}, nil
	}
	mux := app.mount()

	before := time.Now()
	rr := doRequest(t, mux, http.MethodGet, "/api/analytics/weekly-sales", nil, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	// The window starts seven days back from now.
	want := before.AddDate(0, 0, -7)
	if gotStart.Before(want.Add(-time.Minute)) || gotStart.After(want.Add(time.Minute)) {
		t.Errorf("expected start near %v, got %v", want, gotStart)
	}
}

func TestDashboardStatsRequiresBusiness(t *testing.T) {
	app, ts := newTestApp(t)
	user, _ := merchantFixture()
	cookie := loginAs(t, app, ts, user)
	mux := app.mount()

	rr := doRequest(t, mux, http.MethodGet, "/api/dashboard/stats", nil, cookie)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rr.Code, rr.Body.String())
	}
}
