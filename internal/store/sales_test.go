package store

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceSaleItems(t *testing.T) {
	items := []SaleItemInput{
		{ProductID: "p-1", Quantity: 3},
		{ProductID: "p-2", Quantity: 1},
		{ProductID: "p-3", Quantity: 2},
	}
	prices := []decimal.Decimal{
		decimal.RequireFromString("1500.00"),
		decimal.RequireFromString("18500.00"),
		decimal.RequireFromString("250.50"),
	}

	lines, total := priceSaleItems(items, prices)

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	wantLineTotals := []string{"4500.00", "18500.00", "501.00"}
	sum := decimal.Zero
	for i, line := range lines {
		if line.ProductID != items[i].ProductID || line.Quantity != items[i].Quantity {
			t.Errorf("line %d lost its identity: %+v", i, line)
		}
		if !line.UnitPrice.Equal(prices[i]) {
			t.Errorf("line %d: unit price not frozen, got %s", i, line.UnitPrice)
		}
		if !line.TotalPrice.Equal(decimal.RequireFromString(wantLineTotals[i])) {
			t.Errorf("line %d: expected total %s, got %s", i, wantLineTotals[i], line.TotalPrice)
		}
		sum = sum.Add(line.TotalPrice)
	}

	// The sale total is exactly the sum of its line totals.
	if !total.Equal(sum) {
		t.Errorf("total %s does not equal line sum %s", total, sum)
	}
	if !total.Equal(decimal.RequireFromString("23501.00")) {
		t.Errorf("expected total 23501.00, got %s", total)
	}
}

func TestCheckClaimedTotal(t *testing.T) {
	computed := decimal.RequireFromString("23501.00")

	// No client total: nothing to cross-check.
	if err := checkClaimedTotal(computed, decimal.Zero); err != nil {
		t.Errorf("zero claim should pass, got %v", err)
	}

	// Agreeing totals pass, including representation differences.
	if err := checkClaimedTotal(computed, decimal.RequireFromString("23501")); err != nil {
		t.Errorf("equal claim should pass, got %v", err)
	}

	// A disagreeing client total rejects the sale.
	err := checkClaimedTotal(computed, decimal.RequireFromString("23500.00"))
	if !errors.Is(err, ErrTotalMismatch) {
		t.Errorf("expected ErrTotalMismatch, got %v", err)
	}
}
