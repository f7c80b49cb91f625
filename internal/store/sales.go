package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	PaymentCash         = "cash"
	PaymentCard         = "card"
	PaymentMobileMoney  = "mobile_money"
	PaymentBankTransfer = "bank_transfer"
)

type Sale struct {
	ID            string          `json:"id"`
	CustomerID    NullString      `json:"customerId"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	BusinessID    string          `json:"businessId"`
	SoldByID      string          `json:"soldById"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type SaleItem struct {
	ID         string          `json:"id"`
	SaleID     string          `json:"saleId"`
	ProductID  string          `json:"productId"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// SaleItemInput is what the caller supplies; prices are resolved server-side
// from the product rows inside the sale transaction.
type SaleItemInput struct {
	ProductID string
	Quantity  int
}

type SaleItemDetail struct {
	SaleItem
	Product Product `json:"product"`
}

type SaleDetail struct {
	Sale
	Customer *Customer        `json:"customer,omitempty"`
	Items    []SaleItemDetail `json:"items"`
}

type SalesStore struct {
	db *pgxpool.Pool
}

// priceSaleItems freezes each line at the given unit price and recomputes the
// sale total from the lines. unitPrices is positional with items.
func priceSaleItems(items []SaleItemInput, unitPrices []decimal.Decimal) ([]SaleItem, decimal.Decimal) {
	lines := make([]SaleItem, 0, len(items))
	total := decimal.Zero

	for i, item := range items {
		lineTotal := unitPrices[i].Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		lines = append(lines, SaleItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  unitPrices[i],
			TotalPrice: lineTotal,
		})
	}

	return lines, total
}

// checkClaimedTotal cross-checks a client-supplied total against the
// recomputed one. A zero claim means the client sent none.
func checkClaimedTotal(computed, claimed decimal.Decimal) error {
	if !claimed.IsZero() && !claimed.Equal(computed) {
		return ErrTotalMismatch
	}
	return nil
}

// Create writes the sale, its line items, and the stock decrements as one
// transaction. Unit prices are frozen from the product rows at this moment,
// the total is recomputed from them, and a physical product's stock may not
// go below zero (the guarded UPDATE aborts the whole sale instead).
func (s *SalesStore) Create(ctx context.Context, sale *Sale, items []SaleItemInput, claimedTotal decimal.Decimal) error {
	if len(items) == 0 {
		return ErrEmptySale
	}

	return withTx(s.db, ctx, func(tx pgx.Tx) error {
		prices := make([]decimal.Decimal, 0, len(items))
		types := make([]string, 0, len(items))

		for _, item := range items {
			var price decimal.Decimal
			var productType string

			err := tx.QueryRow(ctx,
				`SELECT price, type FROM products WHERE id = $1 AND business_id = $2`,
				item.ProductID, sale.BusinessID,
			).Scan(&price, &productType)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrNotFound
				}
				return err
			}

			prices = append(prices, price)
			types = append(types, productType)
		}

		lines, total := priceSaleItems(items, prices)
		if err := checkClaimedTotal(total, claimedTotal); err != nil {
			return err
		}
		sale.TotalAmount = total

		if sale.Status == "" {
			sale.Status = "completed"
		}

		err := tx.QueryRow(ctx, `
		  INSERT INTO sales (customer_id, total_amount, payment_method, status, business_id, sold_by_id)
		  VALUES ($1, $2, $3, $4, $5, $6)
		  RETURNING id, created_at
		`,
			sale.CustomerID.Ptr(),
			sale.TotalAmount,
			sale.PaymentMethod,
			sale.Status,
			sale.BusinessID,
			sale.SoldByID,
		).Scan(&sale.ID, &sale.CreatedAt)
		if err != nil {
			return err
		}

		for i := range lines {
			lines[i].SaleID = sale.ID
			err := tx.QueryRow(ctx, `
			  INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, total_price)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id
			`,
				lines[i].SaleID,
				lines[i].ProductID,
				lines[i].Quantity,
				lines[i].UnitPrice,
				lines[i].TotalPrice,
			).Scan(&lines[i].ID)
			if err != nil {
				return err
			}

			// services carry no inventory
			if types[i] == ProductTypeService {
				continue
			}

			res, err := tx.Exec(ctx, `
			  UPDATE products
			  SET stock_quantity = stock_quantity - $1, updated_at = NOW()
			  WHERE id = $2 AND business_id = $3 AND stock_quantity >= $1
			`,
				lines[i].Quantity,
				lines[i].ProductID,
				sale.BusinessID,
			)
			if err != nil {
				return err
			}
			if res.RowsAffected() == 0 {
				return ErrInsufficientStock
			}
		}

		return nil
	})
}

func (s *SalesStore) List(ctx context.Context, businessID string) ([]SaleDetail, error) {
	query := `
	  SELECT s.id, s.customer_id, s.total_amount, s.payment_method, s.status, s.business_id, s.sold_by_id, s.created_at,
	         c.id, c.name, c.email, c.phone_number, c.address, c.business_id, c.created_at, c.updated_at
	  FROM sales s
	  LEFT JOIN customers c ON s.customer_id = c.id
	  WHERE s.business_id = $1
	  ORDER BY s.created_at DESC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []SaleDetail{}
	for rows.Next() {
		var sd SaleDetail
		var (
			custID, custName               *string
			custEmail, custPhone, custAddr NullString
			custBusinessID                 *string
			custCreatedAt, custUpdatedAt   *time.Time
		)
		err := rows.Scan(
			&sd.ID, &sd.CustomerID, &sd.TotalAmount, &sd.PaymentMethod, &sd.Status, &sd.BusinessID, &sd.SoldByID, &sd.CreatedAt,
			&custID, &custName, &custEmail, &custPhone, &custAddr, &custBusinessID, &custCreatedAt, &custUpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if custID != nil {
			sd.Customer = &Customer{
				ID:          *custID,
				Name:        *custName,
				Email:       custEmail,
				PhoneNumber: custPhone,
				Address:     custAddr,
				BusinessID:  *custBusinessID,
				CreatedAt:   *custCreatedAt,
				UpdatedAt:   *custUpdatedAt,
			}
		}
		sales = append(sales, sd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sales {
		items, err := s.itemsForSale(ctx, sales[i].ID)
		if err != nil {
			return nil, err
		}
		sales[i].Items = items
	}
	return sales, nil
}

func (s *SalesStore) GetByID(ctx context.Context, businessID, id string) (*SaleDetail, error) {
	query := `
	  SELECT id, customer_id, total_amount, payment_method, status, business_id, sold_by_id, created_at
	  FROM sales
	  WHERE id = $1 AND business_id = $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	sd := &SaleDetail{}
	err := s.db.QueryRow(ctx, query, id, businessID).Scan(
		&sd.ID, &sd.CustomerID, &sd.TotalAmount, &sd.PaymentMethod, &sd.Status, &sd.BusinessID, &sd.SoldByID, &sd.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sd.Items, err = s.itemsForSale(ctx, sd.ID)
	if err != nil {
		return nil, err
	}
	return sd, nil
}

func (s *SalesStore) itemsForSale(ctx context.Context, saleID string) ([]SaleItemDetail, error) {
	query := `
	  SELECT si.id, si.sale_id, si.product_id, si.quantity, si.unit_price, si.total_price,
	         ` + prefixedProductColumns("p") + `
	  FROM sale_items si
	  INNER JOIN products p ON si.product_id = p.id
	  WHERE si.sale_id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []SaleItemDetail{}
	for rows.Next() {
		var item SaleItemDetail
		err := rows.Scan(
			&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.TotalPrice,
			&item.Product.ID, &item.Product.Name, &item.Product.Description, &item.Product.Type,
			&item.Product.Price, &item.Product.StockQuantity, &item.Product.MinStockLevel,
			&item.Product.CategoryID, &item.Product.BusinessID, &item.Product.IsActive,
			&item.Product.CreatedAt, &item.Product.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func prefixedProductColumns(alias string) string {
	return alias + ".id, " + alias + ".name, " + alias + ".description, " + alias + ".type, " +
		alias + ".price, " + alias + ".stock_quantity, " + alias + ".min_stock_level, " +
		alias + ".category_id, " + alias + ".business_id, " + alias + ".is_active, " +
		alias + ".created_at, " + alias + ".updated_at"
}
