package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TodaySales        decimal.Decimal `json:"todaySales"`
	TodayTransactions int             `json:"todayTransactions"`
	NewCustomers      int             `json:"newCustomers"`
	ProductsSold      int             `json:"productsSold"`
}

type DailySales struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type AppStaffStats struct {
	TotalMerchants    int             `json:"totalMerchants"`
	ActiveMerchants   int             `json:"activeMerchants"`
	InactiveMerchants int             `json:"inactiveMerchants"`
	TotalBusinesses   int             `json:"totalBusinesses"`
	TotalSales        decimal.Decimal `json:"totalSales"`
	MonthlyGrowth     float64         `json:"monthlyGrowth"`
}

type MerchantOverview struct {
	User
	Business *Business `json:"business,omitempty"`
}

type Activity struct {
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	BusinessName string          `json:"businessName"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type AnalyticsStore struct {
	db *pgxpool.Pool
}

// startOfDay truncates to the server-local calendar day; the stats window is
// [startOfDay, startOfDay+24h).
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *AnalyticsStore) DashboardStats(ctx context.Context, businessID string, now time.Time) (*DashboardStats, error) {
	dayStart := startOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	stats := &DashboardStats{}

	err := s.db.QueryRow(ctx, `
	  SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
	  FROM sales
	  WHERE business_id = $1 AND created_at >= $2 AND created_at < $3
	`, businessID, dayStart, dayEnd).Scan(&stats.TodaySales, &stats.TodayTransactions)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRow(ctx, `
	  SELECT COUNT(*)
	  FROM customers
	  WHERE business_id = $1 AND created_at >= $2 AND created_at < $3
	`, businessID, dayStart, dayEnd).Scan(&stats.NewCustomers)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRow(ctx, `
	  SELECT COALESCE(SUM(si.quantity), 0)
	  FROM sale_items si
	  INNER JOIN sales s ON si.sale_id = s.id
	  WHERE s.business_id = $1 AND s.created_at >= $2 AND s.created_at < $3
	`, businessID, dayStart, dayEnd).Scan(&stats.ProductsSold)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// WeeklySales sums totals per calendar date over [start, start+7d); dates with
// no sales are omitted and consumers treat them as zero.
func (s *AnalyticsStore) WeeklySales(ctx context.Context, businessID string, start time.Time) ([]DailySales, error) {
	end := start.AddDate(0, 0, 7)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, `
	  SELECT DATE(created_at)::text, COALESCE(SUM(total_amount), 0)
	  FROM sales
	  WHERE business_id = $1 AND created_at >= $2 AND created_at < $3
	  GROUP BY DATE(created_at)
	  ORDER BY DATE(created_at)
	`, businessID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	daily := []DailySales{}
	for rows.Next() {
		var d DailySales
		if err := rows.Scan(&d.Date, &d.Amount); err != nil {
			return nil, err
		}
		daily = append(daily, d)
	}
	return daily, rows.Err()
}

func (s *AnalyticsStore) AppStaffStats(ctx context.Context, now time.Time) (*AppStaffStats, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	stats := &AppStaffStats{}

	err := s.db.QueryRow(ctx, `
	  SELECT COUNT(*),
	         COUNT(*) FILTER (WHERE status = $2),
	         COUNT(*) FILTER (WHERE status <> $2)
	  FROM users
	  WHERE role = $1
	`, RoleMerchant, StatusActive).Scan(&stats.TotalMerchants, &stats.ActiveMerchants, &stats.InactiveMerchants)
	if err != nil {
		return nil, err
	}

	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM businesses`).Scan(&stats.TotalBusinesses); err != nil {
		return nil, err
	}

	if err := s.db.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM sales`).Scan(&stats.TotalSales); err != nil {
		return nil, err
	}

	growth, err := s.monthlyGrowth(ctx, now)
	if err != nil {
		return nil, err
	}
	stats.MonthlyGrowth = growth

	return stats, nil
}

// monthlyGrowth is the percentage change of this month's (to date) sales total
// over the whole previous month, 0 when the previous month had no sales.
func (s *AnalyticsStore) monthlyGrowth(ctx context.Context, now time.Time) (float64, error) {
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var thisTotal, lastTotal decimal.Decimal

	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE created_at >= $1`,
		thisMonth,
	).Scan(&thisTotal)
	if err != nil {
		return 0, err
	}

	err = s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE created_at >= $1 AND created_at < $2`,
		lastMonth, thisMonth,
	).Scan(&lastTotal)
	if err != nil {
		return 0, err
	}

	if lastTotal.IsZero() {
		return 0, nil
	}

	growth, _ := thisTotal.Sub(lastTotal).Div(lastTotal).Mul(decimal.NewFromInt(100)).Float64()
	return growth, nil
}

func (s *AnalyticsStore) MerchantsWithBusiness(ctx context.Context) ([]MerchantOverview, error) {
	query := `
	  SELECT u.id, u.full_name, u.phone_number, u.password, u.role, u.status, u.email,
	         u.profile_image_url, u.business_name, u.created_by_id, u.created_at, u.updated_at,
	         b.id, b.name, b.description, b.address, b.phone_number, b.email, b.owner_id, b.created_at, b.updated_at
	  FROM users u
	  LEFT JOIN businesses b ON b.owner_id = u.id
	  WHERE u.role = $1
	  ORDER BY u.created_at DESC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, RoleMerchant)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	merchants := []MerchantOverview{}
	for rows.Next() {
		var m MerchantOverview
		var (
			bizID, bizName, bizOwner   *string
			bizDesc, bizAddr, bizPhone NullString
			bizEmail                   NullString
			bizCreatedAt, bizUpdatedAt *time.Time
		)
		err := rows.Scan(
			&m.ID, &m.FullName, &m.PhoneNumber, &m.PasswordHash, &m.Role, &m.Status, &m.Email,
			&m.ProfileImageURL, &m.BusinessName, &m.CreatedByID, &m.CreatedAt, &m.UpdatedAt,
			&bizID, &bizName, &bizDesc, &bizAddr, &bizPhone, &bizEmail, &bizOwner, &bizCreatedAt, &bizUpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if bizID != nil {
			m.Business = &Business{
				ID:          *bizID,
				Name:        *bizName,
				Description: bizDesc,
				Address:     bizAddr,
				PhoneNumber: bizPhone,
				Email:       bizEmail,
				OwnerID:     *bizOwner,
				CreatedAt:   *bizCreatedAt,
				UpdatedAt:   *bizUpdatedAt,
			}
		}
		merchants = append(merchants, m)
	}
	return merchants, rows.Err()
}

// RecentActivities feeds the app-staff dashboard: latest sales and merchant
// signups across all businesses, newest first.
func (s *AnalyticsStore) RecentActivities(ctx context.Context, limit int) ([]Activity, error) {
	query := `
	  SELECT * FROM (
	    SELECT 'sale' AS type,
	           'Sale recorded' AS description,
	           b.name AS business_name,
	           s.total_amount AS amount,
	           s.created_at
	    FROM sales s
	    INNER JOIN businesses b ON s.business_id = b.id
	    UNION ALL
	    SELECT 'merchant' AS type,
	           'Merchant ' || u.full_name || ' joined' AS description,
	           COALESCE(u.business_name, '') AS business_name,
	           0 AS amount,
	           u.created_at
	    FROM users u
	    WHERE u.role = $1
	  ) activity
	  ORDER BY created_at DESC
	  LIMIT $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, RoleMerchant, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []Activity{}
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.Type, &a.Description, &a.BusinessName, &a.Amount, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
