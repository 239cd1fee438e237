package aggregation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/richxcame/marketplace-intel/pkg/models"
)

// Reader runs read-only aggregate queries over orders, payments, users and vendors.
// Every query honours the pool's statement timeout.
type Reader struct {
	db Database
}

var _ Database = (*pgxpool.Pool)(nil)

// NewReader creates a new aggregation reader
func NewReader(db Database) *Reader {
	return &Reader{db: db}
}

// RevenueSummary returns GMV, net revenue and order count for non-cancelled orders in the window
func (r *Reader) RevenueSummary(ctx context.Context, w TimeWindow) (*RevenueSummary, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	from, to := w.bounds()

	query := `
		SELECT COALESCE(SUM(total), 0)::float8,
		       COALESCE(SUM(commission), 0)::float8,
		       COUNT(*)
		FROM orders
		WHERE status <> ALL($1)
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
	`

	var s RevenueSummary
	err := r.db.QueryRow(ctx, query, models.NonRevenueOrderStatuses, from, to).Scan(
		&s.GMV,
		&s.NetRevenue,
		&s.OrderCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue summary: %w", err)
	}

	return &s, nil
}

// RevenueByPeriod groups non-cancelled revenue by truncated creation timestamp, oldest first
func (r *Reader) RevenueByPeriod(ctx context.Context, g Granularity, w TimeWindow) ([]PeriodTotal, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("unsupported granularity %q", g)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	from, to := w.bounds()

	query := `
		SELECT date_trunc($1, created_at AT TIME ZONE 'UTC') AS period,
		       COALESCE(SUM(total), 0)::float8,
		       COALESCE(SUM(commission), 0)::float8,
		       COUNT(*)
		FROM orders
		WHERE status <> ALL($2)
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at < $4)
		GROUP BY period
		ORDER BY period ASC
	`

	rows, err := r.db.Query(ctx, query, string(g), models.NonRevenueOrderStatuses, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue by period: %w", err)
	}
	defer rows.Close()

	totals := make([]PeriodTotal, 0)
	for rows.Next() {
		var p PeriodTotal
		if err := rows.Scan(&p.Period, &p.GMV, &p.NetRevenue, &p.OrderCount); err != nil {
			return nil, fmt.Errorf("failed to scan period total: %w", err)
		}
		p.Period = asUTC(p.Period)
		totals = append(totals, p)
	}

	return totals, rows.Err()
}

// VendorOutcomes tallies order outcomes per vendor. Vendors without orders in the window are omitted.
func (r *Reader) VendorOutcomes(ctx context.Context, w TimeWindow) ([]VendorOutcome, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	from, to := w.bounds()

	query := `
		SELECT v.id, v.name,
		       COUNT(o.id),
		       COUNT(o.id) FILTER (WHERE o.status = $1),
		       COUNT(o.id) FILTER (WHERE o.status = $2),
		       (AVG(EXTRACT(EPOCH FROM (o.delivered_at - o.created_at)) / 3600.0)
		           FILTER (WHERE o.delivered_at IS NOT NULL))::float8
		FROM vendors v
		JOIN orders o ON o.vendor_id = v.id
		WHERE ($3::timestamptz IS NULL OR o.created_at >= $3)
		  AND ($4::timestamptz IS NULL OR o.created_at < $4)
		GROUP BY v.id, v.name
		HAVING COUNT(o.id) > 0
	`

	rows, err := r.db.Query(ctx, query, models.OrderStatusDelivered, models.OrderStatusCancelled, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := make([]VendorOutcome, 0)
	for rows.Next() {
		var o VendorOutcome
		if err := rows.Scan(
			&o.VendorID,
			&o.VendorName,
			&o.TotalOrders,
			&o.DeliveredOrders,
			&o.CancelledOrders,
			&o.AvgDeliveryHours,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vendor outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}

	return outcomes, rows.Err()
}

// CustomerOrderMonths lists every distinct calendar month in which each customer placed a non-cancelled order
func (r *Reader) CustomerOrderMonths(ctx context.Context) ([]CustomerMonth, error) {
	query := `
		SELECT DISTINCT customer_id, date_trunc('month', created_at AT TIME ZONE 'UTC') AS month
		FROM orders
		WHERE status <> ALL($1)
		ORDER BY customer_id, month
	`

	rows, err := r.db.Query(ctx, query, models.NonRevenueOrderStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer order months: %w", err)
	}
	defer rows.Close()

	months := make([]CustomerMonth, 0)
	for rows.Next() {
		var m CustomerMonth
		if err := rows.Scan(&m.CustomerID, &m.Month); err != nil {
			return nil, fmt.Errorf("failed to scan customer month: %w", err)
		}
		m.Month = asUTC(m.Month)
		months = append(months, m)
	}

	return months, rows.Err()
}

// CountCustomerOrdersSince counts every order the customer created at or after since
func (r *Reader) CountCustomerOrdersSince(ctx context.Context, customerID uuid.UUID, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM orders WHERE customer_id = $1 AND created_at >= $2`

	var count int
	if err := r.db.QueryRow(ctx, query, customerID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customer orders: %w", err)
	}
	return count, nil
}

// CountCustomerFailedPayments counts failed or errored payments on any of the customer's orders
func (r *Reader) CountCustomerFailedPayments(ctx context.Context, customerID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		WHERE o.customer_id = $1 AND p.status = ANY($2)
	`

	var count int
	if err := r.db.QueryRow(ctx, query, customerID, models.FailedPaymentStatuses).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count failed payments: %w", err)
	}
	return count, nil
}

// OrderStatusCounts counts orders in the window grouped by status
func (r *Reader) OrderStatusCounts(ctx context.Context, w TimeWindow) (map[models.OrderStatus]int, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	from, to := w.bounds()

	query := `
		SELECT status, COUNT(*)
		FROM orders
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at < $2)
		GROUP BY status
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get order status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.OrderStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[models.OrderStatus(status)] = n
	}

	return counts, rows.Err()
}

// PaymentCounts tallies payment attempts and failures in the window
func (r *Reader) PaymentCounts(ctx context.Context, w TimeWindow) (*PaymentCounts, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	from, to := w.bounds()

	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = ANY($1))
		FROM payments
		WHERE ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
	`

	var c PaymentCounts
	if err := r.db.QueryRow(ctx, query, models.FailedPaymentStatuses, from, to).Scan(&c.Total, &c.Failed); err != nil {
		return nil, fmt.Errorf("failed to get payment counts: %w", err)
	}
	return &c, nil
}

// AverageDeliveryHours is the mean created-to-delivered time of delivered orders, nil when there are none
func (r *Reader) AverageDeliveryHours(ctx context.Context, w TimeWindow) (*float64, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	from, to := w.bounds()

	query := `
		SELECT (AVG(EXTRACT(EPOCH FROM (delivered_at - created_at)) / 3600.0))::float8
		FROM orders
		WHERE status = $1 AND delivered_at IS NOT NULL
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
	`

	var hours *float64
	if err := r.db.QueryRow(ctx, query, models.OrderStatusDelivered, from, to).Scan(&hours); err != nil {
		return nil, fmt.Errorf("failed to get average delivery hours: %w", err)
	}
	return hours, nil
}

// RevenueByVendor returns the top vendors by non-cancelled GMV in the window
func (r *Reader) RevenueByVendor(ctx context.Context, w TimeWindow, limit int) ([]VendorRevenue, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []VendorRevenue{}, nil
	}
	from, to := w.bounds()

	query := `
		SELECT v.id, v.name, COALESCE(SUM(o.total), 0)::float8 AS gmv, COUNT(o.id)
		FROM vendors v
		JOIN orders o ON o.vendor_id = v.id
		WHERE o.status <> ALL($1)
		  AND ($2::timestamptz IS NULL OR o.created_at >= $2)
		  AND ($3::timestamptz IS NULL OR o.created_at < $3)
		GROUP BY v.id, v.name
		ORDER BY gmv DESC, v.name ASC
		LIMIT $4
	`

	rows, err := r.db.Query(ctx, query, models.NonRevenueOrderStatuses, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue by vendor: %w", err)
	}
	defer rows.Close()

	result := make([]VendorRevenue, 0, limit)
	for rows.Next() {
		var v VendorRevenue
		if err := rows.Scan(&v.VendorID, &v.VendorName, &v.GMV, &v.OrderCount); err != nil {
			return nil, fmt.Errorf("failed to scan vendor revenue: %w", err)
		}
		result = append(result, v)
	}

	return result, rows.Err()
}

// CustomerStats summarises customers. newSince bounds "new" and activeSince bounds "active".
func (r *Reader) CustomerStats(ctx context.Context, newSince, activeSince time.Time) (*CustomerStats, error) {
	query := `
		WITH customer_orders AS (
			SELECT customer_id, COUNT(*) AS orders, MAX(created_at) AS last_order_at
			FROM orders
			WHERE status <> ALL($1)
			GROUP BY customer_id
		)
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'customer'),
			(SELECT COUNT(*) FROM users WHERE role = 'customer' AND created_at >= $2),
			(SELECT COUNT(*) FROM customer_orders WHERE last_order_at >= $3),
			(SELECT COUNT(*) FROM customer_orders),
			(SELECT COUNT(*) FROM customer_orders WHERE orders > 1),
			(SELECT COALESCE(SUM(orders), 0) FROM customer_orders)
	`

	var s CustomerStats
	err := r.db.QueryRow(ctx, query, models.NonRevenueOrderStatuses, newSince, activeSince).Scan(
		&s.TotalCustomers,
		&s.NewCustomers,
		&s.ActiveCustomers,
		&s.CustomersWithOrders,
		&s.RepeatCustomers,
		&s.TotalOrders,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer stats: %w", err)
	}
	return &s, nil
}

// VendorActivity compares vendors with non-cancelled orders in the current and previous windows
func (r *Reader) VendorActivity(ctx context.Context, current, previous TimeWindow) (*VendorActivity, error) {
	if err := current.Validate(); err != nil {
		return nil, err
	}
	if err := previous.Validate(); err != nil {
		return nil, err
	}
	curFrom, curTo := current.bounds()
	prevFrom, prevTo := previous.bounds()

	query := `
		WITH cur AS (
			SELECT DISTINCT vendor_id FROM orders
			WHERE status <> ALL($1)
			  AND ($2::timestamptz IS NULL OR created_at >= $2)
			  AND ($3::timestamptz IS NULL OR created_at < $3)
		), prev AS (
			SELECT DISTINCT vendor_id FROM orders
			WHERE status <> ALL($1)
			  AND ($4::timestamptz IS NULL OR created_at >= $4)
			  AND ($5::timestamptz IS NULL OR created_at < $5)
		)
		SELECT
			(SELECT COUNT(*) FROM vendors),
			(SELECT COUNT(*) FROM cur),
			(SELECT COUNT(*) FROM prev),
			(SELECT COUNT(*) FROM prev JOIN cur USING (vendor_id))
	`

	var a VendorActivity
	err := r.db.QueryRow(ctx, query, models.NonRevenueOrderStatuses, curFrom, curTo, prevFrom, prevTo).Scan(
		&a.TotalVendors,
		&a.ActiveCurrent,
		&a.ActivePrevious,
		&a.Retained,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor activity: %w", err)
	}
	return &a, nil
}

// CountSupportTickets counts support tickets opened in the window
func (r *Reader) CountSupportTickets(ctx context.Context, w TimeWindow) (int, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}
	from, to := w.bounds()

	query := `
		SELECT COUNT(*) FROM support_tickets
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at < $2)
	`

	var count int
	if err := r.db.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count support tickets: %w", err)
	}
	return count, nil
}

// date_trunc on a timestamp without time zone scans as a zone-less time; pin it to UTC
func asUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
