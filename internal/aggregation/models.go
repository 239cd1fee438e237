package aggregation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Granularity is the truncation unit used when grouping by timestamp
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Valid reports whether g is one of the supported truncation units
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// TimeWindow is the half-open interval [From, To). A zero bound is unbounded.
type TimeWindow struct {
	From time.Time
	To   time.Time
}

// AllTime is the unbounded window
var AllTime = TimeWindow{}

// Since returns the window [from, ∞)
func Since(from time.Time) TimeWindow {
	return TimeWindow{From: from}
}

// MonthWindow returns the calendar month (UTC) containing t
func MonthWindow(t time.Time) TimeWindow {
	start := MonthStart(t)
	return TimeWindow{From: start, To: start.AddDate(0, 1, 0)}
}

// MonthStart truncates t to the first instant of its calendar month in UTC
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Validate rejects windows whose upper bound is not after the lower bound
func (w TimeWindow) Validate() error {
	if !w.From.IsZero() && !w.To.IsZero() && !w.To.After(w.From) {
		return fmt.Errorf("invalid window: %s is not after %s", w.To.Format(time.RFC3339), w.From.Format(time.RFC3339))
	}
	return nil
}

// bounds returns the window as nullable query arguments
func (w TimeWindow) bounds() (*time.Time, *time.Time) {
	var from, to *time.Time
	if !w.From.IsZero() {
		f := w.From
		from = &f
	}
	if !w.To.IsZero() {
		t := w.To
		to = &t
	}
	return from, to
}

// RevenueSummary aggregates non-cancelled orders
type RevenueSummary struct {
	GMV        float64 `json:"gmv"`
	NetRevenue float64 `json:"net_revenue"`
	OrderCount int     `json:"order_count"`
}

// PeriodTotal is revenue for one truncated period
type PeriodTotal struct {
	Period     time.Time `json:"period"`
	GMV        float64   `json:"gmv"`
	NetRevenue float64   `json:"net_revenue"`
	OrderCount int       `json:"order_count"`
}

// VendorOutcome is the per-vendor order outcome tally for a window.
// Only vendors with at least one order in the window are reported.
type VendorOutcome struct {
	VendorID         uuid.UUID `json:"vendor_id"`
	VendorName       string    `json:"vendor_name"`
	TotalOrders      int       `json:"total_orders"`
	DeliveredOrders  int       `json:"delivered_orders"`
	CancelledOrders  int       `json:"cancelled_orders"`
	AvgDeliveryHours *float64  `json:"avg_delivery_hours"`
}

// CustomerMonth is one distinct (customer, calendar month) pair with a non-cancelled order
type CustomerMonth struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Month      time.Time `json:"month"`
}

// PaymentCounts tallies payment attempts
type PaymentCounts struct {
	Total  int `json:"total"`
	Failed int `json:"failed"`
}

// VendorRevenue is a vendor's share of GMV
type VendorRevenue struct {
	VendorID   uuid.UUID `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	GMV        float64   `json:"gmv"`
	OrderCount int       `json:"order_count"`
}

// CustomerStats summarises the customer base
type CustomerStats struct {
	TotalCustomers      int `json:"total_customers"`
	NewCustomers        int `json:"new_customers"`
	ActiveCustomers     int `json:"active_customers"`
	CustomersWithOrders int `json:"customers_with_orders"`
	RepeatCustomers     int `json:"repeat_customers"`
	TotalOrders         int `json:"total_orders"`
}

// VendorActivity compares vendors active in two consecutive windows
type VendorActivity struct {
	TotalVendors   int `json:"total_vendors"`
	ActiveCurrent  int `json:"active_current"`
	ActivePrevious int `json:"active_previous"`
	Retained       int `json:"retained"`
}
