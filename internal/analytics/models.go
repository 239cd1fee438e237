package analytics

import (
	"time"

	"github.com/google/uuid"
)

// PeriodType is the granularity of a marketing snapshot
type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

// MarketingSnapshot holds externally supplied marketing figures for one period
type MarketingSnapshot struct {
	PeriodDate              time.Time  `json:"period_date"`
	PeriodType              PeriodType `json:"period_type"`
	OrganicTraffic          *int64     `json:"organic_traffic"`
	PaidTraffic             *int64     `json:"paid_traffic"`
	CostPerClick            *float64   `json:"cost_per_click"`
	CostPerAcquisition      *float64   `json:"cost_per_acquisition"`
	ReferralCount           *int64     `json:"referral_count"`
	CustomerAcquisitionCost *float64   `json:"customer_acquisition_cost"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// MarketingSnapshotRequest is one entry of the marketing feed
type MarketingSnapshotRequest struct {
	PeriodDate              string   `json:"period_date" yaml:"period_date" validate:"required"`
	PeriodType              string   `json:"period_type" yaml:"period_type" validate:"required,oneof=daily weekly monthly"`
	OrganicTraffic          *int64   `json:"organic_traffic,omitempty" yaml:"organic_traffic" validate:"omitempty,gte=0"`
	PaidTraffic             *int64   `json:"paid_traffic,omitempty" yaml:"paid_traffic" validate:"omitempty,gte=0"`
	CostPerClick            *float64 `json:"cost_per_click,omitempty" yaml:"cost_per_click" validate:"omitempty,gte=0"`
	CostPerAcquisition      *float64 `json:"cost_per_acquisition,omitempty" yaml:"cost_per_acquisition" validate:"omitempty,gte=0"`
	ReferralCount           *int64   `json:"referral_count,omitempty" yaml:"referral_count" validate:"omitempty,gte=0"`
	CustomerAcquisitionCost *float64 `json:"customer_acquisition_cost,omitempty" yaml:"customer_acquisition_cost" validate:"omitempty,gte=0"`
}

// RevenueSection summarises platform revenue
type RevenueSection struct {
	GMV                  float64 `json:"gmv"`
	NetRevenue           float64 `json:"net_revenue"`
	GMVThisMonth         float64 `json:"gmv_this_month"`
	GMVLastMonth         float64 `json:"gmv_last_month"`
	MonthlyRecurring     float64 `json:"monthly_recurring_revenue"`
	AverageOrderValue    float64 `json:"average_order_value"`
	MonthOverMonthGrowth float64 `json:"mom_growth_pct"`
	OrderCount           int     `json:"order_count"`
}

// CustomerSection summarises the customer base
type CustomerSection struct {
	TotalCustomers           int      `json:"total_customers"`
	NewCustomersThisMonth    int      `json:"new_customers_this_month"`
	ActiveCustomers          int      `json:"active_customers"`
	RetentionRatePct         float64  `json:"retention_rate_pct"`
	RetentionCohort          *string  `json:"retention_cohort"`
	RepeatPurchaseRatePct    float64  `json:"repeat_purchase_rate_pct"`
	AverageOrdersPerCustomer float64  `json:"avg_orders_per_customer"`
	LifetimeValue            float64  `json:"lifetime_value"`
	CustomerAcquisitionCost  *float64 `json:"customer_acquisition_cost"`
	LTVToCAC                 *float64 `json:"ltv_to_cac"`
}

// VendorShare is one vendor's slice of GMV
type VendorShare struct {
	VendorID   uuid.UUID `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	GMV        float64   `json:"gmv"`
	OrderCount int       `json:"order_count"`
	SharePct   float64   `json:"share_pct"`
}

// VendorSection summarises vendor activity
type VendorSection struct {
	TotalVendors        int           `json:"total_vendors"`
	ActiveVendors       int           `json:"active_vendors"`
	RetentionRatePct    float64       `json:"retention_rate_pct"`
	RevenueDistribution []VendorShare `json:"revenue_distribution"`
}

// OperationalSection summarises fulfilment health over the trailing thirty days
type OperationalSection struct {
	TotalOrders          int      `json:"total_orders"`
	CompletionRatePct    float64  `json:"completion_rate_pct"`
	CancellationRatePct  float64  `json:"cancellation_rate_pct"`
	FailedPaymentRatePct float64  `json:"failed_payment_rate_pct"`
	DeliverySLAHours     *float64 `json:"delivery_sla_hours"`
	SupportTickets       int      `json:"support_tickets"`
}

// GrowthSection carries marketing figures. Every field is null without a snapshot for the month.
type GrowthSection struct {
	PeriodDate         *string  `json:"period_date"`
	OrganicTraffic     *int64   `json:"organic_traffic"`
	PaidTraffic        *int64   `json:"paid_traffic"`
	TotalTraffic       *int64   `json:"total_traffic"`
	ConversionRatePct  *float64 `json:"conversion_rate_pct"`
	CostPerClick       *float64 `json:"cost_per_click"`
	CostPerAcquisition *float64 `json:"cost_per_acquisition"`
	ReferralCount      *int64   `json:"referral_count"`
	ReferralRatePct    *float64 `json:"referral_rate_pct"`
}

// Dashboard is the composite metrics payload
type Dashboard struct {
	Revenue     RevenueSection     `json:"revenue"`
	Customer    CustomerSection    `json:"customer"`
	Vendor      VendorSection      `json:"vendor"`
	Operational OperationalSection `json:"operational"`
	Growth      GrowthSection      `json:"growth"`
	GeneratedAt time.Time          `json:"generated_at"`
}
