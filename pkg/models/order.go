package models

// OrderStatus represents the lifecycle state of a marketplace order
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// OrderStatuses lists every lifecycle state in order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// CountsTowardRevenue reports whether orders in this state participate in revenue and fulfillment figures.
// delivered_at is only meaningful for DELIVERED orders.
func (s OrderStatus) CountsTowardRevenue() bool {
	return s != OrderStatusCancelled
}

// NonRevenueOrderStatuses lists the states excluded from revenue queries
var NonRevenueOrderStatuses = nonRevenueOrderStatuses()

func nonRevenueOrderStatuses() []string {
	statuses := make([]string, 0, 1)
	for _, s := range OrderStatuses {
		if !s.CountsTowardRevenue() {
			statuses = append(statuses, string(s))
		}
	}
	return statuses
}
