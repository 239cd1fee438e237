package fraud

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SignalReader reads a customer's recent behaviour
type SignalReader interface {
	CountCustomerOrdersSince(ctx context.Context, customerID uuid.UUID, since time.Time) (int, error)
	CountCustomerFailedPayments(ctx context.Context, customerID uuid.UUID) (int, error)
}

// FraudRepository persists risk scores onto orders
type FraudRepository interface {
	UpdateOrderRiskScore(ctx context.Context, orderID, customerID uuid.UUID, score int) error
}
