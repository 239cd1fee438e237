package fraud

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrOrderNotFound is returned when no order matches the id and customer
var ErrOrderNotFound = errors.New("order not found")

// Repository handles fraud scoring data operations
type Repository struct {
	db *pgxpool.Pool
}

// Ensure the concrete repository satisfies the service's requirements.
var _ FraudRepository = (*Repository)(nil)

// NewRepository creates a new fraud repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// UpdateOrderRiskScore stores the score on the customer's order
func (r *Repository) UpdateOrderRiskScore(ctx context.Context, orderID, customerID uuid.UUID, score int) error {
	query := `
		UPDATE orders
		SET risk_score = $3
		WHERE id = $1 AND customer_id = $2
	`

	tag, err := r.db.Exec(ctx, query, orderID, customerID, score)
	if err != nil {
		return fmt.Errorf("failed to update order risk score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}
