package fraud

import (
	"github.com/google/uuid"
)

// MaxRiskScore caps the summed rule points
const MaxRiskScore = 100

// RiskLevel buckets a risk score
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// LevelFor maps a score to its level: below 30 low, below 70 medium, otherwise high
func LevelFor(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskLevelHigh
	case score >= 30:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// ScoreRequest describes a newly created order
type ScoreRequest struct {
	CustomerID  uuid.UUID `json:"customer_id" validate:"required"`
	TotalAmount float64   `json:"total_amount" validate:"gte=0"`
}

// Signals are the behavioural inputs the rules evaluate
type Signals struct {
	OrdersLast24h  int     `json:"orders_last_24h"`
	OrderAmount    float64 `json:"order_amount"`
	FailedPayments int     `json:"failed_payments"`
}

// Assessment is the scored order
type Assessment struct {
	OrderID        uuid.UUID `json:"order_id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	RiskScore      int       `json:"risk_score"`
	RiskLevel      RiskLevel `json:"risk_level"`
	TriggeredRules []string  `json:"triggered_rules"`
	Signals        Signals   `json:"signals"`
}
