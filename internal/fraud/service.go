package fraud

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/marketplace-intel/pkg/common"
	"github.com/richxcame/marketplace-intel/pkg/logger"
	"github.com/richxcame/marketplace-intel/pkg/tracing"
	"github.com/richxcame/marketplace-intel/pkg/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const velocityWindow = 24 * time.Hour

// Service scores orders for fraud risk
type Service struct {
	reader SignalReader
	repo   FraudRepository
	rules  []Rule
	now    func() time.Time
}

// NewService creates a new fraud service
func NewService(reader SignalReader, repo FraudRepository) *Service {
	return &Service{
		reader: reader,
		repo:   repo,
		rules:  Rules,
		now:    time.Now,
	}
}

// ScoreOrderRisk scores a new order and stores the score on it.
// The order itself is included in the 24 hour order count.
func (s *Service) ScoreOrderRisk(ctx context.Context, orderID uuid.UUID, req ScoreRequest) (assessment *Assessment, err error) {
	ctx, span := tracing.StartSpan(ctx, "fraud.ScoreOrderRisk",
		attribute.String("order_id", orderID.String()),
	)
	defer func() { tracing.EndSpan(span, err) }()

	verr := &validation.ValidationError{}
	if err := validation.Struct(req); err != nil {
		var fieldErrs *validation.ValidationError
		if !errors.As(err, &fieldErrs) {
			return nil, common.NewBadRequestError("invalid risk request", err)
		}
		verr = fieldErrs
	}
	if orderID == uuid.Nil {
		verr.AddError("order_id", "order_id is required")
	}
	if verr.HasErrors() {
		return nil, common.NewBadRequestError("invalid risk request", verr)
	}

	recent, err := s.reader.CountCustomerOrdersSince(ctx, req.CustomerID, s.now().Add(-velocityWindow))
	if err != nil {
		return nil, common.NewInternalError("failed to count recent orders", err)
	}
	failed, err := s.reader.CountCustomerFailedPayments(ctx, req.CustomerID)
	if err != nil {
		return nil, common.NewInternalError("failed to count failed payments", err)
	}

	signals := Signals{
		OrdersLast24h:  recent,
		OrderAmount:    req.TotalAmount,
		FailedPayments: failed,
	}
	score, triggered := Score(s.rules, signals)

	if err := s.repo.UpdateOrderRiskScore(ctx, orderID, req.CustomerID, score); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, common.NewNotFoundError("order not found")
		}
		return nil, common.NewInternalError("failed to store risk score", err)
	}

	riskScoreHistogram.Observe(float64(score))
	for _, name := range triggered {
		ruleTriggersTotal.WithLabelValues(name).Inc()
	}

	assessment = &Assessment{
		OrderID:        orderID,
		CustomerID:     req.CustomerID,
		RiskScore:      score,
		RiskLevel:      LevelFor(score),
		TriggeredRules: triggered,
		Signals:        signals,
	}

	log := logger.WithContext(ctx).With(
		zap.String("order_id", orderID.String()),
		zap.String("customer_id", req.CustomerID.String()),
		zap.Int("risk_score", score),
		zap.Strings("rules", triggered),
	)
	if assessment.RiskLevel == RiskLevelHigh {
		log.Warn("high risk order")
	} else {
		log.Debug("order risk scored")
	}

	return assessment, nil
}
