package fraud

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	riskScoreHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "intel",
		Subsystem: "fraud",
		Name:      "order_risk_score",
		Help:      "Distribution of order risk scores.",
		Buckets:   []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	ruleTriggersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "intel",
		Subsystem: "fraud",
		Name:      "rule_triggers_total",
		Help:      "Risk rules that fired, by rule name.",
	}, []string{"rule"})
)
