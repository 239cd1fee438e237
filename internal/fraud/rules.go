package fraud

// Rule adds Points when Applies holds
type Rule struct {
	Name    string
	Points  int
	Applies func(Signals) bool
}

// Rules are evaluated independently and summed
var Rules = []Rule{
	{
		Name:    "order_velocity_high",
		Points:  25,
		Applies: func(s Signals) bool { return s.OrdersLast24h > 3 },
	},
	{
		Name:    "order_velocity_elevated",
		Points:  10,
		Applies: func(s Signals) bool { return s.OrdersLast24h > 1 && s.OrdersLast24h <= 3 },
	},
	{
		Name:    "amount_very_high",
		Points:  20,
		Applies: func(s Signals) bool { return s.OrderAmount > 100000 },
	},
	{
		Name:    "amount_high",
		Points:  10,
		Applies: func(s Signals) bool { return s.OrderAmount > 50000 && s.OrderAmount <= 100000 },
	},
	{
		Name:    "failed_payment_history",
		Points:  30,
		Applies: func(s Signals) bool { return s.FailedPayments > 2 },
	},
}

// Score sums the points of every applicable rule, clamped to [0, MaxRiskScore]
func Score(rules []Rule, s Signals) (int, []string) {
	total := 0
	triggered := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.Applies(s) {
			total += r.Points
			triggered = append(triggered, r.Name)
		}
	}

	if total > MaxRiskScore {
		total = MaxRiskScore
	}
	if total < 0 {
		total = 0
	}
	return total, triggered
}
