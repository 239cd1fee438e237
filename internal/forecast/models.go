package forecast

import "time"

const (
	// HistoryMonths is the trailing window the trend is fitted on, current month included
	HistoryMonths = 12
	// Horizon is how many periods are projected
	Horizon = 3
	// ProjectionStep separates projected points
	ProjectionStep = 30 * 24 * time.Hour
)

// Point is one observation used to fit the trend
type Point struct {
	Time  time.Time
	Value float64
}

// Line is a fitted trend: value = Intercept + Slope * (t - Origin) in milliseconds
type Line struct {
	Origin    time.Time
	Slope     float64
	Intercept float64
}

// At evaluates the line at t
func (l Line) At(t time.Time) float64 {
	return l.Intercept + l.Slope*float64(t.Sub(l.Origin).Milliseconds())
}

// HistoricalRevenue is one observed month
type HistoricalRevenue struct {
	Period string    `json:"period"`
	Start  time.Time `json:"start"`
	GMV    float64   `json:"gmv"`
}

// PredictedRevenue is one projected point
type PredictedRevenue struct {
	Period       string    `json:"period"`
	At           time.Time `json:"at"`
	PredictedGMV float64   `json:"predicted_gmv"`
}

// RevenueTrend is the observed series plus its projection
type RevenueTrend struct {
	Historical []HistoricalRevenue `json:"historical"`
	Predicted  []PredictedRevenue  `json:"predicted"`
}
